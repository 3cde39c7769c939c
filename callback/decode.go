package callback

import (
	"fmt"

	"github.com/agiangrant/nwkit/internal/host"
)

// Raw passes the payload through untouched.
func Raw(v host.Value) (host.Value, error) {
	return v, nil
}

// Ignore discards the payload.
func Ignore(host.Value) (struct{}, error) {
	return struct{}{}, nil
}

// String reads the payload as a string. A null payload is a decode failure.
func String(v host.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("want string, got null")
	}
	return v.String(), nil
}
