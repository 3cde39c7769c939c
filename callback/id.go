package callback

import "github.com/google/uuid"

// ID identifies a registered callback. IDs are never reused.
type ID uuid.UUID

// NilID is the zero ID. No callback has it.
var NilID ID

// NewID mints a fresh ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the string form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, err
	}
	return ID(u), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}
