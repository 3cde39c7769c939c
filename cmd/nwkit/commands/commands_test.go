package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agiangrant/nwkit"
)

func TestInitProject(t *testing.T) {
	dir := t.TempDir()

	path, err := InitProject(dir, "Notes", false)
	if err != nil {
		t.Fatalf("InitProject() error = %v", err)
	}

	c, err := nwkit.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.App.Name != "Notes" || c.Window.Title != "Notes" {
		t.Errorf("config = %+v", c.App)
	}
	if len(c.Shortcut) != 1 || c.Shortcut[0].Key != "Ctrl+Shift+N" {
		t.Errorf("shortcuts = %+v", c.Shortcut)
	}

	if _, err := InitProject(dir, "Notes", false); err == nil {
		t.Errorf("second InitProject() without force succeeded")
	}
	if _, err := InitProject(dir, "Other", true); err != nil {
		t.Errorf("InitProject() with force error = %v", err)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My App", "myapp"},
		{"x-2", "x2"},
		{"!!!", "app"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	path, err := InitProject(dir, "Notes", false)
	if err != nil {
		t.Fatal(err)
	}

	logger := zerolog.Nop()
	report, err := RunCheck(path, &logger)
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}

	want := Report{App: "Notes", Windows: 1, MenuItems: 1, Trays: 1, Shortcuts: 1, Callbacks: 5}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
}

func TestRunCheckInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), nwkit.ConfigFile)
	os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0644)

	logger := zerolog.Nop()
	if _, err := RunCheck(path, &logger); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("RunCheck() error = %v, want log.level problem", err)
	}
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintConfig(filepath.Join(t.TempDir(), "missing.toml"), &buf); err != nil {
		t.Fatalf("PrintConfig() error = %v", err)
	}
	if !strings.Contains(buf.String(), "[app]") || !strings.Contains(buf.String(), "MyApp") {
		t.Errorf("output = %s", buf.String())
	}
}
