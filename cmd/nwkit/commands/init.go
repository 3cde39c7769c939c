package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/agiangrant/nwkit"
)

// Init implements the 'nwkit init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	name := fs.String("name", "", "App name")
	dir := fs.String("dir", ".", "Project directory")
	force := fs.Bool("force", false, "Overwrite an existing nwkit.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := InitProject(*dir, *name, *force)
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", path)
	return nil
}

// InitProject writes a default nwkit.toml into dir and returns its path.
// An empty name is taken from the directory name.
func InitProject(dir, name string, force bool) (string, error) {
	path := filepath.Join(dir, nwkit.ConfigFile)

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		name = filepath.Base(abs)
	}

	config := nwkit.DefaultConfig()
	config.App.Name = name
	config.Window.Title = name
	config.Tray.Title = name
	config.Tray.Tooltip = name
	config.Shortcut = []nwkit.ShortcutConfig{
		{Key: "Ctrl+Shift+" + strings.ToUpper(sanitizeName(name)[:1])},
	}

	if err := nwkit.SaveConfig(path, config); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeName keeps letters and digits, falling back to "app".
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 {
		return "app"
	}
	return b.String()
}
