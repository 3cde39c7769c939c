package nwkit

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/agiangrant/nwkit/internal/host"
)

// Native handle types. These are re-exports of the host package types for
// consumer convenience.
type (
	Host             = host.Host
	Value            = host.Value
	Options          = host.Options
	Window           = host.Window
	Menu             = host.Menu
	MenuItem         = host.MenuItem
	Tray             = host.Tray
	Shortcut         = host.Shortcut
	MediaStream      = host.MediaStream
	MediaStreamTrack = host.MediaStreamTrack
	MenuItemType     = host.MenuItemType
)

const (
	MenuItemNormal    = host.MenuItemNormal
	MenuItemCheckbox  = host.MenuItemCheckbox
	MenuItemSeparator = host.MenuItemSeparator
)

// NewOptions returns an empty option bag.
func NewOptions() Options {
	return host.NewOptions()
}

// ConfigFile is the name LoadConfig and FindProjectRoot look for.
const ConfigFile = "nwkit.toml"

// Config represents the nwkit.toml configuration file
type Config struct {
	App      AppConfig        `toml:"app"`
	Log      LogConfig        `toml:"log"`
	Window   WindowConfig     `toml:"window"`
	Menubar  MenubarConfig    `toml:"menubar"`
	Tray     TrayConfig       `toml:"tray"`
	Shortcut []ShortcutConfig `toml:"shortcut"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type LogConfig struct {
	// One of trace, debug, info, warn, error, disabled
	Level string `toml:"level"`
	// Human readable output instead of JSON
	Console bool `toml:"console"`
}

// WindowConfig holds the defaults for NewWindowFromConfig
type WindowConfig struct {
	URL    string `toml:"url"`
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type MenubarConfig struct {
	MacHideEdit   bool `toml:"mac_hide_edit"`
	MacHideWindow bool `toml:"mac_hide_window"`
}

type TrayConfig struct {
	Title   string `toml:"title"`
	Tooltip string `toml:"tooltip"`
	Icon    string `toml:"icon"`
}

type ShortcutConfig struct {
	Key string `toml:"key"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			Name:    "MyApp",
			Version: "1.0.0",
		},
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			URL:    "index.html",
			Title:  "MyApp",
			Width:  800,
			Height: 600,
		},
	}
}

// Validate reports the first problem in the configuration.
func (c Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("app.name is required")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height)
	}
	for i, sc := range c.Shortcut {
		if strings.TrimSpace(sc.Key) == "" {
			return fmt.Errorf("shortcut[%d].key is empty", i)
		}
	}
	return nil
}

// LoadConfig loads the configuration at path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for empty values
	if config.Window.Title == "" {
		config.Window.Title = config.App.Name
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	return config, nil
}

// SaveConfig saves the configuration to path
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// FindProjectRoot finds the project root by looking for nwkit.toml or go.mod
// starting at dir and walking up.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s or go.mod found", ConfigFile)
		}
		dir = parent
	}
}

// NewLogger builds the logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) *zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	if c.Console {
		w = zerolog.ConsoleWriter{Out: w}
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Str("component", "nwkit").Logger()
	return &logger
}
