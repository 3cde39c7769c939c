package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agiangrant/nwkit"
	"github.com/agiangrant/nwkit/internal/host/memhost"
)

// Report summarizes what a configuration builds.
type Report struct {
	App       string
	Windows   int
	MenuItems int
	Trays     int
	Shortcuts int
	Callbacks int
}

// Check implements the 'nwkit check' command
func Check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	path := fs.String("config", nwkit.ConfigFile, "Path to the configuration file")
	verbose := fs.Bool("v", false, "Log every step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	report, err := RunCheck(*path, &logger)
	if err != nil {
		return err
	}
	printReport(os.Stdout, report)
	return nil
}

// RunCheck validates the configuration at path and builds everything it
// describes against an in-memory host.
func RunCheck(path string, logger *zerolog.Logger) (Report, error) {
	config, err := nwkit.LoadConfig(path)
	if err != nil {
		return Report{}, err
	}
	if err := config.Validate(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}

	h := memhost.New()
	app, err := nwkit.Initialize(
		nwkit.WithHost(h),
		nwkit.WithConfig(config),
		nwkit.WithLogger(logger),
	)
	if err != nil {
		return Report{}, err
	}

	err = nwkit.NewWindowFromConfig(config.Window).
		Callback(func(nwkit.Window) error { return nil }).
		Build()
	if err != nil {
		return Report{}, fmt.Errorf("window: %w", err)
	}

	quit, err := nwkit.NewMenuItem().
		Label("Quit " + config.App.Name).
		Key("q").
		Callback(func(nwkit.Value) error { return nil }).
		Build()
	if err != nil {
		return Report{}, fmt.Errorf("menu item: %w", err)
	}
	if _, err := nwkit.NewMenubarFromConfig(config).Append(quit).Build(true); err != nil {
		return Report{}, fmt.Errorf("menubar: %w", err)
	}

	if config.Tray != (nwkit.TrayConfig{}) {
		_, err := nwkit.NewTrayFromConfig(config.Tray).
			Submenus(quit).
			Callback(func(nwkit.MouseEvent) error { return nil }).
			Build()
		if err != nil {
			return Report{}, fmt.Errorf("tray: %w", err)
		}
	}

	for _, sc := range config.Shortcut {
		sc := sc
		_, err := nwkit.NewShortcut().
			Key(sc.Key).
			Active(func(nwkit.Value) error { return nil }).
			Failed(func(msg string) error {
				logger.Warn().Str("key", sc.Key).Str("reason", msg).Msg("shortcut failed")
				return nil
			}).
			Global(true).
			Build()
		if err != nil {
			return Report{}, fmt.Errorf("shortcut %s: %w", sc.Key, err)
		}
	}

	callbacks, err := app.Callbacks().Len()
	if err != nil {
		return Report{}, err
	}

	report := Report{
		App:       config.App.Name,
		Windows:   len(h.Windows()),
		MenuItems: len(h.MenuItems()),
		Trays:     len(h.Trays()),
		Shortcuts: len(h.Shortcuts()),
		Callbacks: callbacks,
	}
	logger.Debug().Interface("report", report).Msg("check finished")
	return report, nil
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "%s: ok\n", r.App)
	fmt.Fprintf(w, "  windows:    %d\n", r.Windows)
	fmt.Fprintf(w, "  menu items: %d\n", r.MenuItems)
	fmt.Fprintf(w, "  trays:      %d\n", r.Trays)
	fmt.Fprintf(w, "  shortcuts:  %d\n", r.Shortcuts)
	fmt.Fprintf(w, "  callbacks:  %d\n", r.Callbacks)
	if !nwkit.SupportsSystemTray() && r.Trays > 0 {
		fmt.Fprintln(w, "  warning: this desktop has no system tray")
	}
}
