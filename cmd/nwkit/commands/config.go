package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/nwkit"
)

// Config implements the 'nwkit config' command
func Config(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	path := fs.String("config", nwkit.ConfigFile, "Path to the configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return PrintConfig(*path, os.Stdout)
}

// PrintConfig writes the configuration at path, with defaults applied, as TOML.
func PrintConfig(path string, w io.Writer) error {
	config, err := nwkit.LoadConfig(path)
	if err != nil {
		return err
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
