package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/nwkit/cmd/nwkit/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = commands.Init(args)
	case "check":
		err = commands.Check(args)
	case "config":
		err = commands.Config(args)
	case "version", "-v", "--version":
		fmt.Printf("nwkit version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`nwkit - native shell bindings CLI

Usage: nwkit <command> [options]

Commands:
  init            Write a default nwkit.toml
  check           Validate nwkit.toml and dry-run its window, menubar, tray and shortcuts
  config          Print the effective configuration
  version         Print version information
  help            Show this help message

Examples:
  nwkit init --name Notes         Create nwkit.toml for an app called Notes
  nwkit check                     Check ./nwkit.toml
  nwkit check --config app.toml   Check another file

Configuration:
  Projects are configured via nwkit.toml in the project root.
  Run 'nwkit init' to create one with default values.`)
}
