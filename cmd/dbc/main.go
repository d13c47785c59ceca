package main

import (
	"fmt"
	"os"

	"dbc/internal/cli"
	"dbc/internal/cli/commands"
	"dbc/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "dbc",
		Short:   "Labeled test-to-method dataset creator",
		Long:    `Builds a per-subject dataset of the methods each test exercises, their roles and their access modifiers read from compiled class files.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
