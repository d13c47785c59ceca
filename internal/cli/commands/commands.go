package commands

import (
	"fmt"

	"dbc/internal/cli"
	"dbc/internal/config"
	"dbc/internal/discovery"
	"dbc/internal/storage"
	"dbc/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Commands holds all CLI commands
type Commands struct {
	Build  *BuildCommand
	List   *ListCommand
	Stats  *StatsCommand
	View   *ViewCommand
	Export *ExportCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(nil)
	viewer := ui.NewDatasetViewer()

	return &Commands{
		Build:  NewBuildCommand(cfg, filter, jsonStorage, formatter),
		List:   NewListCommand(cfg, filter, formatter),
		Stats:  NewStatsCommand(jsonStorage, formatter),
		View:   NewViewCommand(cfg, viewer),
		Export: NewExportCommand(cfg, filter),
	}
}

// NewLogger builds the process logger. Only warnings and errors are logged
// unless verbose is set.
func NewLogger(verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapConfig.Build()
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Path to a YAML config file (default: "+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ConfigPath)
		if err != nil {
			return err
		}
		*cfg = *loaded

		logger, err := NewLogger(flags.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	}

	// Update config with flags after parsing
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return cfg.Validate()
	}

	// Build command
	buildCmd := &cobra.Command{
		Use:     "build",
		Short:   "Build the labeled dataset for each subject",
		Long:    "Join each subject's routes and method data tables, resolve method modifiers from compiled classes and write one CSV per subject",
		RunE:    c.Build.Execute,
		PreRunE: applyFlags,
	}
	addSubjectFlags(buildCmd, flags)
	buildCmd.Flags().StringVar(&flags.Cardinality, "cardinality", "", "Join policy for duplicate keys: multi or single")
	buildCmd.Flags().StringVarP(&flags.OutDir, "out", "o", "", "Output directory (deleted and recreated)")
	buildCmd.Flags().StringVar(&flags.DataDir, "data-dir", "", "Directory holding <subject>_routes.csv and <subject>_data.csv")
	buildCmd.Flags().StringVar(&flags.SubjectsDir, "subjects-dir", "", "Directory holding <subject>/classes")
	buildCmd.Flags().BoolVar(&flags.ExportMySQL, "export-mysql", false, "Also load each built dataset into MySQL")
	rootCmd.AddCommand(buildCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List subjects and the state of their inputs",
		Long:    "Show each configured subject with its routes table, data table and number of compiled classes",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	addSubjectFlags(listCmd, flags)
	listCmd.Flags().BoolVarP(&flags.Discover, "discover", "d", false, "List subjects found in the subjects directory instead of the configured ones")
	listCmd.Flags().StringVar(&flags.DataDir, "data-dir", "", "Directory holding <subject>_routes.csv and <subject>_data.csv")
	listCmd.Flags().StringVar(&flags.SubjectsDir, "subjects-dir", "", "Directory holding <subject>/classes")
	rootCmd.AddCommand(listCmd)

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the summary of the last build",
		RunE:  c.Stats.Execute,
	}
	rootCmd.AddCommand(statsCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:     "view <subject>",
		Short:   "Browse a built dataset interactively",
		Args:    cobra.ExactArgs(1),
		RunE:    c.View.Execute,
		PreRunE: applyFlags,
	}
	viewCmd.Flags().StringVarP(&flags.OutDir, "out", "o", "", "Output directory the dataset was written to")
	rootCmd.AddCommand(viewCmd)

	// Export command
	exportCmd := &cobra.Command{
		Use:     "export",
		Short:   "Load built datasets into MySQL",
		Long:    "Read each subject's CSV from the output directory and replace its MySQL table (dsn from mysql_dsn or DBC_MYSQL_DSN)",
		RunE:    c.Export.Execute,
		PreRunE: applyFlags,
	}
	addSubjectFlags(exportCmd, flags)
	exportCmd.Flags().StringVarP(&flags.OutDir, "out", "o", "", "Output directory the datasets were written to")
	rootCmd.AddCommand(exportCmd)
}

func addSubjectFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringSliceVarP(&flags.Subjects, "subject", "s", nil, "Subject to process (repeatable; default: configured subjects)")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter subjects by name pattern (supports wildcards, e.g. 'Commons*' or '*Time*')")
}
