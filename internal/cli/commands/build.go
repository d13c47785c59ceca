package commands

import (
	"fmt"

	"dbc/internal/config"
	"dbc/internal/discovery"
	"dbc/internal/export"
	"dbc/internal/pipeline"
	"dbc/internal/storage"
	"dbc/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// BuildCommand handles the build command
type BuildCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewBuildCommand creates a new BuildCommand
func NewBuildCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
) *BuildCommand {
	return &BuildCommand{
		config:    cfg,
		filter:    filter,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (bc *BuildCommand) Execute(cmd *cobra.Command, args []string) error {
	subjects := bc.filter.FilterByName(bc.config.Subjects, bc.config.Flags.NameFilter)
	if len(subjects) == 0 {
		color.Yellow("No subjects to build")
		return nil
	}

	p := pipeline.New(bc.config, bc.storage, zap.L())
	p.SetProgress(func(subject string, total int) pipeline.Progress {
		return ui.NewProgressBar(subject, total)
	})

	if bc.config.Flags.ExportMySQL {
		exporter, err := export.NewMySQLExporter(bc.config, zap.L())
		if err != nil {
			return fmt.Errorf("mysql export: %w", err)
		}
		defer exporter.Close()
		p.SetExporter(exporter)
	}

	summary, err := p.Run(subjects)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	bc.formatter.PrintBuildStats(summary)
	return nil
}
