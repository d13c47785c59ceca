package commands

import (
	"fmt"

	"dbc/internal/config"
	"dbc/internal/discovery"
	"dbc/internal/export"
	"dbc/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ExportCommand handles the export command
type ExportCommand struct {
	config *config.Config
	filter *discovery.Filter
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(cfg *config.Config, filter *discovery.Filter) *ExportCommand {
	return &ExportCommand{
		config: cfg,
		filter: filter,
	}
}

// Execute runs the command
func (ec *ExportCommand) Execute(cmd *cobra.Command, args []string) error {
	subjects := ec.filter.FilterByName(ec.config.Subjects, ec.config.Flags.NameFilter)
	if len(subjects) == 0 {
		color.Yellow("No subjects to export")
		return nil
	}

	exporter, err := export.NewMySQLExporter(ec.config, zap.L())
	if err != nil {
		return err
	}
	defer exporter.Close()

	for _, subject := range subjects {
		records, err := storage.ReadDataset(ec.config.GetOutputPath(subject))
		if err != nil {
			return fmt.Errorf("subject %s: %w", subject, err)
		}
		if err := exporter.Export(subject, records); err != nil {
			return fmt.Errorf("subject %s: %w", subject, err)
		}
		color.Green("✓ %s: %d rows -> %s", subject, len(records), ec.config.GetTableName(subject))
	}
	return nil
}
