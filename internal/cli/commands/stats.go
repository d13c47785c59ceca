package commands

import (
	"dbc/internal/storage"
	"dbc/internal/ui"

	"github.com/spf13/cobra"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(st storage.Storage, formatter *ui.Formatter) *StatsCommand {
	return &StatsCommand{
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *StatsCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := sc.storage.Load()
	if err != nil {
		return err
	}

	sc.formatter.PrintBuildStats(summary)
	return nil
}
