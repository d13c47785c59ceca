package commands

import (
	"dbc/internal/config"
	"dbc/internal/storage"
	"dbc/internal/ui"

	"github.com/spf13/cobra"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config *config.Config
	viewer ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{
		config: cfg,
		viewer: viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	subject := args[0]
	records, err := storage.ReadDataset(vc.config.GetOutputPath(subject))
	if err != nil {
		return err
	}

	return vc.viewer.View(subject, records)
}
