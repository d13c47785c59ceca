package commands

import (
	"os"

	"dbc/internal/config"
	"dbc/internal/discovery"
	"dbc/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *discovery.Filter, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner(lc.config)

	subjects := lc.config.Subjects
	if lc.config.Flags.Discover {
		found, err := scanner.Subjects()
		if err != nil {
			return err
		}
		subjects = found
	}

	subjects = lc.filter.FilterByName(subjects, lc.config.Flags.NameFilter)
	if len(subjects) == 0 {
		color.Yellow("No subjects found")
		return nil
	}

	lc.formatter.PrintSubjectList(SubjectStatuses(lc.config, scanner, subjects))
	return nil
}

// SubjectStatuses checks the inputs of each subject
func SubjectStatuses(cfg *config.Config, scanner *discovery.Scanner, subjects []string) []ui.SubjectStatus {
	statuses := make([]ui.SubjectStatus, 0, len(subjects))
	for _, subject := range subjects {
		status := ui.SubjectStatus{
			Subject:     subject,
			RoutesFound: fileExists(cfg.GetRoutesPath(subject)),
			DataFound:   fileExists(cfg.GetDataPath(subject)),
		}
		status.Classes, status.ClassesErr = scanner.CountClasses(subject)
		statuses = append(statuses, status)
	}
	return statuses
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
