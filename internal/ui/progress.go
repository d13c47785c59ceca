package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows how many routes of a subject have been joined
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	subject string
	total   int
}

// NewProgressBar creates a new progress bar for a subject with total routes
func NewProgressBar(subject string, total int) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe(subject, 0, total)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar, subject: subject, total: total}
}

func describe(subject string, done, total int) string {
	return color.CyanString("Joining %-12s ", subject) +
		color.GreenString("[routes: %d/%d]", done, total)
}

// Update moves the bar to the number of joined routes
func (p *ProgressBar) Update(done int) {
	p.bar.Set(done)
	p.bar.Describe(describe(p.subject, done, p.total))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
