package ui

import (
	"fmt"
	"io"

	"dbc/internal/domain"

	"github.com/fatih/color"
)

// SubjectStatus describes which inputs of a subject are present
type SubjectStatus struct {
	Subject     string
	RoutesFound bool
	DataFound   bool
	Classes     int
	ClassesErr  error
}

// Ready reports whether the subject can be built
func (s SubjectStatus) Ready() bool {
	return s.RoutesFound && s.DataFound
}

// Formatter formats and displays output
type Formatter struct {
	out io.Writer

	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	white  *color.Color
}

// NewFormatter creates a Formatter writing to out (color.Output when nil)
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = color.Output
	}
	return &Formatter{
		out:    out,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		white:  color.New(color.FgWhite),
	}
}

// PrintBuildStats displays a build summary
func (f *Formatter) PrintBuildStats(summary *domain.BuildSummary) {
	meta := summary.Meta

	fmt.Fprintln(f.out)
	f.cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	f.cyan.Fprintln(f.out, "║                      Dataset Build Summary                    ║")
	f.cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Subjects", f.white, "%-27d", meta.Subjects)
	f.row("Rows Written", f.green, "%-27d", meta.TotalRows)
	f.row("Unresolved Modifiers", f.yellow, "%-27d", meta.TotalUnresolved)
	f.row("Cardinality", f.white, "%-27s", meta.Cardinality)
	f.row("Duration", f.white, "%-27s", fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintf(f.out, "│ %-31s │ ", "Timestamp")
	f.white.Fprintf(f.out, "%-27s", meta.Timestamp)
	fmt.Fprintln(f.out, " │")
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	if len(summary.Subjects) == 0 {
		return
	}

	fmt.Fprintln(f.out)
	fmt.Fprintf(f.out, "%-16s %8s %8s %8s %11s  %s\n", "SUBJECT", "ROUTES", "METHODS", "ROWS", "UNRESOLVED", "OUTPUT")
	for _, s := range summary.Subjects {
		f.cyan.Fprintf(f.out, "%-16s", s.Subject)
		fmt.Fprintf(f.out, " %8d %8d ", s.Routes, s.Methods)
		f.green.Fprintf(f.out, "%8d", s.Rows)
		if s.Unresolved > 0 {
			f.yellow.Fprintf(f.out, " %11d", s.Unresolved)
		} else {
			fmt.Fprintf(f.out, " %11d", s.Unresolved)
		}
		fmt.Fprintf(f.out, "  %s\n", s.OutputPath)
	}
}

func (f *Formatter) row(label string, c *color.Color, format string, value any) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, format, value)
	fmt.Fprintln(f.out, " │")
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// PrintSubjectList prints subjects as a tree with the state of their inputs
func (f *Formatter) PrintSubjectList(statuses []SubjectStatus) {
	f.green.Fprintf(f.out, "Found %d subject(s):\n\n", len(statuses))

	for i, s := range statuses {
		isLast := i == len(statuses)-1
		branch, indent := "├── ", "│   "
		if isLast {
			branch, indent = "└── ", "    "
		}

		marker := f.green.Sprint("[ready]")
		if !s.Ready() {
			marker = f.red.Sprint("[missing inputs]")
		}
		f.cyan.Fprintf(f.out, "%s%s", branch, s.Subject)
		fmt.Fprintf(f.out, " %s\n", marker)

		fmt.Fprintf(f.out, "%s├── routes table: %s\n", indent, f.presence(s.RoutesFound))
		fmt.Fprintf(f.out, "%s├── data table:   %s\n", indent, f.presence(s.DataFound))
		if s.ClassesErr != nil {
			fmt.Fprintf(f.out, "%s└── classes:      %s\n", indent, f.yellow.Sprint("none (modifiers will be N/A)"))
		} else {
			fmt.Fprintf(f.out, "%s└── classes:      %d\n", indent, s.Classes)
		}
	}
}

func (f *Formatter) presence(found bool) string {
	if found {
		return f.green.Sprint("found")
	}
	return f.red.Sprint("missing")
}
