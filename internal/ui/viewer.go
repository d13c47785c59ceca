package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"dbc/internal/domain"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Viewer displays a dataset interactively
type Viewer interface {
	View(subject string, records []domain.OutputRecord) error
}

// DatasetViewer browses a subject's dataset grouped by test id in a TUI
type DatasetViewer struct{}

// NewDatasetViewer creates a new DatasetViewer
func NewDatasetViewer() *DatasetViewer {
	return &DatasetViewer{}
}

// testGroup is the rows of one test id, in dataset order
type testGroup struct {
	testID  string
	records []domain.OutputRecord
}

func groupByTest(records []domain.OutputRecord) []testGroup {
	var groups []testGroup
	for _, r := range records {
		if n := len(groups); n > 0 && groups[n-1].testID == r.TestID {
			groups[n-1].records = append(groups[n-1].records, r)
			continue
		}
		groups = append(groups, testGroup{testID: r.TestID, records: []domain.OutputRecord{r}})
	}
	return groups
}

// View displays the dataset: tests on the left, their methods on the right
func (dv *DatasetViewer) View(subject string, records []domain.OutputRecord) error {
	if len(records) == 0 {
		color.Yellow("Dataset for %s is empty", subject)
		return nil
	}

	groups := groupByTest(records)
	unresolved := 0
	for _, r := range records {
		if r.Modifiers == domain.NotAvailable {
			unresolved++
		}
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, g := range groups {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s [gray](%d)[white]", i+1, g.testID, len(g.records)), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %s: %d tests, %d rows, %d unresolved | ↑↓ navigate, → details, ← back, Ctrl+C exit ",
			subject, len(groups), len(records), unresolved))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(groups) {
			detailsView.SetText(formatTestDetails(groups[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatTestDetails renders one test's methods using tview color tags
func formatTestDetails(g testGroup) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[cyan]Test: %s[white]\n\n", tview.Escape(g.testID))
	for _, r := range g.records {
		modifiers := r.Modifiers
		switch modifiers {
		case domain.NotAvailable:
			modifiers = "[red]N/A[white]"
		case "":
			modifiers = "[gray](package-private)[white]"
		default:
			modifiers = "[green]" + modifiers + "[white]"
		}

		fmt.Fprintf(w, "[yellow]%s[white]\t%s\n", tview.Escape(r.MethodID), tview.Escape(r.MethodRole))
		fmt.Fprintf(w, "  Header:\t%s\n", tview.Escape(r.Header))
		fmt.Fprintf(w, "  Modifiers:\t%s\n", modifiers)
		fmt.Fprintf(w, "  Name:\t%s\n", tview.Escape(r.FullyQualifiedName))
		fmt.Fprintf(w, "  Lines:\t%s-%s\n\n", r.StartLine, r.EndLine)
	}

	w.Flush()
	return builder.String()
}
