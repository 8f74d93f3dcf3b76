// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/freshen/internal/runner"
	"github.com/raphi011/freshen/internal/ui/styles"
)

// SummaryHeaders are the columns of the run summary table.
var SummaryHeaders = []string{"REPO", "STATUS", "STEP", "MESSAGE"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// ResultRow converts a result to a summary table row. The message is cut to
// its first line.
func ResultRow(r runner.Result) []string {
	msg, _, _ := strings.Cut(r.Message, "\n")
	return []string{
		r.Repo,
		styles.FormatStatus(r.Succeeded),
		styles.FormatStep(string(r.StepFailed)),
		styles.MutedStyle.Render(msg),
	}
}

// UnknownRow is the summary table row for a filter name that matched no
// repository.
func UnknownRow(name string) []string {
	return []string{name, styles.FormatUnknown(), "", ""}
}

// RenderSummary renders the results followed by unknown filter names.
func RenderSummary(results []runner.Result, unknown []string) string {
	rows := make([][]string, 0, len(results)+len(unknown))
	for _, r := range results {
		rows = append(rows, ResultRow(r))
	}
	for _, name := range unknown {
		rows = append(rows, UnknownRow(name))
	}
	return RenderTable(SummaryHeaders, rows)
}
