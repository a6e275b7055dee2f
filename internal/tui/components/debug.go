package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tessro/reel/internal/core"
	"github.com/tessro/reel/internal/tui/styles"
)

// DebugTable shows the variables recorded for the current frame.
type DebugTable struct{}

// NewDebugTable creates a new DebugTable component
func NewDebugTable() *DebugTable {
	return &DebugTable{}
}

// Rows returns name/value pairs sorted by name.
func (d *DebugTable) Rows(values core.Values) [][]string {
	keys := values.Keys()
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, FormatValue(values[k])})
	}
	return rows
}

// Render renders the table, or a placeholder when there is nothing to show.
func (d *DebugTable) Render(values core.Values) string {
	if len(values) == 0 {
		return styles.Panel(false).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.PanelTitle("Values", false),
			styles.Muted.Render("No values for this frame"),
		))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Highlight.Padding(0, 1)
			}
			if col == 0 {
				return styles.Muted.Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(styles.Text).Padding(0, 1)
		}).
		Headers("Name", "Value").
		Rows(d.Rows(values)...)

	return t.String()
}

// CopyText renders values as "name: value" lines for the clipboard.
func (d *DebugTable) CopyText(values core.Values) string {
	var b strings.Builder
	for _, row := range d.Rows(values) {
		fmt.Fprintf(&b, "%s: %s\n", row[0], row[1])
	}
	return b.String()
}

// FormatValue renders a recorded value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
