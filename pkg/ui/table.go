package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TableColumn represents a left-aligned column in the table
type TableColumn struct {
	Header   string
	MinWidth int
	MaxWidth int // Longer cells are cut with an ellipsis; 0 means no limit
}

// Table represents a data table
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

// AddRow adds a row to the table, fitting each cell to its column's MaxWidth
func (t *Table) AddRow(cells []string) {
	row := make([]string, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = fitCell(cells[i], t.Columns[i].MaxWidth)
		}
	}
	t.Rows = append(t.Rows, row)
}

// Render renders the table as a string. Widths are measured in terminal
// cells, so icons and wide runes line up.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(col.MinWidth, lipgloss.Width(col.Header))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var builder strings.Builder

	header := make([]string, len(t.Columns))
	separator := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = padRight(col.Header, widths[i])
		separator[i] = strings.Repeat("─", widths[i])
	}
	builder.WriteString(StyleTableHeader.Render(strings.Join(header, "  ")))
	builder.WriteString("\n")
	builder.WriteString(StyleTableBorder.Render(strings.Join(separator, "  ")))
	builder.WriteString("\n")

	for idx, row := range t.Rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = padRight(cell, widths[i])
		}

		// Alternate row styles
		rowStyle := StyleTableRow
		if idx%2 == 1 {
			rowStyle = StyleTableRowAlt
		}

		builder.WriteString(rowStyle.Render(strings.Join(parts, "  ")))
		builder.WriteString("\n")
	}

	return builder.String()
}

func fitCell(s string, maxWidth int) string {
	if maxWidth <= 0 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate(s, maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// RenderSimpleList renders a simple bulleted list
func RenderSimpleList(items []string) string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(StyleInfo.Render("  • "))
		builder.WriteString(item)
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
