package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func attachmentColumns() []TableColumn {
	return []TableColumn{
		{Header: "", Width: 3},
		{Header: "Name", Width: 20},
		{Header: "Size", Width: 8, Align: lipgloss.Right},
		{Header: "Type", Width: 4},
	}
}

func TestTableGridWidthAndContent(t *testing.T) {
	out := TableGrid(attachmentColumns(), [][]string{
		{Checkbox(true), "invoice.pdf", "9 B", "PDF"},
		{Checkbox(false), "items.csv", "1.2 kB", "XLS"},
	}, 50)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 50, lipgloss.Width(line))
	}
	clean := SanitizeText(out)
	assert.Contains(t, clean, "Name")
	assert.Contains(t, clean, "[x]")
	assert.Contains(t, clean, "[ ]")
	assert.Contains(t, clean, "invoice.pdf")
	assert.Contains(t, clean, "1.2 kB")
}

func TestTableGridClampsLongCells(t *testing.T) {
	out := TableGrid(attachmentColumns(), [][]string{
		{Checked, strings.Repeat("verylongname", 10), "1 MB", "PDF"},
	}, 50)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 50)
	}
}

func TestTableGridDegenerateInput(t *testing.T) {
	assert.Equal(t, "", TableGrid(attachmentColumns(), nil, 0))
	assert.Equal(t, 10, lipgloss.Width(TableGrid(nil, nil, 10)))
}

func TestRenderGridCellAlignment(t *testing.T) {
	assert.Equal(t, "  ab", renderGridCell("ab", 4, lipgloss.Right))
	assert.Equal(t, " ab ", renderGridCell("ab", 4, lipgloss.Center))
	assert.Equal(t, "ab  ", renderGridCell("ab", 4, lipgloss.Left))
	assert.Equal(t, "", renderGridCell("ab", 0, lipgloss.Left))
}

func TestCheckbox(t *testing.T) {
	assert.Equal(t, "[x]", Checkbox(true))
	assert.Equal(t, "[ ]", Checkbox(false))
}
