package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	hintSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#273540"))
	statusBarStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

const hintSep = "  "

// StatusBar renders the key hints, wrapped to width. A width of zero keeps
// everything on one line.
func StatusBar(hints []string, width int) string {
	if len(hints) == 0 {
		return ""
	}
	rows := wrapSegments(hints, width-statusBarStyle.GetPaddingLeft())
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, statusBarStyle.Render(row))
	}
	return strings.Join(lines, "\n")
}

// Hint formats one key hint like "tab next".
func Hint(key, desc string) string {
	return keyCapStyle.Render(SanitizeOneLine(key)) + " " + hintDescStyle.Render(SanitizeOneLine(desc))
}

func wrapSegments(segments []string, width int) []string {
	sep := hintSepStyle.Render(hintSep)
	if width <= 0 {
		return []string{strings.Join(segments, sep)}
	}
	sepWidth := lipgloss.Width(sep)
	rows := make([]string, 0, 2)
	var current []string
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if len(current) > 0 && currentWidth+sepWidth+segWidth > width {
			rows = append(rows, strings.Join(current, sep))
			current = nil
			currentWidth = 0
		}
		if len(current) > 0 {
			currentWidth += sepWidth
		}
		current = append(current, seg)
		currentWidth += segWidth
	}
	if len(current) > 0 {
		rows = append(rows, strings.Join(current, sep))
	}
	return rows
}
