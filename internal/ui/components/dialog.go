package components

import (
	"github.com/charmbracelet/lipgloss"
)

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#273540")).
	Padding(1, 2).
	Width(48)

// ConfirmDialog renders a yes/no confirmation. hint names the keys.
func ConfirmDialog(title, message, hint string) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7f57b4")).
		Bold(true).
		Render(SanitizeOneLine(title))

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9ba0bf")).
		Render(SanitizeText(message))

	hintLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9ba0bf")).
		Render("\n" + hint)

	return dialogStyle.Render(header + "\n\n" + body + hintLine)
}
