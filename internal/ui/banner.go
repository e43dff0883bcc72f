package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
┌─┐┌─┐┌─┐┌─┐┬─┐┬  ┌─┐┌─┐┌─┐  ┌┬┐┌─┐┬┬
├─┘├─┤├─┘├┤ ├┬┘│  ├┤ └─┐└─┐  │││├─┤││
┴  ┴ ┴┴  └─┘┴└─┴─┘└─┘└─┘└─┘  ┴ ┴┴ ┴┴┴─┘`

// RenderBanner returns the wordmark with subtitle centered underneath.
func RenderBanner(subtitle string) string {
	lines := splitLines(bannerArt)
	baseStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

	maxWidth := 0
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
		b.WriteString(baseStyle.Render(line) + "\n")
	}
	if subtitle == "" {
		return b.String()
	}

	subtitleWidth := lipgloss.Width(subtitle)
	blockWidth := max(maxWidth, subtitleWidth)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center)
	underlineStyle := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center)

	return b.String() + subtitleStyle.Render(subtitle) + "\n" +
		underlineStyle.Render(strings.Repeat("─", subtitleWidth))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
