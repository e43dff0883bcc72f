package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorSecondary  = lipgloss.Color("#436b77") // teal
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorError      = lipgloss.Color("#6d424b") // red
	ColorBorder     = lipgloss.Color("#273540") // border
	ColorHighlight  = lipgloss.Color("#1f2530") // active row
)

// --- Reusable Styles ---

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	FocusLabelStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// MatchStyle marks the part of a suggestion that matched the query.
	MatchStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Underline(true)

	SuggestionActiveStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	ButtonFocusStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorPrimary).
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Bold(true).
				Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				Faint(true).
				Padding(0, 2)
)
