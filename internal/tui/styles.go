package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#1D70B8")
	ColorAccent  = lipgloss.Color("#FFDD00")
	ColorSuccess = lipgloss.Color("#00703C")
	ColorDanger  = lipgloss.Color("#D4351C")
	ColorMuted   = lipgloss.Color("#6F777B")
	ColorBorder  = lipgloss.Color("#B1B4B6")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger).
			Padding(1, 2)

	BlockStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(0, 1)
)

// TrendStyle picks the style for a year delta; fewer years is better.
func TrendStyle(delta int) lipgloss.Style {
	switch {
	case delta < 0:
		return MetricPositiveStyle
	case delta > 0:
		return MetricNegativeStyle
	}
	return MetricValueStyle
}
