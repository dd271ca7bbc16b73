// Package render turns view results into terminal text: lipgloss tables for
// cross-tabulations and summaries, horizontal bars for shares and keyword
// frequencies.
package render

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	colorPositive = lipgloss.Color("#8BC34A")
	colorNeutral  = lipgloss.Color("#FFC107")
	colorNegative = lipgloss.Color("#e53935")
	colorMuted    = lipgloss.Color("#6b7280")
	colorTitle    = lipgloss.Color("#2196F3")
)

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Title lipgloss.Style
	Bold  lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bar   map[string]lipgloss.Style
}

// DefaultStyles returns the colored style set. lipgloss drops the colors
// when the output is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorTitle),
		Bold:  lipgloss.NewStyle().Bold(true),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Bar: map[string]lipgloss.Style{
			"positive": lipgloss.NewStyle().Foreground(colorPositive),
			"neutral":  lipgloss.NewStyle().Foreground(colorNeutral),
			"negative": lipgloss.NewStyle().Foreground(colorNegative),
		},
	}
}

// barStyle returns the bar style for a label, falling back to the body style.
func (s Styles) barStyle(label string) lipgloss.Style {
	if st, ok := s.Bar[label]; ok {
		return st
	}
	return s.Body
}
