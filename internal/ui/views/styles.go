package views

import (
	"github.com/charmbracelet/lipgloss"

	"searchwidget/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ResultTitle   lipgloss.Style
	ResultLink    lipgloss.Style
	ResultSnippet lipgloss.Style
	ScorePositive lipgloss.Style
	ScoreNegative lipgloss.Style
	ScoreNeutral  lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusEmpty   lipgloss.Style
	AlertBox      lipgloss.Style
	InfoBox       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Button:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ButtonFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("99")),
		ResultTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ResultLink:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Underline(true),
		ResultSnippet: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ScorePositive: badge.Foreground(lipgloss.Color("78")),  // green
		ScoreNegative: badge.Foreground(lipgloss.Color("203")), // red
		ScoreNeutral:  badge.Foreground(lipgloss.Color("241")), // gray
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 3),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
	}
}

// ScoreStyle returns the badge style for a score class
func (s *Styles) ScoreStyle(class domain.ScoreClass) lipgloss.Style {
	switch class {
	case domain.ScorePositive:
		return s.ScorePositive
	case domain.ScoreNegative:
		return s.ScoreNegative
	default:
		return s.ScoreNeutral
	}
}
