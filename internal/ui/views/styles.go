package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	PromptBrowse  lipgloss.Style
	Dim           lipgloss.Style
	Count         lipgloss.Style
	Name          lipgloss.Style
	Postcode      lipgloss.Style
	Selected      lipgloss.Style
	More          lipgloss.Style
	Help          lipgloss.Style
	HelpBox       lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		PromptBrowse: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:          lipgloss.NewStyle().Faint(true),
		Count: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1),
		Name:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Postcode: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		More: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2),
		Help: lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}

// Plain strips colors, for NO_COLOR terminals and the no_color setting
func (s *Styles) Plain() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:         plain.Bold(true),
		Prompt:        plain.Bold(true),
		PromptBrowse:  plain,
		Dim:           plain,
		Count:         plain.MarginBottom(1),
		Name:          plain,
		Postcode:      plain,
		Selected:      plain.Reverse(true),
		More:          s.More.UnsetForeground().UnsetBorderForeground(),
		Help:          plain,
		HelpBox:       s.HelpBox.UnsetBorderForeground(),
		Main:          s.Main,
		Scroll:        plain,
		StatusError:   plain.Bold(true),
		StatusLoading: plain,
	}
}
