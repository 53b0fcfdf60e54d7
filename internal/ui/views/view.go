package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"storefinder/internal/domain"
)

// NoResultsMessage is shown whenever there is nothing to list
const NoResultsMessage = "Please change the search criteria to find some stores"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Input            string
	Browsing         bool
	Results          []domain.Store
	TotalCount       int
	Busy             bool
	Scheduled        bool
	MoreAvailable    bool
	Error            string
	SelectedIndex    int
	ViewportOffset   int
	ViewportHeight   int
	ShowPostcodes    bool
	Spinner          string
	StatusMessage    string
	ShowHelp         bool
	HelpScrollOffset int
	HelpModel        help.Model
	Keys             help.KeyMap
}

// FormatCount renders the "N store(s) of T shown" readout
func FormatCount(shown, total int) string {
	return fmt.Sprintf("%d store(s) of %d shown", shown, total)
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(noColor bool) *Renderer {
	styles := NewStyles()
	if noColor {
		styles = styles.Plain()
	}
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the styles the renderer draws with
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		content := scrollHelp(RenderHelpContent(r.styles), state.Height, state.HelpScrollOffset, r.styles)
		return r.popupRender.RenderPopup(content, state.Height, state.Width, r.styles.HelpBox)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	prompt := r.styles.Prompt.Render("Search: ")
	if state.Browsing {
		prompt = r.styles.PromptBrowse.Render("Search: ")
	}
	content.WriteString(prompt)
	content.WriteString(state.Input)
	content.WriteString("\n\n")

	if state.TotalCount > 0 {
		content.WriteString(r.styles.Count.Render(FormatCount(len(state.Results), state.TotalCount)))
		content.WriteString("\n")
		content.WriteString(r.renderResults(state))
		if state.MoreAvailable {
			content.WriteString("\n")
			content.WriteString(r.styles.More.Render("More"))
		}
	} else {
		content.WriteString(r.styles.Dim.Render(NoResultsMessage))
	}

	if state.Error != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.StatusError.Render(fmt.Sprintf("⚠ %s (ctrl+r to retry)", state.Error)))
	}
	if state.StatusMessage != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.Dim.Render(state.StatusMessage))
	}

	helpText := ""
	if state.Keys != nil {
		helpText = state.HelpModel.View(state.Keys)
	}

	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(helpText))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("storefinder")

	indicator := ""
	switch {
	case state.Busy:
		indicator = r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Searching"))
	case state.Scheduled:
		indicator = r.styles.Dim.Render("…")
	}
	if indicator == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	// main container padding
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

// renderResults renders the rows inside the viewport
func (r *Renderer) renderResults(state ViewState) string {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	rowWidth := max(termWidth-4, 20)
	nameWidth := rowWidth * 2 / 3
	if !state.ShowPostcodes {
		nameWidth = rowWidth
	}

	start := max(0, state.ViewportOffset)
	end := len(state.Results)
	if state.ViewportHeight > 0 {
		end = min(end, start+state.ViewportHeight)
	}

	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		s := state.Results[i]
		row := lipgloss.NewStyle().Width(nameWidth).Render(r.styles.Name.Render(s.Name))
		if state.ShowPostcodes {
			row += r.styles.Postcode.Render(s.Postcode)
		}
		if i == state.SelectedIndex {
			row = r.styles.Selected.Width(rowWidth).Render(row)
		}
		lines = append(lines, row)
	}
	if end < len(state.Results) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(state.Results)-end)))
	}

	return strings.Join(lines, "\n")
}
