package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Search", []helpEntry{
		{"type", "Edit the query; results follow after a short pause"},
		{"Enter, Ctrl+N", "Show more stores"},
		{"Ctrl+R", "Retry the failed request"},
		{"Esc", "Clear the query"},
		{"Tab", "Switch to browse mode"},
		{"↑/↓", "Move through the results"},
		{"F1", "Toggle this help"},
	}},
	{"Browse", []helpEntry{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"Enter, m", "Show more stores"},
		{"r", "Retry the failed request"},
		{"Tab, /, Esc", "Back to the query"},
		{"?", "Toggle this help"},
		{"H", "Open this help in the pager"},
	}},
	{"Other", []helpEntry{
		{"q", "Quit (browse mode)"},
		{"Ctrl+C", "Quit"},
	}},
}

// RenderHelpContent renders the full key reference. It is shown in the help
// popup and piped into the pager.
func RenderHelpContent(styles *Styles) string {
	sectionStyle := styles.Title.MarginTop(1)
	keyStyle := styles.Postcode
	descStyle := styles.Name

	width := 0
	for _, section := range helpSections {
		for _, e := range section.entries {
			width = max(width, lipgloss.Width(e.keys))
		}
	}

	var help strings.Builder
	help.WriteString(styles.Title.Render("Store Finder Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			pad := strings.Repeat(" ", width-lipgloss.Width(e.keys))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

// scrollHelp returns the window of content starting at scrollOffset that fits height
func scrollHelp(content string, height, scrollOffset int, styles *Styles) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return content
	}

	maxOffset := totalLines - visibleHeight
	scrollOffset = max(0, min(scrollOffset, maxOffset))

	visibleLines := make([]string, visibleHeight)
	copy(visibleLines, lines[scrollOffset:scrollOffset+visibleHeight])

	if scrollOffset > 0 {
		visibleLines[0] = styles.Scroll.Render("↑ (more above)")
	}
	if scrollOffset < maxOffset {
		visibleLines[len(visibleLines)-1] = styles.Scroll.Render("↓ (more below)")
	}

	return strings.Join(visibleLines, "\n")
}
