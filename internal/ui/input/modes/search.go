package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"storefinder/internal/ui/input/types"
)

// SearchMode owns the query input. Printable keys fall through to the
// text input, so only control and arrow keys are bound here.
type SearchMode struct{}

func NewSearchMode() *SearchMode {
	return &SearchMode{}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "up":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "pgup":
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case "pgdown":
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case "enter", "ctrl+n":
		if ctx.MoreAvailable() {
			return []types.Action{types.LoadMoreAction{}}, true
		}
		return nil, true
	case "ctrl+r":
		if ctx.HasError() {
			return []types.Action{types.RetryAction{}}, true
		}
		return nil, true
	case "tab":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true
	case "f1":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "esc":
		if ctx.Query() != "" {
			return []types.Action{types.ClearQueryAction{}}, true
		}
		return nil, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}
