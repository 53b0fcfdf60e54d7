package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storefinder/internal/ui/input/modes"
	"storefinder/internal/ui/input/types"
)

// Handler routes key presses to the active mode and owns the query input
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
	keys        types.KeyMap
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = "store name or postcode"
	ti.Prompt = "" // Prompt is handled in the UI layer
	ti.CharLimit = 64
	ti.Focus()

	keys := types.DefaultKeyMap()
	h := &Handler{
		currentMode: types.ModeSearch,
		textInput:   &ti,
		keys:        keys,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeSearch] = modes.NewSearchMode()
	h.modes[types.ModeBrowse] = modes.NewBrowseMode(keys)

	return h
}

// HandleKey returns the actions for msg. In search mode keys the mode does
// not consume edit the query, which yields an UpdateTextAction when the value changes.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
			h.currentMode = a.Mode
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)

			if h.currentMode == types.ModeSearch {
				cmd = h.textInput.Focus()
			} else {
				h.textInput.Blur()
			}
		case types.ClearQueryAction:
			h.textInput.Reset()
			allActions = append(allActions, types.UpdateTextAction{Text: ""})
		default:
			allActions = append(allActions, action)
		}
	}

	if !consumed && h.currentMode == types.ModeSearch {
		before := h.textInput.Value()
		*h.textInput, cmd = h.textInput.Update(msg)
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after})
		}
	}

	return allActions, cmd
}

// CurrentMode returns the active input mode
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// TextInput returns the query input
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Keys returns the key bindings
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// Value returns the raw query
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// SetValue replaces the query without producing an action
func (h *Handler) SetValue(query string) {
	h.textInput.SetValue(query)
	h.textInput.CursorEnd()
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeSearch {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
