package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"storefinder/internal/config"
	"storefinder/internal/search"
	"storefinder/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	config *config.Config
	width  int
	height int
	help   help.Model
	keys   help.KeyMap
}

// NewViewModel creates a new view model
func NewViewModel(cfg *config.Config, keys help.KeyMap) *ViewModel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ViewModel{
		config: cfg,
		help:   help.New(),
		keys:   keys,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// UIState is the presentation state the model keeps next to the search snapshot
type UIState struct {
	Input            string
	Browsing         bool
	SelectedIndex    int
	ViewportOffset   int
	ViewportHeight   int
	Spinner          string
	StatusMessage    string
	ShowHelp         bool
	HelpScrollOffset int
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState(snap search.Snapshot, ui UIState) views.ViewState {
	errText := ""
	if snap.Err != nil {
		errText = ErrorText(snap.Err)
	}

	return views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Input:            ui.Input,
		Browsing:         ui.Browsing,
		Results:          snap.Results,
		TotalCount:       snap.TotalCount,
		Busy:             snap.Busy,
		Scheduled:        snap.Scheduled,
		MoreAvailable:    snap.MoreAvailable(),
		Error:            errText,
		SelectedIndex:    ui.SelectedIndex,
		ViewportOffset:   ui.ViewportOffset,
		ViewportHeight:   ui.ViewportHeight,
		ShowPostcodes:    vm.config.UI.ShowPostcodes,
		Spinner:          ui.Spinner,
		StatusMessage:    ui.StatusMessage,
		ShowHelp:         ui.ShowHelp,
		HelpScrollOffset: ui.HelpScrollOffset,
		HelpModel:        vm.help,
		Keys:             vm.keys,
	}
}
