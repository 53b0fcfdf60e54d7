package ui

import (
	"storefinder/internal/search"
)

// SnapshotMsg carries a dispatcher snapshot produced off the UI goroutine
type SnapshotMsg struct {
	Snapshot search.Snapshot
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the transient status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
