package ui

import (
	"sketchedit/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tooltipMsg fires when the toolbar tooltip delay has elapsed. gen is the
// toolbar generation the timer was started for.
type tooltipMsg struct {
	gen uint64
}

// quitMsg signals that the application should quit
type quitMsg struct{}

// referencePagerMsg contains the result of a reference pager command
type referencePagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
