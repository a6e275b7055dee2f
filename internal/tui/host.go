package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is an update opportunity delivered by the bubbletea runtime.
type frameMsg time.Time

// frameHost schedules playback opportunities as tea.Tick commands. Requests
// are recorded during Update and turned into at most one outstanding tick
// by cmd.
type frameHost struct {
	refresh   time.Duration
	pending   func(time.Time)
	scheduled bool
}

func newFrameHost(refresh time.Duration) *frameHost {
	if refresh <= 0 {
		refresh = 16 * time.Millisecond
	}
	return &frameHost{refresh: refresh}
}

// RequestFrame implements playback.Host.
func (h *frameHost) RequestFrame(fn func(now time.Time)) {
	h.pending = fn
}

// cmd returns a tick command if a request is waiting and none is in flight.
func (h *frameHost) cmd() tea.Cmd {
	if h.pending == nil || h.scheduled {
		return nil
	}
	h.scheduled = true
	return tea.Tick(h.refresh, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// fire runs the waiting request, if any.
func (h *frameHost) fire(now time.Time) {
	h.scheduled = false
	fn := h.pending
	h.pending = nil
	if fn != nil {
		fn(now)
	}
}
