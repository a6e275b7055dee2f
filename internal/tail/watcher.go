package tail

import (
	"context"
	"time"

	"github.com/tessro/reel/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventFrameChange EventType = iota
	EventReachedEnd
	EventReachedStart
	EventPause
	EventResume
	EventSpeedChange
	EventReplayLoaded
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.Snapshot
	Current   *core.Snapshot
}

// Halted reports whether the event marks playback coming to rest.
func (e Event) Halted() bool {
	switch e.Type {
	case EventReachedEnd, EventReachedStart, EventPause:
		return true
	}
	return false
}

// SnapshotFunc reads the player state from whichever goroutine owns it.
type SnapshotFunc func() (core.Snapshot, error)

// Watcher polls a player for state changes and emits events.
type Watcher struct {
	snapshot SnapshotFunc
	interval time.Duration
	events   chan Event
	done     chan struct{}
}

// NewWatcher creates a new state watcher.
func NewWatcher(snapshot SnapshotFunc, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	return &Watcher{
		snapshot: snapshot,
		interval: interval,
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling for state changes.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *core.Snapshot

	// Get initial state
	if snap, err := w.snapshot(); err == nil {
		prev = &snap
		w.emit(diffSnapshots(nil, prev))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			snap, err := w.snapshot()
			if err != nil {
				continue
			}
			curr := &snap
			w.emit(diffSnapshots(prev, curr))
			prev = curr
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) emit(events []Event) {
	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(prev, curr *core.Snapshot) []Event {
	if curr == nil {
		return nil
	}

	now := time.Now()
	var events []Event
	add := func(t EventType) {
		events = append(events, Event{
			Type:      t,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// First poll - no previous state. A replay that already halted still
	// reports how it stopped.
	if prev == nil {
		if curr.HasFrames() {
			add(EventReplayLoaded)
			if !curr.IsPlaying {
				add(haltEvent(curr))
			}
		}
		return events
	}

	if prev.FrameCount != curr.FrameCount {
		add(EventReplayLoaded)
		return events
	}

	if prev.Index != curr.Index {
		add(EventFrameChange)
	}

	if prev.Speed != curr.Speed {
		add(EventSpeedChange)
	}

	// Pause/Resume detection
	if prev.IsPlaying && !curr.IsPlaying {
		add(haltEvent(curr))
	} else if !prev.IsPlaying && curr.IsPlaying {
		add(EventResume)
	}

	return events
}

// haltEvent classifies a stopped snapshot by where playback stopped.
func haltEvent(curr *core.Snapshot) EventType {
	switch {
	case curr.AtEnd() && !curr.Reversed():
		return EventReachedEnd
	case curr.Index == 0 && curr.Reversed():
		return EventReachedStart
	default:
		return EventPause
	}
}
