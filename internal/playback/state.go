// Package playback schedules which frame of a replay is on screen.
//
// A Player owns the playback State and a cooperative scheduling loop. The
// loop is driven by a Host, which delivers one scheduling opportunity per
// request; each opportunity integrates elapsed wall time into a fractional
// frame position and renders when the whole-frame index changes.
//
// A Player is not safe for concurrent use. Hosts serialise every command and
// tick onto one thread of control: the terminal UI runs them on the
// bubbletea update loop, and Loop runs them on its own goroutine.
package playback

import (
	"math"
	"time"
)

const (
	// DefaultSpeed is the speed magnitude restored by every speed reset.
	DefaultSpeed = 0.5

	// DefaultFPS is the default cap on index-affecting updates per second.
	DefaultFPS = 10
)

// State is the mutable description of what is being played and how fast.
type State struct {
	frameCount int
	position   float64
	index      int
	speed      float64
	playing    bool
	advancing  bool
	interval   time.Duration
}

func newState(frameCount int, speed float64, interval time.Duration) State {
	if frameCount < 0 {
		frameCount = 0
	}
	return State{
		frameCount: frameCount,
		speed:      speed,
		interval:   interval,
	}
}

// intervalForFPS converts a frames-per-second target into the throttle interval.
func intervalForFPS(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// lastIndex returns the final valid index, or 0 for an empty replay.
func (s *State) lastIndex() int {
	if s.frameCount == 0 {
		return 0
	}
	return s.frameCount - 1
}

// clampIndex bounds i to the valid index range.
func (s *State) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if last := s.lastIndex(); i > last {
		return last
	}
	return i
}

// derivedIndex is the whole-frame index for the continuous position.
// The position itself is left unclamped so sub-frame progress carries over.
func (s *State) derivedIndex() int {
	f := math.Floor(s.position)
	if f <= 0 {
		return 0
	}
	if f >= float64(s.lastIndex()) {
		return s.lastIndex()
	}
	return int(f)
}

// advance integrates elapsed wall time at the current speed.
func (s *State) advance(elapsed time.Duration) {
	s.position += s.speed * elapsed.Seconds()
}

// moveTo places both the index and the continuous position on frame i.
func (s *State) moveTo(i int) {
	s.index = i
	s.position = float64(i)
}

func (s *State) forward() bool {
	return s.speed >= 0
}

// atForwardEnd reports whether the index sits on the last frame.
func (s *State) atForwardEnd() bool {
	return s.index >= s.lastIndex()
}

// atTerminal reports whether the index is at the end playback is moving toward.
func (s *State) atTerminal() bool {
	if s.forward() {
		return s.index == s.lastIndex()
	}
	return s.index == 0
}
