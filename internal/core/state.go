package core

import (
	"fmt"
	"strconv"
)

// Snapshot is a read-only view of a player's position and speed.
type Snapshot struct {
	Index      int     `json:"index"`
	FrameCount int     `json:"frame_count"`
	Position   float64 `json:"position"`
	Speed      float64 `json:"speed"`
	IsPlaying  bool    `json:"is_playing"`
}

// HasFrames returns true if a non-empty replay is loaded.
func (s *Snapshot) HasFrames() bool {
	return s != nil && s.FrameCount > 0
}

// AtEnd returns true if the current index is the last frame.
func (s *Snapshot) AtEnd() bool {
	return s.HasFrames() && s.Index >= s.FrameCount-1
}

// Reversed returns true if playback runs backwards.
func (s *Snapshot) Reversed() bool {
	return s != nil && s.Speed < 0
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *Snapshot) ProgressPercent() float64 {
	if !s.HasFrames() {
		return 0
	}
	if s.FrameCount == 1 {
		return 100
	}
	return float64(s.Index) / float64(s.FrameCount-1) * 100
}

// Label returns the one-based "Frame X of N" position label.
func (s *Snapshot) Label() string {
	if !s.HasFrames() {
		return "Frame 0 of 0"
	}
	return fmt.Sprintf("Frame %d of %d", s.Index+1, s.FrameCount)
}

// SpeedLabel returns the signed speed as a multiplier, e.g. "-0.5x".
func (s *Snapshot) SpeedLabel() string {
	return FormatSpeed(s.Speed)
}

// FormatSpeed renders a signed speed such as "2x" or "-0.5x".
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64) + "x"
}
