package core

import (
	"fmt"

	rerrors "github.com/tessro/reel/internal/errors"
)

// Source indicates where a replay was loaded from.
type Source string

const (
	SourceFile   Source = "file"
	SourceServer Source = "server"
)

// Sequence is a loaded replay: frames with their per-frame debug values.
type Sequence struct {
	ID     string   `json:"id"`
	Frames []Frame  `json:"screen"`
	Values []Values `json:"player"`
	Seed   string   `json:"seed"`
	Source Source   `json:"source"`
	Origin string   `json:"origin"`
}

// Len returns the number of frames in the sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Frame returns the frame at index i, or nil if out of range.
func (s *Sequence) Frame(i int) Frame {
	if s == nil || i < 0 || i >= len(s.Frames) {
		return nil
	}
	return s.Frames[i]
}

// ValuesAt returns the debug values at index i, or nil if out of range.
func (s *Sequence) ValuesAt(i int) Values {
	if s == nil || i < 0 || i >= len(s.Values) {
		return nil
	}
	return s.Values[i]
}

// Validate checks that every frame has a matching values entry.
func (s *Sequence) Validate() error {
	if s == nil {
		return rerrors.ErrEmptyReplay
	}
	if len(s.Frames) != len(s.Values) {
		return fmt.Errorf("%w: %d frames, %d values", rerrors.ErrMismatchedSequence, len(s.Frames), len(s.Values))
	}
	return nil
}
