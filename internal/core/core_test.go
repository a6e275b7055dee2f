package core

import (
	"errors"
	"reflect"
	"testing"

	rerrors "github.com/tessro/reel/internal/errors"
)

func TestSnapshot_Label(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
		want string
	}{
		{"nil", nil, "Frame 0 of 0"},
		{"empty", &Snapshot{}, "Frame 0 of 0"},
		{"first", &Snapshot{Index: 0, FrameCount: 5}, "Frame 1 of 5"},
		{"last", &Snapshot{Index: 4, FrameCount: 5}, "Frame 5 of 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshot_ProgressPercent(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want float64
	}{
		{"empty", Snapshot{}, 0},
		{"single frame", Snapshot{FrameCount: 1}, 100},
		{"start", Snapshot{Index: 0, FrameCount: 5}, 0},
		{"middle", Snapshot{Index: 2, FrameCount: 5}, 50},
		{"end", Snapshot{Index: 4, FrameCount: 5}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.ProgressPercent(); got != tt.want {
				t.Errorf("ProgressPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_AtEndReversed(t *testing.T) {
	s := &Snapshot{Index: 2, FrameCount: 3, Speed: -1}
	if !s.AtEnd() {
		t.Error("AtEnd() = false, want true")
	}
	if !s.Reversed() {
		t.Error("Reversed() = false, want true")
	}

	var none *Snapshot
	if none.AtEnd() || none.Reversed() {
		t.Error("nil snapshot should be neither at end nor reversed")
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		speed float64
		want  string
	}{
		{0.5, "0.5x"},
		{2, "2x"},
		{-1, "-1x"},
		{-0.25, "-0.25x"},
		{1048576, "1048576x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSpeed(tt.speed); got != tt.want {
				t.Errorf("FormatSpeed(%v) = %q, want %q", tt.speed, got, tt.want)
			}
		})
	}
}

func TestFrame_Size(t *testing.T) {
	f := Frame{{1, 2, 3}, {4}, {5, 6}}
	if f.Height() != 3 {
		t.Errorf("Height() = %d, want 3", f.Height())
	}
	if f.Width() != 3 {
		t.Errorf("Width() = %d, want 3", f.Width())
	}
}

func TestValues_Keys(t *testing.T) {
	v := Values{"y": 1, "x": 2, "hp": 3}
	want := []string{"hp", "x", "y"}
	if got := v.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestSequence(t *testing.T) {
	seq := &Sequence{
		Frames: []Frame{{{1}}, {{2}}},
		Values: []Values{{"x": 1}, {"x": 2}},
	}
	if seq.Len() != 2 {
		t.Errorf("Len() = %d, want 2", seq.Len())
	}
	if got := seq.Frame(1); !reflect.DeepEqual(got, Frame{{2}}) {
		t.Errorf("Frame(1) = %v, want [[2]]", got)
	}
	if seq.Frame(2) != nil || seq.Frame(-1) != nil {
		t.Error("Frame() out of range should be nil")
	}
	if seq.ValuesAt(5) != nil {
		t.Error("ValuesAt() out of range should be nil")
	}
	if err := seq.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	seq.Values = seq.Values[:1]
	if err := seq.Validate(); !errors.Is(err, rerrors.ErrMismatchedSequence) {
		t.Errorf("Validate() error = %v, want ErrMismatchedSequence", err)
	}

	var none *Sequence
	if none.Len() != 0 || none.Frame(0) != nil {
		t.Error("nil sequence should be empty")
	}
	if err := none.Validate(); !errors.Is(err, rerrors.ErrEmptyReplay) {
		t.Errorf("Validate() on nil = %v, want ErrEmptyReplay", err)
	}
}
