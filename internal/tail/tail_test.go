package tail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tessro/reel/internal/core"
)

func TestDiffSnapshots(t *testing.T) {
	tests := []struct {
		name string
		prev *core.Snapshot
		curr core.Snapshot
		want []EventType
	}{
		{
			name: "first poll with replay",
			curr: core.Snapshot{FrameCount: 5, Speed: 0.5, IsPlaying: true},
			want: []EventType{EventReplayLoaded},
		},
		{
			name: "first poll already at end",
			curr: core.Snapshot{Index: 4, FrameCount: 5, Speed: 0.5},
			want: []EventType{EventReplayLoaded, EventReachedEnd},
		},
		{
			name: "first poll paused",
			curr: core.Snapshot{Index: 2, FrameCount: 5, Speed: 0.5},
			want: []EventType{EventReplayLoaded, EventPause},
		},
		{
			name: "first poll empty",
			curr: core.Snapshot{},
			want: nil,
		},
		{
			name: "advance",
			prev: &core.Snapshot{Index: 1, FrameCount: 5, Speed: 0.5, IsPlaying: true},
			curr: core.Snapshot{Index: 2, FrameCount: 5, Speed: 0.5, IsPlaying: true},
			want: []EventType{EventFrameChange},
		},
		{
			name: "reach end",
			prev: &core.Snapshot{Index: 3, FrameCount: 5, Speed: 0.5, IsPlaying: true},
			curr: core.Snapshot{Index: 4, FrameCount: 5, Speed: 0.5},
			want: []EventType{EventFrameChange, EventReachedEnd},
		},
		{
			name: "reach start backwards",
			prev: &core.Snapshot{Index: 1, FrameCount: 5, Speed: -1, IsPlaying: true},
			curr: core.Snapshot{Index: 0, FrameCount: 5, Speed: -1},
			want: []EventType{EventFrameChange, EventReachedStart},
		},
		{
			name: "pause mid replay",
			prev: &core.Snapshot{Index: 2, FrameCount: 5, Speed: 0.5, IsPlaying: true},
			curr: core.Snapshot{Index: 2, FrameCount: 5, Speed: 0.5},
			want: []EventType{EventPause},
		},
		{
			name: "speed up and resume",
			prev: &core.Snapshot{Index: 2, FrameCount: 5, Speed: 0.5},
			curr: core.Snapshot{Index: 2, FrameCount: 5, Speed: 1, IsPlaying: true},
			want: []EventType{EventSpeedChange, EventResume},
		},
		{
			name: "new replay",
			prev: &core.Snapshot{Index: 4, FrameCount: 5, Speed: 0.5},
			curr: core.Snapshot{Index: 0, FrameCount: 9, Speed: 0.5, IsPlaying: true},
			want: []EventType{EventReplayLoaded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curr := tt.curr
			events := diffSnapshots(tt.prev, &curr)
			var got []EventType
			for _, e := range events {
				got = append(got, e.Type)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("events[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEvent_Halted(t *testing.T) {
	tests := []struct {
		typ  EventType
		want bool
	}{
		{EventFrameChange, false},
		{EventReachedEnd, true},
		{EventReachedStart, true},
		{EventPause, true},
		{EventResume, false},
		{EventSpeedChange, false},
		{EventReplayLoaded, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := (Event{Type: tt.typ}).Halted(); got != tt.want {
				t.Errorf("Halted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatcher_Start(t *testing.T) {
	var mu sync.Mutex
	snap := core.Snapshot{FrameCount: 3, Speed: 0.5, IsPlaying: true}
	read := func() (core.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		return snap, nil
	}

	w := NewWatcher(read, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	first := <-w.Events()
	if first.Type != EventReplayLoaded {
		t.Fatalf("first event = %v, want EventReplayLoaded", first.Type)
	}

	mu.Lock()
	snap.Index = 2
	snap.IsPlaying = false
	mu.Unlock()

	timeout := time.After(5 * time.Second)
	for reachedEnd := false; !reachedEnd; {
		select {
		case e := <-w.Events():
			reachedEnd = e.Type == EventReachedEnd
		case <-timeout:
			t.Fatal("no EventReachedEnd")
		}
	}

	w.Stop()
	if err := <-done; err != nil {
		t.Errorf("Start() error = %v, want nil after Stop", err)
	}
}

func TestWatcher_SkipsFailedPolls(t *testing.T) {
	calls := 0
	read := func() (core.Snapshot, error) {
		calls++
		return core.Snapshot{}, errors.New("loop stopped")
	}

	w := NewWatcher(read, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := w.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Start() error = %v, want context.DeadlineExceeded", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events() open after Start returned, want closed")
	}
	if calls < 2 {
		t.Errorf("calls = %d, want polling to continue past errors", calls)
	}
}

func TestFormatter(t *testing.T) {
	curr := &core.Snapshot{Index: 4, FrameCount: 5, Speed: -2}
	ts := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		opts  []FormatterOption
		event Event
		want  string
	}{
		{
			name:  "frame change plain",
			opts:  []FormatterOption{WithEmoji(false)},
			event: Event{Type: EventFrameChange, Current: curr},
			want:  "Frame 5 of 5",
		},
		{
			name:  "speed with timestamp",
			opts:  []FormatterOption{WithEmoji(false), WithTimestamp(true)},
			event: Event{Type: EventSpeedChange, Timestamp: ts, Current: curr},
			want:  "12:30:00.000 Speed: -2x",
		},
		{
			name:  "template",
			opts:  []FormatterOption{WithTemplate("{{.Type}} {{.Frame}}/{{.Frames}}")},
			event: Event{Type: EventReachedEnd, Current: curr},
			want:  "reached_end 5/5",
		},
		{
			name:  "bad template falls back",
			opts:  []FormatterOption{WithEmoji(false), WithTemplate("{{.Nope")},
			event: Event{Type: EventResume},
			want:  "Resumed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(tt.opts...).Format(tt.event)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}

	withEmoji := NewFormatter().Format(Event{Type: EventPause, Current: curr})
	if !strings.HasPrefix(withEmoji, "⏸️") {
		t.Errorf("Format() = %q, want emoji prefix", withEmoji)
	}
}
