package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tessro/reel/internal/core"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 20*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan *core.Sequence, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(seq *core.Sequence, err error) {
			// A save can be seen half-written; only complete reloads count
			if err == nil {
				reloads <- seq
			}
		})
	}()

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	updated := `{"screen": [[[1]], [[2]], [[3]]], "player": [{}, {}, {}]}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for got := 0; got != 3; {
		select {
		case seq := <-reloads:
			got = seq.Len()
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Error("Run() did not return after cancel")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "run.json"), 0, zerolog.Nop())
	if err == nil {
		t.Error("NewWatcher() error = nil, want error for missing directory")
	}
}
