package playback

import (
	"context"
	"errors"
	"time"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("playback loop stopped")

// DefaultRefresh is the opportunity cadence used when none is configured.
const DefaultRefresh = 16 * time.Millisecond

// Loop is a Host that owns a goroutine. Opportunities fire from a timer at
// a fixed cadence, and commands submitted with Do run on the same goroutine,
// so a Player bound to a Loop must only be touched from inside Do.
type Loop struct {
	refresh time.Duration
	cmds    chan func()
	stopped chan struct{}

	pending func(time.Time)
}

// NewLoop creates a loop that offers an opportunity every refresh interval
// while a request is outstanding.
func NewLoop(refresh time.Duration) *Loop {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &Loop{
		refresh: refresh,
		cmds:    make(chan func()),
		stopped: make(chan struct{}),
	}
}

// RequestFrame records fn for the next timer fire. It must be called from
// the loop goroutine.
func (l *Loop) RequestFrame(fn func(now time.Time)) {
	l.pending = fn
}

// Run services commands and opportunities until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	timer := time.NewTimer(l.refresh)
	timer.Stop()
	defer timer.Stop()
	armed := false

	for {
		if l.pending != nil && !armed {
			timer.Reset(l.refresh)
			armed = true
		}

		var fire <-chan time.Time
		if armed {
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case fn := <-l.cmds:
			fn()

		case now := <-fire:
			armed = false
			fn := l.pending
			l.pending = nil
			if fn != nil {
				fn(now)
			}
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(fn func()) error {
	done := make(chan struct{})
	select {
	case l.cmds <- func() {
		defer close(done)
		fn()
	}:
	case <-l.stopped:
		return ErrLoopStopped
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}
