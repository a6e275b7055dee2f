package playback

import (
	"time"

	"github.com/rs/zerolog"
)

// RenderFunc paints the frame at index.
type RenderFunc func(index int)

// scheduler runs the cooperative loop over a Player's state.
type scheduler struct {
	state  *State
	host   Host
	render RenderFunc
	clock  Clock
	log    zerolog.Logger

	last    time.Time
	primed  bool
	pending bool
	stats   Stats
}

// start clears the last tick timestamp and makes sure one opportunity is
// outstanding.
func (s *scheduler) start() {
	s.primed = false
	s.request()
}

// request asks the host for the next opportunity unless one is outstanding.
func (s *scheduler) request() {
	if s.pending {
		return
	}
	s.pending = true
	s.host.RequestFrame(s.tick)
}

// tick is the loop body, run once per opportunity.
func (s *scheduler) tick(now time.Time) {
	s.pending = false
	st := s.state

	if !st.playing {
		st.advancing = false
		return
	}

	if st.atTerminal() {
		st.playing = false
		st.advancing = false
		s.log.Debug().Int("index", st.index).Msg("playback already at end")
		return
	}

	if !s.primed {
		s.last = now
		s.primed = true
		s.request()
		return
	}

	elapsed := now.Sub(s.last)
	if elapsed < st.interval {
		s.stats.Throttled++
		s.request()
		return
	}

	st.advance(elapsed)
	s.last = now

	next := st.derivedIndex()
	if next == st.index {
		s.stats.Idle++
		s.request()
		return
	}

	st.index = next
	s.draw(next, elapsed)
	if st.atTerminal() {
		st.playing = false
	}

	st.advancing = st.playing
	if st.playing {
		s.request()
		return
	}

	s.log.Debug().
		Int("index", st.index).
		Float64("speed", st.speed).
		Int("renders", s.stats.Renders).
		Float64("render_ratio", s.stats.MeanRenderRatio).
		Msg("playback halted")
}

// draw renders index and records how much of the elapsed interval it took.
func (s *scheduler) draw(index int, elapsed time.Duration) {
	started := s.clock.Now()
	s.render(index)
	if elapsed > 0 {
		s.stats.observe(float64(s.clock.Now().Sub(started)) / float64(elapsed))
	}
}
