package playback

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tessro/reel/internal/core"
	rerrors "github.com/tessro/reel/internal/errors"
)

// Player plays a loaded replay through a Host.
type Player struct {
	state State
	sched scheduler
	seq   *core.Sequence

	interval     time.Duration
	defaultSpeed float64
	maxSpeed     float64
	clock        Clock
	log          zerolog.Logger
}

var _ core.Player = (*Player)(nil)

// New creates a Player with no replay loaded.
func New(host Host, render RenderFunc, opts ...Option) *Player {
	p := &Player{
		interval:     intervalForFPS(DefaultFPS),
		defaultSpeed: DefaultSpeed,
		clock:        systemClock{},
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if render == nil {
		render = func(int) {}
	}

	p.state = newState(0, p.defaultSpeed, p.interval)
	p.sched = scheduler{
		state:  &p.state,
		host:   host,
		render: render,
		clock:  p.clock,
		log:    p.log,
	}
	return p
}

// Load replaces the playback state with a replay of the given frames and
// per-frame values, then starts playing it. Any running playback is
// stopped first.
func (p *Player) Load(frames []core.Frame, values []core.Values) error {
	return p.LoadSequence(&core.Sequence{Frames: frames, Values: values})
}

// LoadSequence is Load for an already assembled sequence.
func (p *Player) LoadSequence(seq *core.Sequence) error {
	if seq == nil {
		return rerrors.ErrEmptyReplay
	}
	if err := seq.Validate(); err != nil {
		return fmt.Errorf("load replay: %w", err)
	}
	if seq.ID == "" {
		seq.ID = uuid.NewString()
	}

	p.Pause()
	p.seq = seq
	p.state = newState(seq.Len(), p.defaultSpeed, p.interval)
	p.sched.stats = Stats{}
	p.sched.log = p.log.With().Str("replay_id", seq.ID).Logger()
	p.sched.log.Debug().
		Int("frames", seq.Len()).
		Str("source", string(seq.Source)).
		Str("origin", seq.Origin).
		Msg("replay loaded")

	p.renderCurrent()
	p.Play()
	return nil
}

// Sequence returns the loaded replay, or nil.
func (p *Player) Sequence() *core.Sequence {
	return p.seq
}

// Play starts or resumes playback. Starting from the last frame rewinds to
// the first.
func (p *Player) Play() {
	if p.state.frameCount == 0 {
		return
	}
	if p.state.advancing {
		p.state.playing = true
		p.sched.request()
		return
	}
	if p.state.atForwardEnd() {
		p.state.moveTo(0)
	}
	p.state.playing = true
	p.sched.start()
}

// Pause stops advancing. The loop winds down on its next opportunity.
func (p *Player) Pause() {
	p.state.playing = false
}

// Stop pauses, resets speed, and returns to the first frame.
func (p *Player) Stop() {
	p.interrupt()
	p.resetSpeed()
	p.state.moveTo(0)
	p.renderCurrent()
}

// interrupt pauses for a command that places the position itself. A tick
// still outstanding no longer counts as advancing, so the next Play decides
// whether to rewind from the new position.
func (p *Player) interrupt() {
	p.Pause()
	p.state.advancing = false
}

// Toggle resets speed and flips between playing and paused.
func (p *Player) Toggle() {
	p.resetSpeed()
	if p.state.playing {
		p.Pause()
	} else {
		p.Play()
	}
}

// StepForward pauses and moves one frame toward the end.
func (p *Player) StepForward() {
	p.interrupt()
	if p.state.index < p.state.frameCount-1 {
		p.state.moveTo(p.state.index + 1)
	}
	p.resetSpeed()
	p.renderCurrent()
}

// StepBackward pauses and moves one frame toward the start.
func (p *Player) StepBackward() {
	p.interrupt()
	if p.state.index > 0 {
		p.state.moveTo(p.state.index - 1)
	}
	p.resetSpeed()
	p.renderCurrent()
}

// SeekTo pauses and jumps to index, clamped to the replay.
func (p *Player) SeekTo(index int) {
	p.interrupt()
	p.resetSpeed()
	p.state.moveTo(p.state.clampIndex(index))
	p.renderCurrent()
}

// SeekToEnd pauses and jumps to the last frame.
func (p *Player) SeekToEnd() {
	p.SeekTo(p.state.lastIndex())
}

// IncreaseSpeed doubles forward speed and plays. Reverse playback is first
// reset to the default forward speed.
func (p *Player) IncreaseSpeed() {
	if p.state.speed < 0 {
		p.resetSpeed()
	}
	p.setSpeed(p.state.speed * 2)
	p.Play()
}

// DecreaseSpeed doubles reverse speed and plays. Forward playback is first
// flipped to the default reverse speed; at the last frame it steps back once
// so there is somewhere to go.
func (p *Player) DecreaseSpeed() {
	if p.state.index >= p.state.frameCount-1 {
		p.StepBackward()
	}
	if p.state.speed > 0 {
		p.resetSpeed()
		p.state.speed = -p.state.speed
	}
	p.setSpeed(p.state.speed * 2)
	p.Play()
}

// CurrentIndex returns the index of the frame on screen.
func (p *Player) CurrentIndex() int {
	return p.state.index
}

// FrameCount returns the number of frames in the loaded replay.
func (p *Player) FrameCount() int {
	return p.state.frameCount
}

// IsPlaying returns true while playback is advancing or about to.
func (p *Player) IsPlaying() bool {
	return p.state.playing
}

// Speed returns the signed speed in frames per second.
func (p *Player) Speed() float64 {
	return p.state.speed
}

// Position returns the fractional frame position.
func (p *Player) Position() float64 {
	return p.state.position
}

// Snapshot returns a copy of the externally visible state.
func (p *Player) Snapshot() core.Snapshot {
	return core.Snapshot{
		Index:      p.state.index,
		FrameCount: p.state.frameCount,
		Position:   p.state.position,
		Speed:      p.state.speed,
		IsPlaying:  p.state.playing,
	}
}

// Stats returns loop counters for the loaded replay.
func (p *Player) Stats() Stats {
	return p.sched.stats
}

func (p *Player) resetSpeed() {
	p.state.speed = p.defaultSpeed
}

// setSpeed applies the MaxSpeed cap, keeping the sign.
func (p *Player) setSpeed(speed float64) {
	if p.maxSpeed > 0 {
		if speed > p.maxSpeed {
			speed = p.maxSpeed
		} else if speed < -p.maxSpeed {
			speed = -p.maxSpeed
		}
	}
	p.state.speed = speed
}

func (p *Player) renderCurrent() {
	if p.state.frameCount == 0 {
		return
	}
	p.sched.render(p.state.index)
}
