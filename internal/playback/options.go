package playback

import "github.com/rs/zerolog"

// Option configures a Player.
type Option func(*Player)

// WithFPS sets the maximum number of index-affecting updates per second.
// Zero or negative disables the throttle.
func WithFPS(fps int) Option {
	return func(p *Player) {
		p.interval = intervalForFPS(fps)
	}
}

// WithDefaultSpeed sets the speed magnitude restored by speed resets.
func WithDefaultSpeed(speed float64) Option {
	return func(p *Player) {
		if speed < 0 {
			speed = -speed
		}
		if speed > 0 {
			p.defaultSpeed = speed
		}
	}
}

// WithMaxSpeed caps the speed magnitude reached by repeated doubling.
// Zero leaves speed unbounded.
func WithMaxSpeed(max float64) Option {
	return func(p *Player) {
		if max < 0 {
			max = 0
		}
		p.maxSpeed = max
	}
}

// WithLogger sets the logger used for playback diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Player) {
		p.log = logger
	}
}

// WithClock sets the clock used to time render calls.
func WithClock(clock Clock) Option {
	return func(p *Player) {
		if clock != nil {
			p.clock = clock
		}
	}
}
