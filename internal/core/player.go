package core

// Player defines the interface for replay playback control.
type Player interface {
	// Playback control
	Play()
	Pause()
	Stop()
	Toggle()

	// Scrubbing
	StepForward()
	StepBackward()
	SeekTo(index int)
	SeekToEnd()

	// Speed control
	IncreaseSpeed()
	DecreaseSpeed()

	// State queries
	CurrentIndex() int
	FrameCount() int
	IsPlaying() bool
	Speed() float64
	Snapshot() Snapshot
}
