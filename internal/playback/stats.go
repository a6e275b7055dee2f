package playback

// Stats counts what the scheduling loop has done since the replay loaded.
type Stats struct {
	// Renders is the number of index changes painted by the loop.
	Renders int
	// Throttled is the number of opportunities skipped by the FPS cap.
	Throttled int
	// Idle is the number of ticks that advanced without changing the index.
	Idle int
	// MeanRenderRatio is the running mean of render time over tick interval.
	MeanRenderRatio float64
}

func (s *Stats) observe(ratio float64) {
	s.Renders++
	s.MeanRenderRatio += (ratio - s.MeanRenderRatio) / float64(s.Renders)
}
