package playback

import "time"

// Host delivers scheduling opportunities to a Player.
//
// RequestFrame arranges for fn to be called once, at the host's next
// rendering opportunity, with the time of that opportunity. The Player never
// has more than one request outstanding.
type Host interface {
	RequestFrame(fn func(now time.Time))
}

// Clock provides the current time. It is used to measure render cost.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// ManualHost is a Host whose opportunities are fired explicitly.
type ManualHost struct {
	pending  func(time.Time)
	requests int
}

// NewManualHost creates a host with no outstanding request.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// RequestFrame records fn as the outstanding request.
func (h *ManualHost) RequestFrame(fn func(now time.Time)) {
	h.pending = fn
	h.requests++
}

// Pending returns true if a request is outstanding.
func (h *ManualHost) Pending() bool {
	return h.pending != nil
}

// Requests returns how many requests have been made in total.
func (h *ManualHost) Requests() int {
	return h.requests
}

// Fire delivers the outstanding request at now. It returns false when
// nothing was requested.
func (h *ManualHost) Fire(now time.Time) bool {
	fn := h.pending
	if fn == nil {
		return false
	}
	h.pending = nil
	fn(now)
	return true
}
