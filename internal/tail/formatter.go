package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05.000"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05.000"),
	}

	if e.Current != nil {
		data.Frame = e.Current.Index + 1
		data.Frames = e.Current.FrameCount
		data.Label = e.Current.Label()
		data.Speed = e.Current.Speed
		data.Playing = e.Current.IsPlaying
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Frame     int
	Frames    int
	Label     string
	Speed     float64
	Playing   bool
}

// eventDescription returns a human-readable description of the event.
func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventFrameChange:
		if e.Current != nil {
			return e.Current.Label()
		}
		return "Frame changed"

	case EventReachedEnd:
		if e.Current != nil {
			return fmt.Sprintf("Reached end: %s", e.Current.Label())
		}
		return "Reached end"

	case EventReachedStart:
		return "Reached start"

	case EventPause:
		if e.Current != nil {
			return fmt.Sprintf("Paused at %s", e.Current.Label())
		}
		return "Paused"

	case EventResume:
		return "Resumed"

	case EventSpeedChange:
		if e.Current != nil {
			return "Speed: " + e.Current.SpeedLabel()
		}
		return "Speed changed"

	case EventReplayLoaded:
		if e.Current != nil {
			return fmt.Sprintf("Loaded replay with %d frames", e.Current.FrameCount)
		}
		return "Replay loaded"

	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventFrameChange:
		return "🎞️"
	case EventReachedEnd:
		return "🏁"
	case EventReachedStart:
		return "⏮️"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventSpeedChange:
		return "⏩"
	case EventReplayLoaded:
		return "📼"
	default:
		return "❓"
	}
}

// String returns the snake_case name of the event type.
func (t EventType) String() string {
	return eventTypeName(t)
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventFrameChange:
		return "frame_change"
	case EventReachedEnd:
		return "reached_end"
	case EventReachedStart:
		return "reached_start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventSpeedChange:
		return "speed_change"
	case EventReplayLoaded:
		return "replay_loaded"
	default:
		return "unknown"
	}
}
