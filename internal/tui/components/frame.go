package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/reel/internal/core"
	"github.com/tessro/reel/internal/tui/styles"
)

// FrameView draws a frame's glyph grid.
type FrameView struct {
	charset Charset
}

// NewFrameView creates a FrameView using charset.
func NewFrameView(charset Charset) *FrameView {
	if charset == "" {
		charset = CharsetASCII
	}
	return &FrameView{charset: charset}
}

// Text returns the frame as plain lines, one per row. Short rows are padded
// to the frame width.
func (f *FrameView) Text(frame core.Frame) string {
	width := frame.Width()
	var b strings.Builder
	b.Grow((width + 1) * frame.Height())

	for y, row := range frame {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, id := range row {
			b.WriteRune(f.charset.Glyph(id))
		}
		for x := len(row); x < width; x++ {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Render wraps pre-drawn frame text in a panel.
func (f *FrameView) Render(text string, title string, focused bool) string {
	if text == "" {
		text = styles.Muted.Render("No replay loaded")
	}

	return styles.Panel(focused).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.PanelTitle(title, focused),
		text,
	))
}
