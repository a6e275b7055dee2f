package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/reel/internal/core"
	"github.com/tessro/reel/internal/tui/styles"
)

// Progress draws the status line under the frame: play state, position
// label, bar, speed and map seed.
type Progress struct{}

// NewProgress creates a new Progress component
func NewProgress() *Progress {
	return &Progress{}
}

// Render renders the progress line at the given width
func (p *Progress) Render(snap core.Snapshot, seed string, width int) string {
	icon := styles.StatusIcon(snap.IsPlaying, snap.Reversed())
	label := styles.Title.Render(snap.Label())
	speed := styles.Muted.Render(snap.SpeedLabel())

	right := ""
	if seed != "" {
		right = styles.Dim.Render("Map: " + seed)
	}

	fixed := lipgloss.Width(icon) + lipgloss.Width(label) + lipgloss.Width(speed) + lipgloss.Width(right) + 4
	barWidth := width - fixed
	if barWidth < 10 {
		barWidth = 10
	}
	bar := styles.ProgressBar(snap.ProgressPercent(), barWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		icon, " ", label, " ", bar, " ", speed, " ", right,
	)
}
