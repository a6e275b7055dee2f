package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors - a pleasant color palette
var (
	// Primary colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Neutral colors
	Background = lipgloss.Color("#1F2937") // Dark gray
	Surface    = lipgloss.Color("#374151") // Medium gray
	Border     = lipgloss.Color("#4B5563") // Light gray
	Text       = lipgloss.Color("#F9FAFB") // White
	TextMuted  = lipgloss.Color("#9CA3AF") // Gray
	TextDim    = lipgloss.Color("#6B7280") // Darker gray
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	ErrorText lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
	NoBorder      lipgloss.Style
)

func init() {
	build()
}

// UseTheme switches the palette. "auto" asks the terminal for its
// background; anything other than "light" is treated as dark.
func UseTheme(theme string) {
	light := theme == "light" || (theme == "auto" && !lipgloss.HasDarkBackground())
	if light {
		Background = lipgloss.Color("#F9FAFB")
		Surface = lipgloss.Color("#E5E7EB")
		Border = lipgloss.Color("#D1D5DB")
		Text = lipgloss.Color("#111827")
		TextMuted = lipgloss.Color("#4B5563")
		TextDim = lipgloss.Color("#6B7280")
	} else {
		Background = lipgloss.Color("#1F2937")
		Surface = lipgloss.Color("#374151")
		Border = lipgloss.Color("#4B5563")
		Text = lipgloss.Color("#F9FAFB")
		TextMuted = lipgloss.Color("#9CA3AF")
		TextDim = lipgloss.Color("#6B7280")
	}
	build()
}

func build() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Success)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)

	NoBorder = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder())
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	style := BorderStyle.Padding(0, 1)

	if focused {
		style = FocusedBorder.Padding(0, 1)
	}

	return style
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	bar := filledStyle.Render(Repeat("━", filled)) +
		emptyStyle.Render(Repeat("─", width-filled))

	return bar
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool, reversed bool) string {
	switch {
	case playing && reversed:
		return Playing.Render("◀")
	case playing:
		return Playing.Render("▶")
	default:
		return Paused.Render("⏸")
	}
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
