package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/reel/internal/config"
	"github.com/tessro/reel/internal/core"
)

// makeSequence builds n one-glyph frames showing A, B, C...
func makeSequence(n int) *core.Sequence {
	seq := &core.Sequence{Seed: "abc12", Origin: "/tmp/run.json"}
	for i := 0; i < n; i++ {
		seq.Frames = append(seq.Frames, core.Frame{{65 + i}})
		seq.Values = append(seq.Values, core.Values{"turn": i, "name": "bot"})
	}
	return seq
}

func newTestModel(t *testing.T, n int) Model {
	t.Helper()
	m, err := NewModel(Options{Sequence: makeSequence(n)})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewModel_LoadsAndPlays(t *testing.T) {
	m := newTestModel(t, 5)

	if !m.player.IsPlaying() {
		t.Error("IsPlaying() = false, want true with autoplay")
	}
	if m.screen.text != "A" {
		t.Errorf("screen text = %q, want %q", m.screen.text, "A")
	}
	if m.Init() == nil {
		t.Fatal("Init() = nil, want a frame tick")
	}
	if m.host.cmd() != nil {
		t.Error("second tick scheduled while one is in flight")
	}
}

func TestNewModel_NoAutoplay(t *testing.T) {
	off := false
	m, err := NewModel(Options{
		Sequence: makeSequence(3),
		Playback: config.PlaybackConfig{Autoplay: &off},
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	if m.player.IsPlaying() {
		t.Error("IsPlaying() = true, want false with autoplay off")
	}
}

func TestNewModel_Mismatched(t *testing.T) {
	seq := makeSequence(3)
	seq.Values = seq.Values[:2]
	if _, err := NewModel(Options{Sequence: seq}); err == nil {
		t.Error("NewModel() error = nil, want error for mismatched replay")
	}
}

func TestModel_FrameTicksAdvance(t *testing.T) {
	m := newTestModel(t, 5)
	m.Init()

	t0 := time.Unix(1000, 0)
	m, _ = update(m, frameMsg(t0))
	m, _ = update(m, frameMsg(t0.Add(time.Second)))
	if got := m.player.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() after 1s = %d, want 0", got)
	}

	m, _ = update(m, frameMsg(t0.Add(2*time.Second)))
	if got := m.player.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex() after 2s = %d, want 1", got)
	}
	if m.screen.text != "B" {
		t.Errorf("screen text = %q, want %q", m.screen.text, "B")
	}
	if !m.host.scheduled {
		t.Error("no tick scheduled while playing")
	}
}

func TestModel_Keys(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		wantIndex   int
		wantPlaying bool
		wantSpeed   float64
	}{
		{"toggle pauses", []string{" "}, 0, false, 0.5},
		{"toggle twice plays", []string{" ", " "}, 0, true, 0.5},
		{"step forward", []string{"l", "right"}, 2, false, 0.5},
		{"step back", []string{"l", "l", "h"}, 1, false, 0.5},
		{"arrow back", []string{"right", "left"}, 0, false, 0.5},
		{"seek end", []string{"G"}, 4, false, 0.5},
		{"seek start", []string{"G", "g"}, 0, false, 0.5},
		{"faster", []string{">"}, 0, true, 1.0},
		{"faster twice", []string{".", "."}, 0, true, 2.0},
		{"slower reverses", []string{"G", "<"}, 3, true, -1.0},
		{"stop", []string{"l", "l", ">", "s"}, 0, false, 0.5},
		{"unbound key", []string{"x"}, 0, true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 5)
			for _, k := range tt.keys {
				m, _ = update(m, keyPress(k))
			}
			if got := m.player.CurrentIndex(); got != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", got, tt.wantIndex)
			}
			if got := m.player.IsPlaying(); got != tt.wantPlaying {
				t.Errorf("IsPlaying() = %v, want %v", got, tt.wantPlaying)
			}
			if got := m.player.Speed(); got != tt.wantSpeed {
				t.Errorf("Speed() = %v, want %v", got, tt.wantSpeed)
			}
		})
	}
}

func TestModel_GoToFrame(t *testing.T) {
	m := newTestModel(t, 5)

	m, _ = update(m, keyPress(":"))
	if !m.seeking {
		t.Fatal("seeking = false after ':'")
	}
	// Playback keys are text while the input is open
	m, _ = update(m, keyPress("3"))
	m, _ = update(m, keyPress("enter"))

	if m.seeking {
		t.Error("seeking = true after enter")
	}
	if got := m.player.CurrentIndex(); got != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", got)
	}
	if m.player.IsPlaying() {
		t.Error("IsPlaying() = true, want false after seek")
	}
}

func TestModel_GoToFrameInvalid(t *testing.T) {
	m := newTestModel(t, 5)

	m, _ = update(m, keyPress(":"))
	m, _ = update(m, keyPress("l"))
	m, _ = update(m, keyPress("enter"))

	if m.lastError == nil {
		t.Error("lastError = nil, want error for non-numeric frame")
	}
	if got := m.player.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", got)
	}

	m, _ = update(m, keyPress(":"))
	m, _ = update(m, keyPress("esc"))
	if m.seeking {
		t.Error("seeking = true after esc")
	}
}

func TestModel_ToggleDebugAndHelp(t *testing.T) {
	m := newTestModel(t, 2)

	m, _ = update(m, keyPress("d"))
	if !m.showDebug {
		t.Error("showDebug = false after 'd'")
	}
	m, _ = update(m, keyPress("?"))
	if !m.help.ShowAll {
		t.Error("help.ShowAll = false after '?'")
	}
	m, _ = update(m, keyPress("esc"))
	if m.help.ShowAll {
		t.Error("help.ShowAll = true after esc")
	}
}

func TestModel_Copy(t *testing.T) {
	m := newTestModel(t, 3)
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m, _ = update(m, keyPress("l"))
	cmd := m.copyValues()
	if cmd == nil {
		t.Fatal("copyValues() = nil, want command")
	}
	m, _ = update(m, cmd())

	want := "name: bot\nturn: 1\n"
	if copied != want {
		t.Errorf("copied = %q, want %q", copied, want)
	}
	if !strings.Contains(m.status, "Frame 2 of 3") {
		t.Errorf("status = %q, want it to mention the frame", m.status)
	}

	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	m, _ = update(m, m.copyValues()())
	if m.lastError == nil {
		t.Error("lastError = nil, want clipboard error")
	}
}

func TestModel_Reload(t *testing.T) {
	m := newTestModel(t, 5)
	m, _ = update(m, keyPress("G"))

	next := makeSequence(3)
	next.Origin = "/tmp/other.json"
	m, _ = update(m, reloadMsg{seq: next})

	if got := m.player.FrameCount(); got != 3 {
		t.Errorf("FrameCount() = %d, want 3", got)
	}
	if got := m.player.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", got)
	}
	if m.screen.seq != next {
		t.Error("screen still shows the old replay")
	}
	if !strings.Contains(m.status, "other.json") {
		t.Errorf("status = %q, want reload notice", m.status)
	}

	bad := makeSequence(2)
	bad.Values = nil
	m, _ = update(m, reloadMsg{seq: bad})
	if m.lastError == nil {
		t.Error("lastError = nil, want error for bad replay")
	}
	if m.screen.seq != next {
		t.Error("bad reload replaced the screen's replay")
	}

	m, _ = update(m, reloadMsg{err: errors.New("decode failed")})
	if m.lastError == nil || m.lastError.Error() != "decode failed" {
		t.Errorf("lastError = %v, want decode failed", m.lastError)
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, 3)
			m, cmd := update(m, keyPress(k))
			if !m.quitting {
				t.Error("quitting = false")
			}
			if cmd == nil {
				t.Error("cmd = nil, want quit")
			}
			if m.player.IsPlaying() {
				t.Error("IsPlaying() = true after quit")
			}
			if m.View() != "" {
				t.Errorf("View() = %q, want empty after quit", m.View())
			}
		})
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, 5)

	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before size = %q, want Loading...", got)
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(m, keyPress("l"))
	m, _ = update(m, keyPress("d"))

	view := m.View()
	for _, want := range []string{"Frame 2 of 5", "Map: abc12", "run.json", "B", "turn"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
