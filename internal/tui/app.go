package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/tessro/reel/internal/config"
	"github.com/tessro/reel/internal/core"
	"github.com/tessro/reel/internal/playback"
	"github.com/tessro/reel/internal/replay"
	"github.com/tessro/reel/internal/tui/components"
	"github.com/tessro/reel/internal/tui/styles"
)

const messageTTL = 5 * time.Second

// Options configures the replay player UI.
type Options struct {
	Sequence *core.Sequence
	Playback config.PlaybackConfig
	TUI      config.TUIConfig
	Logger   zerolog.Logger

	// WatchPath, when set, reloads the replay whenever that file changes.
	WatchPath     string
	WatchDebounce time.Duration
}

// screen caches the drawn text of the frame on display. The player's
// render callback writes it and View reads it.
type screen struct {
	seq   *core.Sequence
	view  *components.FrameView
	index int
	text  string
}

func (s *screen) draw(index int) {
	s.index = index
	s.text = s.view.Text(s.seq.Frame(index))
}

// Model is the main TUI model
type Model struct {
	player   *playback.Player
	host     *frameHost
	screen   *screen
	autoplay bool
	log      zerolog.Logger

	// Components
	keys       keyMap
	help       help.Model
	gotoInput  textinput.Model
	progress   *components.Progress
	debugTable *components.DebugTable

	width     int
	height    int
	showDebug bool
	seeking   bool

	// Transient messages
	status       string
	statusExpiry time.Time
	lastError    error
	errorExpiry  time.Time

	copyToClipboard func(string) error

	// Quit flag
	quitting bool
}

// NewModel creates a model and loads opts.Sequence if set.
func NewModel(opts Options) (Model, error) {
	host := newFrameHost(time.Duration(opts.TUI.RefreshInterval) * time.Millisecond)
	scr := &screen{view: components.NewFrameView(components.Charset(opts.TUI.Charset))}

	player := playback.New(host, scr.draw,
		playback.WithFPS(opts.Playback.FPS),
		playback.WithDefaultSpeed(opts.Playback.DefaultSpeed),
		playback.WithMaxSpeed(opts.Playback.MaxSpeed),
		playback.WithLogger(opts.Logger),
	)

	ti := textinput.New()
	ti.Prompt = "Go to frame: "
	ti.Placeholder = "1"
	ti.CharLimit = 10
	ti.Width = 12

	m := Model{
		player:          player,
		host:            host,
		screen:          scr,
		autoplay:        opts.Playback.AutoplayEnabled(),
		log:             opts.Logger,
		keys:            defaultKeyMap(),
		help:            help.New(),
		gotoInput:       ti,
		progress:        components.NewProgress(),
		debugTable:      components.NewDebugTable(),
		showDebug:       opts.TUI.ShowDebug,
		copyToClipboard: clipboard.WriteAll,
	}

	if opts.Sequence != nil {
		if err := m.load(opts.Sequence); err != nil {
			return Model{}, err
		}
	}
	return m, nil
}

// Messages
type reloadMsg struct {
	seq *core.Sequence
	err error
}

type copiedMsg struct{ err error }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.host.cmd()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case frameMsg:
		m.host.fire(time.Time(msg))

	case tea.KeyMsg:
		m, cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case reloadMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else if err := m.load(msg.seq); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Reloaded " + filepath.Base(msg.seq.Origin))
		}

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("copy failed: %w", msg.err))
		} else {
			snap := m.player.Snapshot()
			m.setStatus("Copied values for " + snap.Label())
		}

	default:
		// Forward other messages (cursor blink) to the input while it is open
		if m.seeking {
			m.gotoInput, cmd = m.gotoInput.Update(msg)
		}
	}

	return m, tea.Batch(cmd, m.host.cmd())
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Global keys (always work)
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.seeking {
		return m.handleGoToKeyPress(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case msg.String() == "esc":
		m.help.ShowAll = false

	// Playback controls
	case key.Matches(msg, m.keys.Toggle):
		m.player.Toggle()
	case key.Matches(msg, m.keys.Stop):
		m.player.Stop()
	case key.Matches(msg, m.keys.Back):
		m.player.StepBackward()
	case key.Matches(msg, m.keys.Forward):
		m.player.StepForward()
	case key.Matches(msg, m.keys.Slower):
		m.player.DecreaseSpeed()
	case key.Matches(msg, m.keys.Faster):
		m.player.IncreaseSpeed()
	case key.Matches(msg, m.keys.Start):
		m.player.SeekTo(0)
	case key.Matches(msg, m.keys.End):
		m.player.SeekToEnd()

	case key.Matches(msg, m.keys.GoTo):
		m.seeking = true
		m.gotoInput.SetValue("")
		cmd := m.gotoInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Debug):
		m.showDebug = !m.showDebug

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyValues()
	}

	return m, nil
}

func (m Model) handleGoToKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.seeking = false
		m.gotoInput.Blur()
		return m, nil

	case "enter":
		m.seeking = false
		m.gotoInput.Blur()
		input := strings.TrimSpace(m.gotoInput.Value())
		n, err := strconv.Atoi(input)
		if err != nil {
			m.setError(fmt.Errorf("not a frame number: %q", input))
			return m, nil
		}
		// Frames are numbered from 1 on screen
		m.player.SeekTo(n - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.player.Pause()
	stats := m.player.Stats()
	m.log.Debug().
		Int("renders", stats.Renders).
		Int("throttled", stats.Throttled).
		Int("idle", stats.Idle).
		Float64("mean_render_ratio", stats.MeanRenderRatio).
		Msg("player closed")
	return m, tea.Quit
}

// load swaps in a new replay. The screen must point at the new sequence
// before the player renders its first frame.
func (m *Model) load(seq *core.Sequence) error {
	prev := m.screen.seq
	m.screen.seq = seq
	if err := m.player.LoadSequence(seq); err != nil {
		m.screen.seq = prev
		return err
	}
	if !m.autoplay {
		m.player.Pause()
	}
	return nil
}

func (m Model) copyValues() tea.Cmd {
	values := m.screen.seq.ValuesAt(m.player.CurrentIndex())
	if len(values) == 0 {
		return nil
	}
	text := m.debugTable.CopyText(values)
	copyFn := m.copyToClipboard
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusExpiry = time.Now().Add(messageTTL)
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(messageTTL)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	snap := m.player.Snapshot()
	seq := m.screen.seq

	title := "reel"
	seed := ""
	if seq != nil {
		if seq.Origin != "" {
			title = filepath.Base(seq.Origin)
		}
		seed = seq.Seed
	}

	body := m.screen.view.Render(m.screen.text, title, snap.IsPlaying)
	if m.showDebug {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			body,
			" ",
			m.debugTable.Render(seq.ValuesAt(snap.Index)),
		)
	}

	parts := []string{
		body,
		m.progress.Render(snap, seed, m.width-2),
	}
	if m.seeking {
		parts = append(parts, m.gotoInput.View())
	}
	if line := m.renderStatusLine(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, styles.Dim.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderStatusLine() string {
	now := time.Now()
	if m.lastError != nil && now.Before(m.errorExpiry) {
		return styles.ErrorText.Render("Error: " + m.lastError.Error())
	}
	if m.status != "" && now.Before(m.statusExpiry) {
		return styles.Muted.Render(m.status)
	}
	return ""
}

// Run starts the TUI application and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	styles.UseTheme(opts.TUI.Theme)

	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.WatchPath != "" {
		w, err := replay.NewWatcher(opts.WatchPath, opts.WatchDebounce, opts.Logger)
		if err != nil {
			return err
		}
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			w.Run(watchCtx, func(seq *core.Sequence, err error) {
				p.Send(reloadMsg{seq: seq, err: err})
			})
		}()
	}

	_, err = p.Run()
	return err
}
