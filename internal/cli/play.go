package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tessro/reel/internal/config"
	"github.com/tessro/reel/internal/core"
	rerrors "github.com/tessro/reel/internal/errors"
	"github.com/tessro/reel/internal/logging"
	"github.com/tessro/reel/internal/playback"
	"github.com/tessro/reel/internal/replay"
	"github.com/tessro/reel/internal/tail"
	"github.com/tessro/reel/internal/tui"
	"github.com/tessro/reel/internal/wizard"
)

var (
	playHeadless  bool
	playWatch     bool
	playURL       string
	playGame      string
	playUser      string
	playSpeed     float64
	playFPS       int
	playNoEmoji   bool
	playTimestamp bool
	playFormat    string
	playInterval  time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play [replay-file]",
	Short: "Play a replay",
	Long: `Play a recorded replay in the terminal.

The replay is read from a JSON or YAML file, or fetched from the game server
with --game (and optionally --user). Without arguments, reel lists the
replays in the current directory and asks which one to play.

With --headless, no UI is drawn. Playback events are printed as they happen
and reel exits once playback halts.

Examples:
  reel play run.json              # Play a replay file
  reel play --game ABCD --user XY # Fetch and play from the server
  reel play --watch run.yaml      # Reload whenever the file changes
  reel play --headless run.json   # Print events instead of drawing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playHeadless, "headless", false, "print playback events instead of drawing")
	playCmd.Flags().BoolVarP(&playWatch, "watch", "w", false, "reload the replay file when it changes")
	playCmd.Flags().StringVar(&playURL, "url", "", "game server base URL")
	playCmd.Flags().StringVarP(&playGame, "game", "g", "", "game token to fetch")
	playCmd.Flags().StringVarP(&playUser, "user", "u", "", "user token to fetch")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 0, "default speed in frames per second")
	playCmd.Flags().IntVar(&playFPS, "fps", 0, "maximum frame advances per second")
	playCmd.Flags().BoolVar(&playNoEmoji, "no-emoji", false, "disable emoji output (headless)")
	playCmd.Flags().BoolVarP(&playTimestamp, "timestamp", "t", false, "show timestamps (headless)")
	playCmd.Flags().StringVarP(&playFormat, "format", "f", "", "custom event template (headless)")
	playCmd.Flags().DurationVarP(&playInterval, "interval", "i", 100*time.Millisecond, "event poll interval (headless)")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pb := cfg.Playback
	if cmd.Flags().Changed("speed") {
		pb.DefaultSpeed = playSpeed
	}
	if cmd.Flags().Changed("fps") {
		pb.FPS = playFPS
	}
	if pb.MaxSpeed > 0 && pb.DefaultSpeed > pb.MaxSpeed {
		return fmt.Errorf("--speed %v exceeds playback.max_speed %v", pb.DefaultSpeed, pb.MaxSpeed)
	}

	// The TUI owns the terminal, so only a log file receives its output.
	var logOut io.Writer
	if playHeadless {
		logOut = os.Stderr
	}
	logger, closer, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return fmt.Errorf("%w: %w", rerrors.ErrInvalidConfig, err)
	}
	defer closer.Close()

	fromServer := len(args) == 0 && (playGame != "" || playUser != "")
	if playWatch && fromServer {
		return fmt.Errorf("--watch needs a replay file, not a server replay")
	}

	seq, path, err := resolveReplay(ctx, args, logger)
	if err != nil {
		return err
	}

	watchPath := ""
	if (playWatch || cfg.Watch.Enabled) && path != "" {
		watchPath = path
	}
	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond

	if playHeadless {
		return runHeadless(ctx, cmd.OutOrStdout(), seq, pb, logger, watchPath, debounce)
	}

	return tui.Run(ctx, tui.Options{
		Sequence:      seq,
		Playback:      pb,
		TUI:           cfg.TUI,
		Logger:        logger,
		WatchPath:     watchPath,
		WatchDebounce: debounce,
	})
}

// resolveReplay loads the replay named by args and flags, prompting when
// nothing was given. The returned path is empty for fetched replays.
func resolveReplay(ctx context.Context, args []string, logger zerolog.Logger) (*core.Sequence, string, error) {
	interactive := wizard.NewInteractive()
	interactive.SetEnabled(!playHeadless && !JSONOutput())

	if len(args) > 0 {
		seq, err := replay.DecodeFile(args[0])
		return seq, args[0], err
	}

	if wizard.NeedsReplay(args, playGame) && playUser == "" {
		path, err := interactive.PromptReplay(".")
		if err != nil {
			if errors.Is(err, rerrors.ErrNotInteractive) {
				return nil, "", rerrors.WithSuggestion(err,
					"Pass a replay file, or use --game to fetch one from the server")
			}
			return nil, "", err
		}
		seq, err := replay.DecodeFile(path)
		return seq, path, err
	}

	tokens, err := interactive.PromptTokens(wizard.Tokens{Game: playGame, User: playUser})
	if err != nil {
		if errors.Is(err, rerrors.ErrNotInteractive) {
			return nil, "", rerrors.WithSuggestion(err, "Pass --game with the game token to fetch")
		}
		return nil, "", err
	}

	baseURL := cfg.Server.BaseURL
	if playURL != "" {
		baseURL = playURL
	}
	fetcher := replay.NewFetcher(baseURL,
		time.Duration(cfg.Server.Timeout)*time.Second,
		replay.WithFetchLogger(logger),
	)
	seq, err := fetcher.Fetch(ctx, tokens.Game, tokens.User)
	return seq, "", err
}

// playerOptions maps the playback config onto player options.
func playerOptions(pb config.PlaybackConfig, logger zerolog.Logger) []playback.Option {
	return []playback.Option{
		playback.WithFPS(pb.FPS),
		playback.WithDefaultSpeed(pb.DefaultSpeed),
		playback.WithMaxSpeed(pb.MaxSpeed),
		playback.WithLogger(logger),
	}
}

// eventJSON is the --json form of a headless playback event.
type eventJSON struct {
	Type    string    `json:"type"`
	Time    time.Time `json:"time"`
	Frame   int       `json:"frame"`
	Frames  int       `json:"frames"`
	Speed   float64   `json:"speed"`
	Playing bool      `json:"playing"`
}

// runHeadless plays seq on a Loop host and prints events until playback
// halts, or until ctx is cancelled when watching.
func runHeadless(ctx context.Context, out io.Writer, seq *core.Sequence, pb config.PlaybackConfig,
	logger zerolog.Logger, watchPath string, debounce time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := playback.NewLoop(time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond)
	player := playback.New(loop, nil, playerOptions(pb, logger)...)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	var loadErr error
	if err := loop.Do(func() { loadErr = player.LoadSequence(seq) }); err != nil {
		return err
	}
	if loadErr != nil {
		return loadErr
	}

	if watchPath != "" {
		w, err := replay.NewWatcher(watchPath, debounce, logger)
		if err != nil {
			return err
		}
		go func() {
			w.Run(ctx, func(next *core.Sequence, err error) {
				if err != nil {
					logger.Warn().Err(err).Str("path", watchPath).Msg("reload failed")
					return
				}
				var loadErr error
				_ = loop.Do(func() { loadErr = player.LoadSequence(next) })
				if loadErr != nil {
					logger.Warn().Err(loadErr).Str("path", watchPath).Msg("reload failed")
				}
			})
		}()
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!playNoEmoji),
		tail.WithTimestamp(playTimestamp),
		tail.WithTemplate(playFormat),
	)
	watcher := tail.NewWatcher(func() (core.Snapshot, error) {
		var snap core.Snapshot
		err := loop.Do(func() { snap = player.Snapshot() })
		return snap, err
	}, playInterval)

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Start(ctx)
	}()

	defer func() {
		_ = loop.Do(func() {
			stats := player.Stats()
			logger.Debug().
				Int("renders", stats.Renders).
				Int("throttled", stats.Throttled).
				Int("idle", stats.Idle).
				Float64("mean_render_ratio", stats.MeanRenderRatio).
				Msg("playback finished")
		})
	}()

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if err := printEvent(out, formatter, event); err != nil {
				return err
			}
			if watchPath == "" && event.Halted() {
				return nil
			}

		case err := <-watchErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err

		case err := <-loopErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func printEvent(out io.Writer, formatter *tail.Formatter, event tail.Event) error {
	if !JSONOutput() {
		_, err := fmt.Fprintln(out, formatter.Format(event))
		return err
	}

	e := eventJSON{Type: event.Type.String(), Time: event.Timestamp}
	if event.Current != nil {
		e.Frame = event.Current.Index + 1
		e.Frames = event.Current.FrameCount
		e.Speed = event.Current.Speed
		e.Playing = event.Current.IsPlaying
	}
	return json.NewEncoder(out).Encode(e)
}
