package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/reel/internal/core"
	rerrors "github.com/tessro/reel/internal/errors"
	"github.com/tessro/reel/internal/replay"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <replay-file>...",
	Short: "Summarize replay files",
	Long: `Print a summary of one or more replay files: frame count, grid size,
recorded value names, seed, file size, and how long playback takes at the
configured default speed.

Files that fail to decode are reported together after the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// ReplayInfo summarizes one replay file.
type ReplayInfo struct {
	Path     string   `json:"path"`
	Frames   int      `json:"frames"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Keys     []string `json:"keys"`
	Seed     string   `json:"seed,omitempty"`
	Size     int64    `json:"size"`
	Duration int      `json:"duration_seconds"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	result := &rerrors.PartialResult[[]ReplayInfo]{}
	for _, path := range args {
		info, err := inspectFile(path, cfg.Playback.DefaultSpeed)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %w", path, err))
			continue
		}
		result.Data = append(result.Data, info)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		if err := PrintJSON(out, result.Data); err != nil {
			return err
		}
	} else if len(result.Data) > 0 {
		printInspectTable(out, result.Data)
	}

	if result.HasErrors() {
		if len(result.Errors) == 1 {
			return result.Errors[0]
		}
		return fmt.Errorf("%s", strings.TrimRight(result.ErrorSummary(), "\n"))
	}
	return nil
}

func inspectFile(path string, speed float64) (ReplayInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ReplayInfo{}, rerrors.ErrReplayNotFound
		}
		return ReplayInfo{}, err
	}
	seq, err := replay.DecodeFile(path)
	if err != nil {
		return ReplayInfo{}, err
	}
	info := summarize(seq, speed)
	info.Path = path
	info.Size = st.Size()
	return info, nil
}

// summarize computes the grid bounds, value names and nominal duration of
// seq. Duration covers the moves between frames at speed frames per second.
func summarize(seq *core.Sequence, speed float64) ReplayInfo {
	info := ReplayInfo{
		Frames: seq.Len(),
		Seed:   seq.Seed,
		Keys:   []string{},
	}

	for _, f := range seq.Frames {
		info.Width = max(info.Width, f.Width())
		info.Height = max(info.Height, f.Height())
	}

	seen := make(map[string]bool)
	for _, v := range seq.Values {
		for k := range v {
			if !seen[k] {
				seen[k] = true
				info.Keys = append(info.Keys, k)
			}
		}
	}
	sort.Strings(info.Keys)

	if speed < 0 {
		speed = -speed
	}
	if speed > 0 && info.Frames > 1 {
		info.Duration = int(math.Ceil(float64(info.Frames-1) / speed))
	}
	return info
}

func printInspectTable(out io.Writer, infos []ReplayInfo) {
	table := NewTableWriter(out, "FILE", "FRAMES", "GRID", "SEED", "SIZE", "DURATION", "VALUES")
	for _, info := range infos {
		seed := info.Seed
		if seed == "" {
			seed = "-"
		}
		keys := strings.Join(info.Keys, ",")
		if keys == "" {
			keys = "-"
		}
		table.Row(
			TruncateString(info.Path, 40),
			humanize.Comma(int64(info.Frames)),
			fmt.Sprintf("%dx%d", info.Width, info.Height),
			TruncateString(seed, 16),
			humanize.Bytes(uint64(info.Size)),
			FormatDuration(info.Duration),
			TruncateString(keys, 40),
		)
	}
	table.Flush()
}
