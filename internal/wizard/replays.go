package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

// ReplayFile is a replay found on disk.
type ReplayFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Label describes the file for the picker, e.g. "run.json (1.2 kB, 3 minutes ago)".
func (f ReplayFile) Label(now time.Time) string {
	return fmt.Sprintf("%s (%s, %s)",
		filepath.Base(f.Path),
		humanize.Bytes(uint64(f.Size)),
		humanize.RelTime(f.ModTime, now, "ago", "from now"),
	)
}

// FindReplays returns the replay files in dir, newest first.
func FindReplays(dir string) ([]ReplayFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ReplayFile
	for _, e := range entries {
		if e.IsDir() || !isReplayName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ReplayFile{
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Path < files[j].Path
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

func isReplayName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// PickReplay shows a select form and returns the chosen path.
func PickReplay(files []ReplayFile) (string, error) {
	now := time.Now()
	options := make([]huh.Option[string], 0, len(files))
	for _, f := range files {
		options = append(options, huh.NewOption(f.Label(now), f.Path))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a replay").
				Description("Replays in the current directory, newest first").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}
