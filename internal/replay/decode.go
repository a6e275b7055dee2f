// Package replay loads recorded game replays from files and game servers.
package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tessro/reel/internal/core"
	rerrors "github.com/tessro/reel/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format is a replay encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document is the replay payload as served by the game server.
type document struct {
	Screen []core.Frame  `json:"screen" yaml:"screen"`
	Player []core.Values `json:"player" yaml:"player"`
	Seed   any           `json:"seed" yaml:"seed"`
	Error  string        `json:"error" yaml:"error"`
}

// DecodeFile reads a replay from disk.
func DecodeFile(path string) (*core.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", rerrors.ErrReplayNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	seq, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	seq.Source = core.SourceFile
	seq.Origin = path
	return seq, nil
}

// Decode parses a replay document. A missing "player" list is filled with
// empty values so frame-only exports still play.
func Decode(r io.Reader, format Format) (*core.Sequence, error) {
	var doc document

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, rerrors.ErrEmptyReplay
			}
			return nil, fmt.Errorf("%w: %v", rerrors.ErrInvalidReplay, err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, rerrors.ErrEmptyReplay
			}
			return nil, fmt.Errorf("%w: %v", rerrors.ErrInvalidReplay, err)
		}
	}

	return doc.sequence()
}

func (d *document) sequence() (*core.Sequence, error) {
	if d.Error != "" {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrServerReplay, d.Error)
	}
	if len(d.Screen) == 0 {
		return nil, rerrors.ErrEmptyReplay
	}

	values := d.Player
	if values == nil {
		values = make([]core.Values, len(d.Screen))
		for i := range values {
			values[i] = core.Values{}
		}
	}

	seq := &core.Sequence{
		Frames: d.Screen,
		Values: values,
		Seed:   seedString(d.Seed),
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}

// seedString renders a seed that may arrive as a string or a number.
func seedString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}
