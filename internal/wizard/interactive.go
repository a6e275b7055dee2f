package wizard

import (
	"os"

	rerrors "github.com/tessro/reel/internal/errors"
	"golang.org/x/term"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptReplay lists the replays in dir and asks the user to pick one.
func (i *Interactive) PromptReplay(dir string) (string, error) {
	if !i.CanInteract() {
		return "", rerrors.ErrNotInteractive
	}
	files, err := FindReplays(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", rerrors.WithSuggestion(
			rerrors.ErrReplayNotFound,
			"No .json or .yaml replays in "+dir+"; pass a path or use --game to fetch one",
		)
	}
	return PickReplay(files)
}

// PromptTokens asks for the game and user tokens that are missing.
func (i *Interactive) PromptTokens(current Tokens) (Tokens, error) {
	if current.Game != "" {
		return current, nil
	}
	if !i.CanInteract() {
		return current, rerrors.ErrNotInteractive
	}
	return RunTokenForm(current)
}

// NeedsReplay returns true if neither a path nor a game token was given.
func NeedsReplay(args []string, gameToken string) bool {
	return len(args) == 0 && gameToken == ""
}
