package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrReplayNotFound     = errors.New("replay not found")
	ErrInvalidReplay      = errors.New("invalid replay")
	ErrEmptyReplay        = errors.New("replay has no frames")
	ErrMismatchedSequence = errors.New("frame and value counts differ")
	ErrServerReplay       = errors.New("server rejected replay request")
	ErrNetworkError       = errors.New("network error")
	ErrTimeout            = errors.New("request timeout")
	ErrConfigNotFound     = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrNotInteractive     = errors.New("not running in a terminal")
)

// ReelError wraps an error with a user-friendly suggestion.
type ReelError struct {
	Err        error
	Suggestion string
}

func (e *ReelError) Error() string {
	return e.Err.Error()
}

func (e *ReelError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ReelError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var reelErr *ReelError
	if errors.As(err, &reelErr) && reelErr.Suggestion != "" {
		return reelErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Replay file errors
	if errors.Is(err, ErrReplayNotFound) || strings.Contains(errStr, "no such file") {
		return "Check the path, or run 'reel play' without arguments to pick a replay"
	}

	if errors.Is(err, ErrMismatchedSequence) {
		return "Every frame in \"screen\" needs a matching entry in \"player\""
	}

	if errors.Is(err, ErrEmptyReplay) {
		return "The replay contains no frames; re-export it from the game server"
	}

	if errors.Is(err, ErrInvalidReplay) || strings.Contains(errStr, "cannot unmarshal") ||
		strings.Contains(errStr, "yaml:") {
		return "Replays must be JSON or YAML with a \"screen\" list of frames"
	}

	if errors.Is(err, ErrServerReplay) || strings.Contains(errStr, "invalid game token") ||
		strings.Contains(errStr, "invalid user token") {
		return "Check the game and user tokens; anonymous replays can only be fetched once"
	}

	// Network errors
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") {
		return "Check that server.base_url is reachable and try again"
	}

	if errors.Is(err, ErrNotInteractive) {
		return "Pass a replay file path when not running in a terminal"
	}

	// Config errors
	if errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrConfigNotFound) ||
		strings.Contains(errStr, "config") {
		return "Run 'reel config init' to write a fresh configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
