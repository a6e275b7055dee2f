package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("boom"), "try again"), "try again"},
		{"not found", fmt.Errorf("open run.json: %w", ErrReplayNotFound), "Check the path"},
		{"mismatched", fmt.Errorf("load: %w", ErrMismatchedSequence), "matching entry"},
		{"empty", ErrEmptyReplay, "no frames"},
		{"invalid", ErrInvalidReplay, "JSON or YAML"},
		{"server", ErrServerReplay, "game and user tokens"},
		{"timeout", ErrTimeout, "server.base_url"},
		{"not interactive", ErrNotInteractive, "replay file path"},
		{"config", ErrInvalidConfig, "reel config init"},
		{"unknown", errors.New("something else"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestWithSuggestion_Unwraps(t *testing.T) {
	err := WithSuggestion(ErrTimeout, "wait")
	if !errors.Is(err, ErrTimeout) {
		t.Error("errors.Is(err, ErrTimeout) = false, want true")
	}
	if err.Error() != ErrTimeout.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrTimeout.Error())
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(WithSuggestion(errors.New("boom"), "try again"))
	want := "Error: boom\n\nSuggestion: try again"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q, want %q", got, "Error: plain")
	}
}

func TestPartialResult(t *testing.T) {
	var r PartialResult[[]string]
	if r.HasErrors() || r.ErrorSummary() != "" {
		t.Error("empty result should have no errors")
	}

	r.AddError(nil)
	r.AddError(errors.New("first"))
	if got := r.ErrorSummary(); got != "first" {
		t.Errorf("ErrorSummary() = %q, want %q", got, "first")
	}

	r.AddError(errors.New("second"))
	got := r.ErrorSummary()
	if !strings.HasPrefix(got, "2 errors occurred:") || !strings.Contains(got, "2. second") {
		t.Errorf("ErrorSummary() = %q", got)
	}
}
