package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tessro/reel/internal/core"
	rerrors "github.com/tessro/reel/internal/errors"
)

const (
	// DefaultTimeout bounds a single replay request.
	DefaultTimeout = 10 * time.Second

	// Retry configuration for transient errors
	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Fetcher downloads replays from a game server.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	retryWait  time.Duration
	log        zerolog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithRetryWait sets the first backoff delay; later retries double it.
func WithRetryWait(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.retryWait = d
	}
}

// WithFetchLogger sets the logger used for request diagnostics.
func WithFetchLogger(logger zerolog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = logger
	}
}

// NewFetcher creates a fetcher for the server at baseURL.
func NewFetcher(baseURL string, timeout time.Duration, opts ...FetcherOption) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryWait:  baseRetryWait,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GameURL returns the replay endpoint for a game, and for a player within it
// when userToken is set. Tokens are case-insensitive and sent upper-cased.
func GameURL(baseURL, gameToken, userToken string) string {
	u := strings.TrimRight(baseURL, "/") + "/game/" + url.PathEscape(strings.ToUpper(gameToken))
	if userToken != "" {
		u += "/" + url.PathEscape(strings.ToUpper(userToken))
	}
	return u
}

// Fetch downloads the replay for gameToken as seen by userToken.
func (f *Fetcher) Fetch(ctx context.Context, gameToken, userToken string) (*core.Sequence, error) {
	if f.baseURL == "" {
		return nil, rerrors.WithSuggestion(
			errors.New("no server configured"),
			"Set server.base_url in the config file or pass --url",
		)
	}
	if gameToken == "" {
		return nil, errors.New("game token is required")
	}

	fullURL := GameURL(f.baseURL, gameToken, userToken)
	body, err := f.get(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	seq, err := Decode(bytes.NewReader(body), FormatJSON)
	if err != nil {
		return nil, err
	}
	seq.Source = core.SourceServer
	seq.Origin = fullURL
	return seq, nil
}

func (f *Fetcher) get(ctx context.Context, fullURL string) ([]byte, error) {
	f.log.Debug().Str("url", fullURL).Msg("fetching replay")

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			wait := f.retryWait * time.Duration(1<<(attempt-1))
			f.log.Debug().Int("attempt", attempt).Dur("wait", wait).Err(lastErr).Msg("retrying replay fetch")
			select {
			case <-ctx.Done():
				return nil, classify(ctx.Err())
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = classify(err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue // Retry on network error
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		f.log.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("replay response")

		// Retry on 5xx server errors
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%w: status %d", rerrors.ErrNetworkError, resp.StatusCode)
			continue
		}

		// Don't retry 4xx errors
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", rerrors.ErrReplayNotFound, fullURL)
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("%w: status %d: %s", rerrors.ErrServerReplay, resp.StatusCode, strings.TrimSpace(string(body)))
		}

		return body, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// classify maps transport failures onto the shared sentinel errors.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", rerrors.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", rerrors.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", rerrors.ErrNetworkError, err)
}
