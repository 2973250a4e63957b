// Package fetch downloads the pre-built catalog document for offline use.
//
// This is the build-time side of catalog handling: unlike the runtime
// loader in internal/catalog, it retries transient failures with
// exponential backoff and distinguishes timeouts from other network
// failures.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/ruffctl/ruffctl/internal/logger"
)

// Config configures a fetch.
type Config struct {
	// URL is the catalog document location.
	URL string

	// Timeout bounds each individual attempt.
	Timeout time.Duration

	// Retries is the number of retry attempts after the first failure.
	Retries int
}

// Backoff parameters: base delay doubles per attempt, capped per attempt.
const (
	baseDelay = 1 * time.Second
	maxDelay  = 10 * time.Second
)

// DefaultConfig returns the default fetch configuration.
func DefaultConfig(url string) Config {
	return Config{
		URL:     url,
		Timeout: 30 * time.Second,
		Retries: 3,
	}
}

// TimeoutError marks an attempt that was aborted by its deadline, as
// opposed to any other network failure.
type TimeoutError struct {
	URL string
}

func (e *TimeoutError) Error() string {
	return "request timed out fetching " + e.URL
}

// Fetch downloads the document, retrying transient failures.
func Fetch(ctx context.Context, cfg Config) ([]byte, error) {
	log := logger.Default().WithPrefix("fetch")

	var lastErr error
	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			log.Debug("retrying %s in %v (attempt %d/%d)", cfg.URL, delay, attempt, cfg.Retries)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		data, err := fetchOnce(ctx, cfg)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		log.Warn("fetch attempt %d failed: %v", attempt+1, err)
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", cfg.Retries, lastErr)
}

// FetchToFile downloads the document and writes it to path.
func FetchToFile(ctx context.Context, cfg Config, path string) error {
	data, err := Fetch(ctx, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}

func fetchOnce(ctx context.Context, cfg Config) ([]byte, error) {
	attemptCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: cfg.URL}
		}
		return nil, fmt.Errorf("fetching %s: %w", cfg.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode, url: cfg.URL}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: cfg.URL}
		}
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return data, nil
}

type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("fetching %s: status %d", e.url, e.status)
}

// isRetryable reports whether an error is worth another attempt: timeouts,
// connection-level failures and retryable HTTP statuses.
func isRetryable(err error) bool {
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return true
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.status == http.StatusTooManyRequests ||
			status.status >= http.StatusInternalServerError
	}
	// Remaining wrapped errors are connection-level failures.
	return !errors.Is(err, context.Canceled)
}

// backoffDelay computes the delay before the given retry attempt.
func backoffDelay(attempt int) time.Duration {
	delay := time.Duration(float64(baseDelay) * math.Pow(2, float64(attempt-1)))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
