package enrich

import (
	"context"
	"strings"
	"time"
)

// IsRateLimitError checks if an error is a rate limit or quota error.
// Matches 429 status codes and RESOURCE_EXHAUSTED errors.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(errStr), "quota")
}

// completeWithRetry calls fn up to maxRetries times, at least once.
// Rate-limit errors back off with a delay that grows with the attempt
// count; other errors wait a short fixed delay. Returns the last error
// on exhaustion.
func completeWithRetry(ctx context.Context, maxRetries int, fn func() (string, error)) (string, error) {
	attempts := maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		var delay time.Duration
		if IsRateLimitError(err) {
			delay = time.Duration(5*(attempt+1)) * time.Second
		} else {
			delay = 2 * time.Second
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", lastErr
}
