package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyMissing indicates the OpenRouter API key was not configured.
	ErrAPIKeyMissing = errors.New("openrouter api key is required")
	// ErrEmptyCompletion indicates the provider answered 200 but returned no usable content.
	ErrEmptyCompletion = errors.New("provider returned empty completion")
)

// StatusError is returned when the provider answers with a non-200 status.
// It carries the upstream status code and a truncated copy of the response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openrouter status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the failure is worth another attempt.
// Rate limits and server-side errors are transient; other 4xx are terminal.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// isRetryable classifies an error from a completion attempt.
// Transport-level failures (connection reset, DNS) are retryable;
// provider status errors decide for themselves.
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	if errors.Is(err, ErrEmptyCompletion) {
		return false
	}
	// Anything else at this level is a transport error.
	return true
}
