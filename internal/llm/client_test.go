package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"jobassist/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*OpenRouter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewOpenRouter(config.OpenRouterConfig{
		APIKey:      "sk-test",
		BaseURL:     srv.URL,
		Model:       "anthropic/claude-3.5-sonnet",
		MaxAttempts: 3,
	})
	require.NoError(t, err)
	return c, srv
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestNewOpenRouter(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		c, err := NewOpenRouter(config.OpenRouterConfig{})
		assert.ErrorIs(t, err, ErrAPIKeyMissing)
		assert.Nil(t, c)
	})

	t.Run("defaults applied", func(t *testing.T) {
		c, err := NewOpenRouter(config.OpenRouterConfig{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, "anthropic/claude-3.5-sonnet", c.Model())
		assert.Equal(t, "https://openrouter.ai/api/v1", c.baseURL)
		assert.Equal(t, 3, c.maxAttempts)
	})
}

func TestOpenRouter_Complete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotReq chatRequest
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.Write([]byte(completionBody("hello from the model")))
		})

		out, err := c.Complete(context.Background(), "analyze this", CompletionOptions{
			SystemPrompt: SystemPrompt,
			MaxTokens:    256,
		})

		require.NoError(t, err)
		assert.Equal(t, "hello from the model", out)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Equal(t, SystemPrompt, gotReq.Messages[0].Content)
		assert.Equal(t, "user", gotReq.Messages[1].Role)
		assert.Equal(t, "analyze this", gotReq.Messages[1].Content)
		assert.Equal(t, "anthropic/claude-3.5-sonnet", gotReq.Model)
	})

	t.Run("no system message when prompt empty", func(t *testing.T) {
		var gotReq chatRequest
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotReq)
			w.Write([]byte(completionBody("ok")))
		})

		_, err := c.Complete(context.Background(), "prompt", CompletionOptions{})
		require.NoError(t, err)
		require.Len(t, gotReq.Messages, 1)
		assert.Equal(t, "user", gotReq.Messages[0].Role)
	})

	t.Run("model override", func(t *testing.T) {
		var gotReq chatRequest
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotReq)
			w.Write([]byte(completionBody("ok")))
		})

		_, err := c.Complete(context.Background(), "prompt", CompletionOptions{Model: "openai/gpt-4o"})
		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-4o", gotReq.Model)
	})

	t.Run("client error is terminal", func(t *testing.T) {
		var calls int32
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"bad model"}}`))
		})

		_, err := c.Complete(context.Background(), "prompt", CompletionOptions{})

		require.Error(t, err)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Contains(t, se.Body, "bad model")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not be retried")
	})

	t.Run("server error retried until success", func(t *testing.T) {
		var calls int32
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(completionBody("recovered")))
		})

		out, err := c.Complete(context.Background(), "prompt", CompletionOptions{})

		require.NoError(t, err)
		assert.Equal(t, "recovered", out)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("retries exhausted", func(t *testing.T) {
		var calls int32
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := c.Complete(context.Background(), "prompt", CompletionOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "completion failed after 3 attempt(s)")
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("empty choices", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})

		_, err := c.Complete(context.Background(), "prompt", CompletionOptions{})
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("context cancelled", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("ok")))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Complete(ctx, "prompt", CompletionOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&StatusError{StatusCode: 429}))
	assert.True(t, isRetryable(&StatusError{StatusCode: 503}))
	assert.False(t, isRetryable(&StatusError{StatusCode: 400}))
	assert.False(t, isRetryable(&StatusError{StatusCode: 401}))
	assert.False(t, isRetryable(ErrEmptyCompletion))
	assert.True(t, isRetryable(errors.New("connection reset")))
}

func TestBackoffDelay(t *testing.T) {
	for attempt := 1; attempt <= 10; attempt++ {
		d := backoffDelay(attempt)
		assert.Greater(t, d.Nanoseconds(), int64(0))
		assert.LessOrEqual(t, d, retryMaxInterval)
	}
}
