package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"jobassist/internal/config"
)

// CompletionOptions tune a single chat completion request.
// Zero values fall back to the client's configured defaults.
type CompletionOptions struct {
	SystemPrompt string
	Model        string
	Temperature  float64
	MaxTokens    int
}

// Client is the minimal chat-completion surface the services depend on.
type Client interface {
	// Complete sends a prompt and returns the assistant's reply text.
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	// Model returns the default model identifier used when options leave it empty.
	Model() string
}

// OpenRouter implements Client against the OpenRouter chat-completions API,
// which speaks the OpenAI wire format. Safe for concurrent use.
type OpenRouter struct {
	apiKey      string
	baseURL     string
	model       string
	maxAttempts int
	client      *http.Client
}

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "anthropic/claude-3.5-sonnet"

	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 8 * time.Second

	// Provider error bodies can be large; keep StatusError readable.
	maxErrorBodyBytes = 2048
)

// NewOpenRouter creates an OpenRouter client from configuration.
func NewOpenRouter(cfg config.OpenRouterConfig) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	timeout := 60 * time.Second
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &OpenRouter{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxAttempts: attempts,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

var _ Client = (*OpenRouter)(nil)

// Model returns the configured default model.
func (c *OpenRouter) Model() string {
	return c.model
}

// Complete sends the prompt and retries transient failures with
// exponential backoff and full jitter, honoring context cancellation.
func (c *OpenRouter) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		content, err := c.complete(ctx, prompt, opts)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("completion cancelled: %w", ctx.Err())
		}
		if !isRetryable(err) || attempt == c.maxAttempts {
			break
		}

		select {
		case <-time.After(backoffDelay(attempt)):
		case <-ctx.Done():
			return "", fmt.Errorf("completion cancelled: %w", ctx.Err())
		}
	}

	return "", fmt.Errorf("completion failed after %d attempt(s): %w", c.maxAttempts, lastErr)
}

// backoffDelay computes the wait before the next attempt: exponential
// growth from the initial interval, capped, with full jitter.
func backoffDelay(attempt int) time.Duration {
	d := retryInitialInterval
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= retryMaxInterval {
			d = retryMaxInterval
			break
		}
	}
	return time.Duration(rand.Int63n(int64(d)) + 1)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs a single chat-completion round trip.
func (c *OpenRouter) complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	messages := make([]chatMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: opts.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), maxErrorBodyBytes)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
