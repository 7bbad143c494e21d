package openaiad

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"review_analytics/internal/adapters/observability"
)

const (
	defaultModel = "gpt-4o-mini"
	temperature  = 0.3
	maxTokens    = 128
)

var ErrNoCredential = errors.New("openai: no API key configured")

// Client asks a chat model to tag a review. The key accessor is consulted on
// every call, so the credential can appear, rotate, or vanish at runtime.
type Client struct {
	key     func() string
	model   string
	baseURL string // overridden in tests
	rl      *rate.Limiter
}

func New(key func() string, model string, rps int) *Client {
	if model == "" {
		model = defaultModel
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{key: key, model: model, rl: rate.NewLimiter(rate.Limit(rps), rps)}
}

// NewWithBaseURL points the client at an alternate API endpoint.
func NewWithBaseURL(key func() string, model string, rps int, baseURL string) *Client {
	c := New(key, model, rps)
	c.baseURL = baseURL
	return c
}

func (c *Client) Configured() bool { return c.key() != "" }

// SuggestTags performs a single chat completion and returns the raw model
// output. No retry; any failure is the caller's cue to fall back.
func (c *Client) SuggestTags(ctx context.Context, text string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	key := c.key()
	if key == "" {
		return "", ErrNoCredential
	}

	cfg := openai.DefaultConfig(key)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cl := openai.NewClientWithConfig(cfg)

	start := time.Now()
	resp, err := cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: tagPrompt(text)},
		},
	})
	observability.ObserveExternal("openai", err == nil, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func tagPrompt(text string) string {
	return fmt.Sprintf(`You are an AI assistant. Read the following customer review and generate up to 3 relevant tags.

Review: %q

Respond strictly with a JSON array of concise lowercase tags.`, text)
}
