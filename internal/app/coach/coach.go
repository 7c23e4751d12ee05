// Package coach is the AI communication coach. It proxies chat turns
// to an OpenAI-compatible backend with a mode-specific system prompt.
package coach

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// DefaultModel is used when the config names none.
const DefaultModel = "gpt-4o-mini"

// Message is one chat turn as the API exchanges it.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Config holds backend settings. BaseURL may point at any
// OpenAI-compatible endpoint (a local runtime works fine).
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Coach wraps the chat backend.
type Coach struct {
	client *openai.Client
	model  string
}

// New creates a coach. Returns an error if no API key is configured —
// the daemon then runs with the coach route disabled.
func New(cfg Config) (*Coach, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("coach API key is required")
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Coach{client: openai.NewClientWithConfig(cc), model: model}, nil
}

// Chat runs one coaching exchange. The mode selects the system prompt;
// custom mode takes its subject from topic.
func (c *Coach) Chat(ctx context.Context, mode, topic string, history []Message) (string, error) {
	system, err := SystemPrompt(mode, topic)
	if err != nil {
		return "", err
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCoachUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrCoachUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}
