// Package llm adapts an OpenAI-compatible chat endpoint (a local
// Ollama server by default) for small talk the rule-based pipeline
// cannot answer.
package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	perr "tailortalk/internal/platform/errors"
)

// Defaults target a local Ollama server speaking the OpenAI API.
const (
	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultModel   = "mistral"
)

const systemPrompt = "You are TailorTalk, a friendly calendar assistant. " +
	"Answer briefly and conversationally. If the user seems to want to " +
	"manage their calendar, suggest they type 'help' to see what you can do."

// Options configure the chat client. Zero values select the local
// Ollama defaults.
type Options struct {
	BaseURL string // must include the /v1 suffix
	APIKey  string
	Model   string
}

// Client answers free-form messages through a chat-completion model.
type Client struct {
	api   *openai.Client
	model string
}

// New builds the client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{api: openai.NewClientWithConfig(cfg), model: opts.Model}
}

// Reply asks the model for a short conversational answer to msg.
func (c *Client) Reply(ctx context.Context, msg string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: msg},
		},
	})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "llm: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", perr.Unavailablef("llm: completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
