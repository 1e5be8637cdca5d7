// Package openai is the primary provider: a chat-completions call with the review
// instruction as the system turn and the code as the user turn.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1/"
	DefaultModel   = "gpt-3.5-turbo"
)

var (
	ErrNoChoices    = errors.New("openai: response has no choices")
	ErrEmptyContent = errors.New("openai: first choice has empty content")
)

type Client struct {
	sdk   oai.Client
	model string
}

// New builds a client with SDK retries disabled; the caller bounds the call time.
func New(base, key, model string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	sdk := oai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL(base),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
	return &Client{sdk: sdk, model: model}, nil
}

func (c *Client) Generate(ctx context.Context, code, instruction string) (string, error) {
	completion, err := c.sdk.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(instruction),
			oai.UserMessage(code),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrNoChoices
	}
	text := completion.Choices[0].Message.Content
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}
