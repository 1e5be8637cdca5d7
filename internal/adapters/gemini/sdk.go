package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// SDKClient uses the official Go SDK. Unlike Client it sends the instruction as the
// model's system instruction and the code alone as the user part.
type SDKClient struct {
	client *genai.Client
	model  string
}

func NewSDK(ctx context.Context, key, model string) (*SDKClient, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("gemini: create sdk client: %w", err)
	}
	return &SDKClient{client: c, model: model}, nil
}

func (c *SDKClient) Generate(ctx context.Context, code, instruction string) (string, error) {
	// GenerativeModel is cheap and carries per-call settings, so build one per call
	m := c.client.GenerativeModel(c.model)
	if instruction != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}
	}
	resp, err := m.GenerateContent(ctx, genai.Text(code))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return textFromResponse(resp)
}

func (c *SDKClient) Close() error { return c.client.Close() }

// textFromResponse concatenates the text parts of the first candidate.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoCandidates
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyText
	}
	return b.String(), nil
}
