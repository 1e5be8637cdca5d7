// internal/adapters/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

var (
	ErrUnauthorized = errors.New("gemini: unauthorized")
	ErrForbidden    = errors.New("gemini: forbidden")
	ErrRateLimited  = errors.New("gemini: rate limited")
	ErrNoCandidates = errors.New("gemini: response has no candidate text")
	ErrEmptyText    = errors.New("gemini: candidate text is empty")
)

// StatusError is returned for any other non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini: bad status %d: %s", e.Code, e.Body)
}

// Client talks to the REST generateContent endpoint. The instruction and the code
// travel together in a single text part.
type Client struct {
	base  string
	model string
	hc    *http.Client
	key   string
}

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
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		hc:    &http.Client{Timeout: 60 * time.Second},
		key:   key,
	}, nil
}

// ---- wire schema ----

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

// text extracts candidates[0].content.parts[0].text.
func (r generateResponse) text() (string, error) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	t := r.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(t) == "" {
		return "", ErrEmptyText
	}
	return t, nil
}

// UserText is the single part sent upstream.
func UserText(code, instruction string) string {
	return instruction + "\n\nCode:\n" + code
}

// ---- call ----

func (c *Client) Generate(ctx context.Context, code, instruction string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: UserText(code, instruction)}}}},
	})
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, url.PathEscape(c.model), url.QueryEscape(c.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "code-reviewer/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// url.Error carries the full URL, key included
		return "", fmt.Errorf("gemini: request failed: %s", redact(err.Error(), c.key))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out generateResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("gemini: decode response: %w", err)
		}
		return out.text()

	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrUnauthorized

	case resp.StatusCode == http.StatusForbidden:
		return "", ErrForbidden

	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}

func redact(s, key string) string {
	if key == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(key), "REDACTED")
	return strings.ReplaceAll(s, key, "REDACTED")
}
