package domain

import "errors"

// NoValidResponses is returned as the review text when neither provider produced usable text.
const NoValidResponses = "No valid responses received from AI models."

var ErrCodeRequired = errors.New("code is required")

type ProviderName string

const (
	PrimaryProvider   ProviderName = "primary"
	SecondaryProvider ProviderName = "secondary"
)

type ReviewRequest struct {
	Code   string `json:"code"`
	Prompt string `json:"prompt,omitempty"`
}

// ProviderResult is the outcome of one provider call. A failed result never carries text.
type ProviderResult struct {
	Provider  ProviderName
	Text      string
	Succeeded bool
	Err       error // diagnostics only
}

func Success(p ProviderName, text string) ProviderResult {
	return ProviderResult{Provider: p, Text: text, Succeeded: true}
}

func Failure(p ProviderName, err error) ProviderResult {
	return ProviderResult{Provider: p, Err: err}
}

type AggregatedReview struct {
	CombinedText string
}
