package domain

import "context"

// ProviderClient issues one request to an upstream model and absorbs every failure into the result.
type ProviderClient interface {
	Call(ctx context.Context, code, instruction string) ProviderResult
}

// Reviewer produces a combined review. It only fails when ctx is cancelled.
type Reviewer interface {
	Review(ctx context.Context, code, instruction string) (AggregatedReview, error)
}
