package domain

import "context"

type reviewIDKey struct{}

func WithReviewID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reviewIDKey{}, id)
}

// ReviewID returns the id attached by the aggregator, or "".
func ReviewID(ctx context.Context) string {
	id, _ := ctx.Value(reviewIDKey{}).(string)
	return id
}
