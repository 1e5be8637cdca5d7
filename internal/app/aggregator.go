package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"code_reviewer/internal/adapters/observability"
	"code_reviewer/internal/domain"
)

// Aggregator fans a review out to the primary and secondary providers and merges their text.
type Aggregator struct {
	primary   domain.ProviderClient
	secondary domain.ProviderClient
}

func NewAggregator(primary, secondary domain.ProviderClient) *Aggregator {
	return &Aggregator{primary: primary, secondary: secondary}
}

// Review calls both providers concurrently and waits for both. Provider failures only
// degrade the result; an error is returned only when ctx ends before the merge.
func (a *Aggregator) Review(ctx context.Context, code, instruction string) (domain.AggregatedReview, error) {
	id := domain.ReviewID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = domain.WithReviewID(ctx, id)
	}

	results := make([]domain.ProviderResult, 2)
	// plain Group: a failed provider must not cancel the other one
	var g errgroup.Group
	for i, p := range []domain.ProviderClient{a.primary, a.secondary} {
		g.Go(func() error {
			results[i] = p.Call(ctx, code, instruction)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn().Str("review_id", id).Err(err).Msg("review abandoned")
		return domain.AggregatedReview{}, err
	}

	combined := Merge(results...)
	outcome := reviewOutcome(results)
	observability.ObserveReview(outcome)
	log.Info().
		Str("review_id", id).
		Bool("primary_ok", results[0].Succeeded).
		Bool("secondary_ok", results[1].Succeeded).
		Str("outcome", outcome).
		Int("length", len(combined)).
		Msg("review merged")

	return domain.AggregatedReview{CombinedText: combined}, nil
}

func reviewOutcome(results []domain.ProviderResult) string {
	n := 0
	for _, r := range results {
		if r.Succeeded {
			n++
		}
	}
	switch n {
	case len(results):
		return "merged"
	case 0:
		return "empty"
	default:
		return "partial"
	}
}
