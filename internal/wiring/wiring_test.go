package wiring_test

import (
	"context"
	"testing"
	"time"

	"code_reviewer/internal/domain"
	"code_reviewer/internal/shared"
	"code_reviewer/internal/wiring"
)

func TestNewAggregator_NoKeysDegradesToMarker(t *testing.T) {
	agg, closeFn, err := wiring.NewAggregator(context.Background(), shared.Config{ProviderTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer closeFn()

	out, err := agg.Review(context.Background(), "x := 1", "review")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CombinedText != domain.NoValidResponses {
		t.Fatalf("CombinedText = %q", out.CombinedText)
	}
}

func TestNewAggregator_UnknownTransport(t *testing.T) {
	_, closeFn, err := wiring.NewAggregator(context.Background(), shared.Config{
		GeminiKey:       "k",
		GeminiTransport: "grpc",
	})
	defer closeFn()
	if err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}
