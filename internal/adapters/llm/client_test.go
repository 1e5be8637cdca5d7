package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code_reviewer/internal/adapters/llm"
	"code_reviewer/internal/domain"
)

type genFunc func(ctx context.Context, code, instruction string) (string, error)

func (f genFunc) Generate(ctx context.Context, code, instruction string) (string, error) {
	return f(ctx, code, instruction)
}

func TestClient_Call_Success(t *testing.T) {
	var gotCode, gotInstr string
	c := llm.New(domain.PrimaryProvider, "openai", genFunc(func(_ context.Context, code, instr string) (string, error) {
		gotCode, gotInstr = code, instr
		return "Looks fine.", nil
	}), time.Second)

	res := c.Call(context.Background(), "x := 1", "review it")
	if !res.Succeeded || res.Text != "Looks fine." || res.Provider != domain.PrimaryProvider {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotCode != "x := 1" || gotInstr != "review it" {
		t.Fatalf("generator got code=%q instruction=%q", gotCode, gotInstr)
	}
}

func TestClient_Call_ErrorBecomesFailure(t *testing.T) {
	boom := errors.New("remote 502")
	c := llm.New(domain.SecondaryProvider, "gemini", genFunc(func(context.Context, string, string) (string, error) {
		return "partial text", boom
	}), time.Second)

	res := c.Call(context.Background(), "code", "instr")
	if res.Succeeded || res.Text != "" {
		t.Fatalf("failure must carry no text: %+v", res)
	}
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected wrapped cause, got %v", res.Err)
	}
}

func TestClient_Call_BlankTextIsFailure(t *testing.T) {
	c := llm.New(domain.PrimaryProvider, "openai", genFunc(func(context.Context, string, string) (string, error) {
		return " \n\t", nil
	}), time.Second)

	res := c.Call(context.Background(), "code", "instr")
	if res.Succeeded || !errors.Is(res.Err, llm.ErrEmptyText) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestClient_Call_Timeout(t *testing.T) {
	c := llm.New(domain.PrimaryProvider, "openai", genFunc(func(ctx context.Context, _, _ string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	}), 50*time.Millisecond)

	start := time.Now()
	res := c.Call(context.Background(), "code", "instr")
	if res.Succeeded {
		t.Fatalf("expected timeout failure, got %+v", res)
	}
	if el := time.Since(start); el > 2*time.Second {
		t.Fatalf("call not bounded: took %v", el)
	}
}

func TestClient_Call_LateAnswerIsFailure(t *testing.T) {
	var deadline time.Time
	c := llm.New(domain.SecondaryProvider, "gemini", genFunc(func(ctx context.Context, _, _ string) (string, error) {
		deadline, _ = ctx.Deadline()
		time.Sleep(80 * time.Millisecond) // ignores ctx
		return "too late", nil
	}), 20*time.Millisecond)

	start := time.Now()
	res := c.Call(context.Background(), "code", "instr")
	if res.Succeeded || res.Text != "" {
		t.Fatalf("expected failure for an answer past the bound, got %+v", res)
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", res.Err)
	}
	if deadline.IsZero() || deadline.After(start.Add(40*time.Millisecond)) {
		t.Fatalf("generator ctx deadline %v not within the bound", deadline)
	}
}

func TestClient_Call_PanicBecomesFailure(t *testing.T) {
	c := llm.New(domain.PrimaryProvider, "openai", genFunc(func(context.Context, string, string) (string, error) {
		panic("nil map")
	}), time.Second)

	res := c.Call(context.Background(), "code", "instr")
	if res.Succeeded || res.Err == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestClient_Call_Unconfigured(t *testing.T) {
	c := llm.New(domain.SecondaryProvider, "gemini", llm.Unconfigured{}, 0)
	res := c.Call(context.Background(), "code", "instr")
	if res.Succeeded || !errors.Is(res.Err, llm.ErrMissingAPIKey) {
		t.Fatalf("unexpected result: %+v", res)
	}
}
