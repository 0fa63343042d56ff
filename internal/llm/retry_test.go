package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// newTestRetry returns a RetryProvider that records waits instead of sleeping.
func newTestRetry(inner Provider, waits *[]time.Duration) *RetryProvider {
	r := WithRetry(inner, RetryConfig{
		MaxAttempts: 3,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     150 * time.Millisecond,
		Multiplier:  2.0,
	}, nil).(*RetryProvider)
	r.wait = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	return r
}

var okContent = json.RawMessage(`{"ok":true}`)

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(MockResponse{Content: okContent})

	resp, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != string(okContent) {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 || len(waits) != 0 {
		t.Fatalf("calls=%d waits=%d, want 1/0", mock.CallCount(), len(waits))
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), MockResponse{Content: okContent})

	if _, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), down(), down())

	_, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
	// No wait after the final attempt.
	if len(waits) != 2 {
		t.Fatalf("expected 2 waits, got %d", len(waits))
	}
}

func TestRetry_BackoffIsCappedWithJitter(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), down(), down())
	newTestRetry(mock, &waits).Generate(context.Background(), Request{})

	bounds := []struct{ lo, hi time.Duration }{
		{80 * time.Millisecond, 120 * time.Millisecond},  // 100ms ±20%
		{120 * time.Millisecond, 180 * time.Millisecond}, // 200ms capped to 150ms ±20%
	}
	for i, b := range bounds {
		if waits[i] < b.lo || waits[i] > b.hi {
			t.Errorf("wait[%d] = %v, want within [%v, %v]", i, waits[i], b.lo, b.hi)
		}
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}})

	_, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	var waits []time.Duration
	bad := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	mock := NewMockProvider(bad, bad, MockResponse{Content: okContent})

	if _, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), down(), MockResponse{Content: okContent})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRetry(mock, &waits).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 7 * time.Second, Err: errors.New("429")}},
		MockResponse{Content: okContent},
	)

	if _, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waits) != 1 || waits[0] != 7*time.Second {
		t.Fatalf("waits = %v, want [7s]", waits)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{MaxAttempts: 1}, nil)
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
