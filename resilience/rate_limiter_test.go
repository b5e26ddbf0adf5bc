package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiter_BurstThenReject(t *testing.T) {
	var limited int
	rl := NewRateLimiter(RateLimiterConfig{Name: "watson", Rate: 1, Burst: 2, OnLimit: func(string) { limited++ }})

	if !rl.Allow() || !rl.Allow() {
		t.Fatal("burst of two should be allowed")
	}
	if rl.Allow() {
		t.Error("third call should be limited")
	}
	if limited != 1 {
		t.Errorf("OnLimit calls = %d", limited)
	}
}

func TestRateLimiter_WaitBlocksUntilToken(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 50, Burst: 1})
	_ = rl.Allow()

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Wait returned too early: %v", elapsed)
	}
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.1, Burst: 1})
	_ = rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) || !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected rate-limited deadline error, got %v", err)
	}
}

func TestRateLimiter_CancelledWaitReturnsToken(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 20, Burst: 1})
	_ = rl.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if tokens := rl.Tokens(); tokens < -0.5 {
		t.Errorf("cancelled reservation still held: tokens = %v", tokens)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	if rl.Rate() != 10 || rl.Burst() != 10 {
		t.Errorf("defaults = %v/%d", rl.Rate(), rl.Burst())
	}
	if rl.Tokens() > float64(rl.Burst()) {
		t.Errorf("tokens %v exceed burst", rl.Tokens())
	}
}
