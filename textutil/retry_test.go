package textutil

import (
	"context"
	"errors"
	"testing"
	"time"

	trust "github.com/ajudaki/trust"
)

func TestRetryer_Do_SucceedsAfterRetry(t *testing.T) {
	r := NewRetryer(RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	})

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return trust.ErrTimeout
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryer_Do_NonRetryableStops(t *testing.T) {
	r := NewRetryer(RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
	})

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return trust.ErrMissingCredentials
	})
	if !errors.Is(err, trust.ErrMissingCredentials) {
		t.Fatalf("Do() error = %v, want ErrMissingCredentials", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 (missing credentials must not be retried)", calls)
	}
}

func TestRetryer_Do_ExhaustsRetries(t *testing.T) {
	r := NewRetryer(RetryConfig{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
	})

	calls := 0
	wantErr := trust.NewProviderError("perspective", "503", "unavailable").WithStatusCode(503)
	err := r.Do(context.Background(), func() error {
		calls++
		return wantErr
	})
	if err == nil {
		t.Fatal("Do() error = nil, want error after exhausted retries")
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3 (initial + 2 retries)", calls)
	}
}

func TestRetryer_Do_ContextCanceled(t *testing.T) {
	r := NewRetryer(RetryConfig{
		MaxRetries:   5,
		InitialDelay: 50 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Do(ctx, func() error { return trust.ErrTimeout })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}

func TestDoWithResult(t *testing.T) {
	r := NewRetryer(RetryConfig{MaxRetries: 1, InitialDelay: time.Millisecond})

	calls := 0
	got, err := DoWithResult(context.Background(), r, func() (string, error) {
		calls++
		if calls == 1 {
			return "", trust.ErrRateLimited
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("DoWithResult() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("DoWithResult() = %q, want %q", got, "ok")
	}
}
