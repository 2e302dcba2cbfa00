package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/textutil"
)

type flakyImageScorer struct {
	calls    int
	failures int
	scores   ImageScores
}

func (f *flakyImageScorer) Name() string     { return "flaky" }
func (f *flakyImageScorer) Configured() bool { return true }

func (f *flakyImageScorer) ScoreImage(ctx context.Context, ref string) (ImageScores, error) {
	f.calls++
	if f.calls <= f.failures {
		return ImageScores{}, trust.ErrTimeout
	}
	return f.scores, nil
}

type failingTextScorer struct {
	calls int
	err   error
}

func (f *failingTextScorer) Name() string     { return "failing" }
func (f *failingTextScorer) Configured() bool { return true }

func (f *failingTextScorer) ScoreText(ctx context.Context, text, lang string) (TextScores, error) {
	f.calls++
	return nil, f.err
}

func fastRetryConfig(maxRetries int) ResilientConfig {
	cfg := DefaultResilientConfig()
	cfg.Retry = textutil.RetryConfig{
		MaxRetries:   maxRetries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	return cfg
}

func TestResilientImageScorerRetries(t *testing.T) {
	inner := &flakyImageScorer{failures: 2, scores: ImageScores{Weapon: 0.9}}
	wrapped := WrapImageScorer(inner, fastRetryConfig(3))

	got, err := wrapped.ScoreImage(context.Background(), "https://example.com/a.jpg")
	if err != nil {
		t.Fatalf("ScoreImage() error = %v, want success after retries", err)
	}
	if got.Weapon != 0.9 {
		t.Errorf("Weapon = %v, want 0.9", got.Weapon)
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
}

func TestResilientImageScorerExhaustsRetries(t *testing.T) {
	inner := &flakyImageScorer{failures: 10}
	wrapped := WrapImageScorer(inner, fastRetryConfig(2))

	_, err := wrapped.ScoreImage(context.Background(), "https://example.com/a.jpg")
	if err == nil {
		t.Fatal("ScoreImage() error = nil, want failure after exhausting retries")
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3 for MaxRetries=2", inner.calls)
	}
}

func TestResilientTextScorerNonRetryable(t *testing.T) {
	inner := &failingTextScorer{err: trust.ErrMissingCredentials}
	wrapped := WrapTextScorer(inner, fastRetryConfig(3))

	_, err := wrapped.ScoreText(context.Background(), "text", "pt")
	if err == nil {
		t.Fatal("ScoreText() error = nil, want failure")
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 for non-retryable error", inner.calls)
	}
}

type unconfiguredCompleter struct {
	calls int
}

func (u *unconfiguredCompleter) Name() string     { return "unconfigured" }
func (u *unconfiguredCompleter) Configured() bool { return false }

func (u *unconfiguredCompleter) Complete(ctx context.Context, instruction string) (string, error) {
	u.calls++
	return "", nil
}

func TestResilientCompleterSkipsUnconfigured(t *testing.T) {
	inner := &unconfiguredCompleter{}
	wrapped := WrapCompleter(inner, fastRetryConfig(3))

	_, err := wrapped.Complete(context.Background(), "instruction")
	if !errors.Is(err, trust.ErrMissingCredentials) {
		t.Errorf("Complete() error = %v, want ErrMissingCredentials", err)
	}
	if inner.calls != 0 {
		t.Errorf("inner calls = %d, want 0 when unconfigured", inner.calls)
	}
}

func TestResilientWrappersPreserveIdentity(t *testing.T) {
	img := WrapImageScorer(&flakyImageScorer{}, DefaultResilientConfig())
	if img.Name() != "flaky" {
		t.Errorf("Name() = %q, want inner name", img.Name())
	}
	if !img.Configured() {
		t.Error("Configured() = false, want inner value")
	}
}

func TestResilientWrappersSatisfyInterfaces(t *testing.T) {
	var _ ImageScorer = (*ResilientImageScorer)(nil)
	var _ TextScorer = (*ResilientTextScorer)(nil)
	var _ Completer = (*ResilientCompleter)(nil)
}
