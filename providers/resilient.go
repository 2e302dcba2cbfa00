package providers

import (
	"context"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/textutil"
)

// ResilientConfig configures the resilient provider wrappers.
type ResilientConfig struct {
	Retry  textutil.RetryConfig
	Logger *CallLogger
}

// DefaultResilientConfig returns sensible defaults.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Retry:  textutil.DefaultRetryConfig(),
		Logger: NopCallLogger(),
	}
}

func (c ResilientConfig) normalized() ResilientConfig {
	if c.Logger == nil {
		c.Logger = NopCallLogger()
	}
	return c
}

// ResilientImageScorer wraps an ImageScorer with retry and call logging.
// Retries live here, beneath the analyzers; the analyzers only ever see
// the final outcome.
type ResilientImageScorer struct {
	inner   ImageScorer
	retryer *textutil.Retryer
	logger  *CallLogger
}

// WrapImageScorer decorates an image scorer with resilience.
func WrapImageScorer(inner ImageScorer, cfg ResilientConfig) *ResilientImageScorer {
	cfg = cfg.normalized()
	return &ResilientImageScorer{
		inner:   inner,
		retryer: textutil.NewRetryer(cfg.Retry),
		logger:  cfg.Logger,
	}
}

func (r *ResilientImageScorer) Name() string     { return r.inner.Name() }
func (r *ResilientImageScorer) Configured() bool { return r.inner.Configured() }

// ScoreImage calls the wrapped scorer with retry and logging.
func (r *ResilientImageScorer) ScoreImage(ctx context.Context, ref string) (ImageScores, error) {
	if !r.inner.Configured() {
		r.logger.Skipped(r.inner.Name(), "score_image", "missing credentials")
		return ImageScores{}, trust.ErrMissingCredentials
	}

	timer := r.logger.StartCall(r.inner.Name(), "score_image")

	var attempts int
	scores, err := textutil.DoWithResult(ctx, r.retryer, func() (ImageScores, error) {
		attempts++
		return r.inner.ScoreImage(ctx, ref)
	})
	if err != nil {
		timer.WithRetries(attempts - 1).Failure(err)
		return ImageScores{}, err
	}

	timer.WithRetries(attempts - 1).Success()
	return scores, nil
}

// ResilientTextScorer wraps a TextScorer with retry and call logging.
type ResilientTextScorer struct {
	inner   TextScorer
	retryer *textutil.Retryer
	logger  *CallLogger
}

// WrapTextScorer decorates a text scorer with resilience.
func WrapTextScorer(inner TextScorer, cfg ResilientConfig) *ResilientTextScorer {
	cfg = cfg.normalized()
	return &ResilientTextScorer{
		inner:   inner,
		retryer: textutil.NewRetryer(cfg.Retry),
		logger:  cfg.Logger,
	}
}

func (r *ResilientTextScorer) Name() string     { return r.inner.Name() }
func (r *ResilientTextScorer) Configured() bool { return r.inner.Configured() }

// ScoreText calls the wrapped scorer with retry and logging.
func (r *ResilientTextScorer) ScoreText(ctx context.Context, text, lang string) (TextScores, error) {
	if !r.inner.Configured() {
		r.logger.Skipped(r.inner.Name(), "score_text", "missing credentials")
		return nil, trust.ErrMissingCredentials
	}

	timer := r.logger.StartCall(r.inner.Name(), "score_text")

	var attempts int
	scores, err := textutil.DoWithResult(ctx, r.retryer, func() (TextScores, error) {
		attempts++
		return r.inner.ScoreText(ctx, text, lang)
	})
	if err != nil {
		timer.WithRetries(attempts - 1).Failure(err)
		return nil, err
	}

	timer.WithRetries(attempts - 1).Success()
	return scores, nil
}

// ResilientCompleter wraps a Completer with retry and call logging.
type ResilientCompleter struct {
	inner   Completer
	retryer *textutil.Retryer
	logger  *CallLogger
}

// WrapCompleter decorates a completer with resilience.
func WrapCompleter(inner Completer, cfg ResilientConfig) *ResilientCompleter {
	cfg = cfg.normalized()
	return &ResilientCompleter{
		inner:   inner,
		retryer: textutil.NewRetryer(cfg.Retry),
		logger:  cfg.Logger,
	}
}

func (r *ResilientCompleter) Name() string     { return r.inner.Name() }
func (r *ResilientCompleter) Configured() bool { return r.inner.Configured() }

// Complete calls the wrapped completer with retry and logging.
func (r *ResilientCompleter) Complete(ctx context.Context, instruction string) (string, error) {
	if !r.inner.Configured() {
		r.logger.Skipped(r.inner.Name(), "complete", "missing credentials")
		return "", trust.ErrMissingCredentials
	}

	timer := r.logger.StartCall(r.inner.Name(), "complete")

	var attempts int
	out, err := textutil.DoWithResult(ctx, r.retryer, func() (string, error) {
		attempts++
		return r.inner.Complete(ctx, instruction)
	})
	if err != nil {
		timer.WithRetries(attempts - 1).Failure(err)
		return "", err
	}

	timer.WithRetries(attempts - 1).Success()
	return out, nil
}
