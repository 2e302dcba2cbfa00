// Package engine implements the moderation orchestrator: it fans out to
// the image-safety, text-toxicity and content-classification analyzers,
// fuses their signals against the active policy and emits one decision.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/analyze"
	"github.com/ajudaki/trust/classify"
	"github.com/ajudaki/trust/hooks"
	"github.com/ajudaki/trust/policy"
	"github.com/ajudaki/trust/providers"
)

// Options configures a moderation Engine. Zero-value fields fall back to
// sensible defaults; nil providers leave the corresponding analyzer
// permanently unconfigured, which the analyzers degrade per their own
// policy.
type Options struct {
	// Policy holds the decision thresholds. Zero value means policy.Default().
	Policy *policy.Config

	// ImageThresholds and TextThresholds tune per-category blocking. Nil
	// means the package defaults.
	ImageThresholds policy.Thresholds
	TextThresholds  policy.Thresholds

	// ImageScorer, TextScorer and Completer are the three signal providers.
	ImageScorer providers.ImageScorer
	TextScorer  providers.TextScorer
	Completer   providers.Completer

	// Hooks receives decision events. Nil means hooks.NopHooks.
	Hooks hooks.Hooks

	// Logger is used for structured diagnostics. Nil means zap.NewNop().
	Logger *zap.Logger

	// TextOptions are passed through to the toxicity analyzer.
	TextOptions []analyze.TextAnalyzerOption
}

// Engine is the moderation orchestrator. It is safe for concurrent use.
type Engine struct {
	policy     policy.Config
	image      *analyze.ImageAnalyzer
	text       *analyze.TextAnalyzer
	classifier *classify.Classifier
	hooks      hooks.Hooks
	log        *zap.Logger
}

// New creates a moderation engine from the given options.
func New(opts Options) *Engine {
	cfg := policy.Default()
	if opts.Policy != nil {
		cfg = *opts.Policy
	}
	h := opts.Hooks
	if h == nil {
		h = hooks.NopHooks{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		policy:     cfg,
		image:      analyze.NewImageAnalyzer(opts.ImageScorer, opts.ImageThresholds, log),
		text:       analyze.NewTextAnalyzer(opts.TextScorer, opts.TextThresholds, log, opts.TextOptions...),
		classifier: classify.NewClassifier(opts.Completer, log),
		hooks:      h,
		log:        log,
	}
}

// Moderate runs the full moderation pipeline for one submission. It never
// returns an error: every provider failure is degraded to data inside the
// analyzers, so the decision is always usable.
func (e *Engine) Moderate(ctx context.Context, input trust.ModerationInput, override *policy.Override) trust.ModerationDecision {
	start := time.Now()
	cfg := e.policy.With(override)

	traceID := input.TraceID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	if !cfg.Enabled {
		decision := trust.ModerationDecision{
			Decision:        trust.DecisionApproved,
			ContentCategory: trust.CategoryNormal,
			ToxicityResult:  trust.SignalResult{Safe: true, Categories: trust.CategoryScores{}},
			Classification:  trust.ClassificationResult{Category: trust.CategoryNormal, Confidence: 1.0},
			TraceID:         traceID,
		}
		decision.ProcessingTimeMs = time.Since(start).Milliseconds()
		e.fireHooks(ctx, input, decision)
		return decision
	}

	var (
		imageResult    *trust.SignalResult
		toxicityResult trust.SignalResult
		classification trust.ClassificationResult
	)

	// Each branch converts its own failures into data, so the group
	// always waits for all three and Wait never reports an error.
	g, gctx := errgroup.WithContext(ctx)
	if len(input.Images) > 0 {
		g.Go(func() error {
			r := e.image.AnalyzeImages(gctx, input.Images)
			imageResult = &r
			return nil
		})
	}
	g.Go(func() error {
		toxicityResult = e.text.AnalyzeText(gctx, input.Title, input.Body)
		return nil
	})
	g.Go(func() error {
		classification = e.classifier.Classify(gctx, input.Title, input.Body)
		return nil
	})
	g.Wait()

	decision := e.fuse(cfg, imageResult, toxicityResult, classification)
	decision.TraceID = traceID
	decision.ProcessingTimeMs = time.Since(start).Milliseconds()

	e.log.Info("moderation decision",
		zap.String("trace_id", traceID),
		zap.String("decision", string(decision.Decision)),
		zap.Float64("overall_score", decision.OverallScore),
		zap.String("content_category", string(decision.ContentCategory)),
		zap.Int64("processing_time_ms", decision.ProcessingTimeMs),
	)

	e.fireHooks(ctx, input, decision)
	return decision
}

// ModerateText moderates bare text with no images.
func (e *Engine) ModerateText(ctx context.Context, text string) trust.ModerationDecision {
	return e.Moderate(ctx, trust.ModerationInput{Body: text}, nil)
}

// ModerateImage moderates a single image reference with no text.
func (e *Engine) ModerateImage(ctx context.Context, ref trust.ImageRef) trust.ModerationDecision {
	return e.Moderate(ctx, trust.ModerationInput{Images: []trust.ImageRef{ref}}, nil)
}

// fuse combines the three signals into a final decision. It is a pure
// function of its inputs.
func (e *Engine) fuse(cfg policy.Config, image *trust.SignalResult, toxicity trust.SignalResult, classification trust.ClassificationResult) trust.ModerationDecision {
	imageScore := 0.0
	if image != nil {
		imageScore = image.Score
	}
	overall := imageScore
	if toxicity.Score > overall {
		overall = toxicity.Score
	}

	// A signal's reasons surface only when that signal's own score
	// crosses its own block threshold.
	var blocked []string
	if image != nil && image.Score >= cfg.ImageBlockThreshold {
		blocked = append(blocked, image.BlockedReasons...)
	}
	if toxicity.Score >= cfg.TextBlockThreshold {
		blocked = append(blocked, toxicity.BlockedReasons...)
	}
	blocked = dedup(blocked)

	// Band reasons only apply to signals that actually scored; a skipped
	// signal carries the sentinel and falls through to the catch-all.
	var review []string
	if image != nil && !image.Skipped && imageScore >= cfg.ReviewThreshold && imageScore < cfg.ImageBlockThreshold {
		review = append(review, trust.ReasonImageNeedsReview)
	}
	if !toxicity.Skipped && toxicity.Score >= cfg.ReviewThreshold && toxicity.Score < cfg.TextBlockThreshold {
		review = append(review, trust.ReasonTextNeedsReview)
	}
	// Covers the skipped-sentinel case: the overall score demands review
	// but no category-specific reason explains it.
	if len(review) == 0 && overall >= cfg.ReviewThreshold {
		review = append(review, trust.ReasonGeneralReview)
	}

	verdict := trust.DecisionApproved
	switch {
	case len(blocked) > 0:
		verdict = trust.DecisionBlocked
	case len(review) > 0 || overall >= cfg.ReviewThreshold:
		verdict = trust.DecisionPendingReview
	}

	return trust.ModerationDecision{
		Decision:        verdict,
		OverallScore:    overall,
		ContentCategory: classification.Category,
		ImageResult:     image,
		ToxicityResult:  toxicity,
		Classification:  classification,
		BlockedReasons:  blocked,
		ReviewReasons:   review,
	}
}

// fireHooks dispatches decision events. Hook errors are logged and never
// alter the decision.
func (e *Engine) fireHooks(ctx context.Context, input trust.ModerationInput, decision trust.ModerationDecision) {
	now := time.Now()

	if decision.ImageResult != nil && decision.ImageResult.Skipped {
		e.emit("signal skipped", e.hooks.OnSignalSkipped(ctx, hooks.SignalSkippedEvent{
			Input:      input,
			Signal:     "image",
			SkipReason: decision.ImageResult.SkipReason,
			TraceID:    decision.TraceID,
			Timestamp:  now,
		}))
	}
	if decision.ToxicityResult.Skipped {
		e.emit("signal skipped", e.hooks.OnSignalSkipped(ctx, hooks.SignalSkippedEvent{
			Input:      input,
			Signal:     "toxicity",
			SkipReason: decision.ToxicityResult.SkipReason,
			TraceID:    decision.TraceID,
			Timestamp:  now,
		}))
	}

	switch decision.Decision {
	case trust.DecisionBlocked:
		e.emit("blocked", e.hooks.OnBlocked(ctx, hooks.BlockedEvent{
			Input:     input,
			Decision:  decision,
			Reasons:   decision.BlockedReasons,
			TraceID:   decision.TraceID,
			Timestamp: now,
		}))
	case trust.DecisionPendingReview:
		e.emit("review required", e.hooks.OnReviewRequired(ctx, hooks.ReviewRequiredEvent{
			Input:     input,
			Decision:  decision,
			Reasons:   decision.ReviewReasons,
			TraceID:   decision.TraceID,
			Timestamp: now,
		}))
	}

	e.emit("decision", e.hooks.OnDecision(ctx, hooks.DecisionEvent{
		Input:     input,
		Decision:  decision,
		TraceID:   decision.TraceID,
		Timestamp: now,
	}))
}

func (e *Engine) emit(event string, err error) {
	if err != nil {
		e.log.Error("hook failed", zap.String("event", event), zap.Error(err))
	}
}

func dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
