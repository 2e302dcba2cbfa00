package analyze

import (
	"context"

	"go.uber.org/zap"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/policy"
	"github.com/ajudaki/trust/providers"
	"github.com/ajudaki/trust/textutil"
)

// MinTextLength is the combined text length below which the toxicity
// analyzer short-circuits to a clean result without a network call.
const MinTextLength = 3

// DefaultMaxTextLength caps the text sent to the toxicity provider.
const DefaultMaxTextLength = 20480

// DefaultLanguage is the language hint sent to the toxicity provider.
const DefaultLanguage = "pt"

// TextAnalyzer scores combined title+body text against the fixed set of
// toxicity dimensions.
type TextAnalyzer struct {
	provider   providers.TextScorer
	thresholds policy.Thresholds
	language   string
	maxLen     int
	log        *zap.Logger
}

// TextAnalyzerOption customizes a TextAnalyzer.
type TextAnalyzerOption func(*TextAnalyzer)

// WithLanguage sets the language hint sent to the provider.
func WithLanguage(lang string) TextAnalyzerOption {
	return func(a *TextAnalyzer) { a.language = lang }
}

// WithMaxTextLength caps the text length sent to the provider.
func WithMaxTextLength(n int) TextAnalyzerOption {
	return func(a *TextAnalyzer) { a.maxLen = n }
}

// NewTextAnalyzer creates a text analyzer. A nil provider is treated as
// permanently unconfigured.
func NewTextAnalyzer(provider providers.TextScorer, thresholds policy.Thresholds, log *zap.Logger, opts ...TextAnalyzerOption) *TextAnalyzer {
	if thresholds == nil {
		thresholds = policy.DefaultTextThresholds()
	}
	if log == nil {
		log = zap.NewNop()
	}
	a := &TextAnalyzer{
		provider:   provider,
		thresholds: thresholds,
		language:   DefaultLanguage,
		maxLen:     DefaultMaxTextLength,
		log:        log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeText strips markup from title+body, truncates to the provider
// limit, and scores the result. Text under MinTextLength characters is
// trivially clean and triggers no network call.
func (a *TextAnalyzer) AnalyzeText(ctx context.Context, title, body string) trust.SignalResult {
	text := textutil.Normalize(title + " " + body)
	if len(text) < MinTextLength {
		return trust.SignalResult{Safe: true, Categories: trust.CategoryScores{}}
	}
	text = textutil.Truncate(text, a.maxLen)

	if a.provider == nil || !a.provider.Configured() {
		a.log.Warn("toxicity provider not configured, forcing review")
		return trust.SkippedSignal("toxicity provider not configured")
	}

	raw, err := a.provider.ScoreText(ctx, text, a.language)
	if err != nil {
		a.log.Warn("toxicity call failed, forcing review",
			zap.String("category", string(trust.GetErrorCategory(err))),
			zap.Error(err),
		)
		return trust.SkippedSignal("toxicity provider error: " + err.Error())
	}

	categories := make(trust.CategoryScores, len(trust.TextCategories))
	for _, cat := range trust.TextCategories {
		categories[cat] = raw[cat]
	}
	reasons := blockedReasons(categories, a.thresholds, trust.TextCategories, trust.TextCategoryLabels)

	return trust.SignalResult{
		Safe:           len(reasons) == 0,
		Score:          categories.Max(),
		Categories:     categories,
		BlockedReasons: reasons,
	}
}
