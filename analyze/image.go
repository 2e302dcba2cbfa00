// Package analyze implements the image-safety and text-toxicity signal
// analyzers. Both fail closed: when their provider is unconfigured or
// failing they report the skipped sentinel, which forces human review,
// never silent approval.
package analyze

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/policy"
	"github.com/ajudaki/trust/providers"
)

// ImageAnalyzer scores image references against the fixed set of visual
// risk categories.
type ImageAnalyzer struct {
	provider   providers.ImageScorer
	thresholds policy.Thresholds
	log        *zap.Logger
}

// NewImageAnalyzer creates an image analyzer. A nil provider is treated
// as permanently unconfigured.
func NewImageAnalyzer(provider providers.ImageScorer, thresholds policy.Thresholds, log *zap.Logger) *ImageAnalyzer {
	if thresholds == nil {
		thresholds = policy.DefaultImageThresholds()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageAnalyzer{provider: provider, thresholds: thresholds, log: log}
}

// AnalyzeImage scores a single image reference.
func (a *ImageAnalyzer) AnalyzeImage(ctx context.Context, ref trust.ImageRef) trust.SignalResult {
	if a.provider == nil || !a.provider.Configured() {
		a.log.Warn("image safety provider not configured, forcing review")
		return trust.SkippedSignal("image safety provider not configured")
	}

	raw, err := a.provider.ScoreImage(ctx, string(ref))
	if err != nil {
		a.log.Warn("image safety call failed, forcing review",
			zap.String("category", string(trust.GetErrorCategory(err))),
			zap.Error(err),
		)
		return trust.SkippedSignal("image safety provider error: " + err.Error())
	}

	categories := deriveImageCategories(raw)
	reasons := blockedReasons(categories, a.thresholds, trust.ImageCategories, trust.ImageCategoryLabels)

	return trust.SignalResult{
		Safe:           len(reasons) == 0,
		Score:          categories.Max(),
		Categories:     categories,
		BlockedReasons: reasons,
	}
}

// AnalyzeImages scores every reference concurrently and combines the
// results: the worst image wins per category, blocked reasons are the
// deduplicated union, and any single skip makes the whole batch uncertain.
func (a *ImageAnalyzer) AnalyzeImages(ctx context.Context, refs []trust.ImageRef) trust.SignalResult {
	if len(refs) == 0 {
		return trust.SignalResult{Safe: true, Categories: trust.CategoryScores{}}
	}
	if len(refs) == 1 {
		return a.AnalyzeImage(ctx, refs[0])
	}

	results := make([]trust.SignalResult, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			// AnalyzeImage degrades failures to data, so the group
			// always waits for every branch.
			results[i] = a.AnalyzeImage(gctx, ref)
			return nil
		})
	}
	g.Wait()

	return combineImageResults(results)
}

// deriveImageCategories flattens the provider's probability tree into the
// engine's fixed category set.
func deriveImageCategories(raw providers.ImageScores) trust.CategoryScores {
	// Merely-suggestive content is down-weighted relative to explicit
	// content; a rude gesture relative to ideological hate symbols.
	nudity := maxOf(
		raw.Nudity.SexualActivity,
		raw.Nudity.SexualDisplay,
		raw.Nudity.Erotica,
		0.7*raw.Nudity.VerySuggestive,
	)
	offensive := maxOf(
		raw.Offensive.Hate,
		raw.Offensive.Nazi,
		raw.Offensive.Confederate,
		raw.Offensive.Supremacist,
		raw.Offensive.Terrorist,
		0.5*raw.Offensive.MiddleFinger,
	)

	return trust.CategoryScores{
		trust.ImageCategoryNudity:    nudity,
		trust.ImageCategoryWeapon:    raw.Weapon,
		trust.ImageCategoryAlcohol:   raw.Alcohol,
		trust.ImageCategoryDrugs:     raw.Drugs,
		trust.ImageCategoryGore:      raw.Gore,
		trust.ImageCategoryOffensive: offensive,
	}
}

// combineImageResults merges per-image results into one batch signal.
func combineImageResults(results []trust.SignalResult) trust.SignalResult {
	combined := trust.SignalResult{
		Safe:       true,
		Categories: trust.CategoryScores{},
	}

	seen := make(map[string]bool)
	var skipReasons []string

	for _, r := range results {
		for cat, score := range r.Categories {
			if score > combined.Categories[cat] {
				combined.Categories[cat] = score
			}
		}
		if r.Score > combined.Score {
			combined.Score = r.Score
		}
		for _, reason := range r.BlockedReasons {
			if !seen[reason] {
				seen[reason] = true
				combined.BlockedReasons = append(combined.BlockedReasons, reason)
			}
		}
		if r.Skipped {
			combined.Skipped = true
			if r.SkipReason != "" {
				skipReasons = append(skipReasons, r.SkipReason)
			}
		}
	}

	if combined.Skipped {
		sort.Strings(skipReasons)
		combined.SkipReason = dedupJoin(skipReasons)
	}
	combined.Safe = len(combined.BlockedReasons) == 0 && !combined.Skipped

	return combined
}

// blockedReasons collects the labels of categories at or above their own
// threshold, in the fixed category order.
func blockedReasons(scores trust.CategoryScores, thresholds policy.Thresholds, order []string, labels map[string]string) []string {
	var reasons []string
	for _, cat := range order {
		threshold, ok := thresholds[cat]
		if !ok {
			continue
		}
		if scores[cat] >= threshold {
			reasons = append(reasons, labels[cat])
		}
	}
	return reasons
}

func maxOf(values ...float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

func dedupJoin(parts []string) string {
	var out string
	seen := make(map[string]bool)
	for _, p := range parts {
		if seen[p] {
			continue
		}
		seen[p] = true
		if out != "" {
			out += "; "
		}
		out += p
	}
	return out
}
