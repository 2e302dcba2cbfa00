// Package policy provides the immutable threshold configuration that
// controls the moderation decision tiers. Overrides merge into defaults
// through pure functions; nothing here is shared mutable state.
package policy

import trust "github.com/ajudaki/trust"

// Default decision thresholds.
const (
	DefaultImageBlockThreshold = 0.7
	DefaultTextBlockThreshold  = 0.7
	DefaultReviewThreshold     = 0.3
)

// Config holds the decision-tier thresholds for one moderation call.
// All thresholds are probabilities in [0,1].
type Config struct {
	// Enabled short-circuits the whole engine to approved when false.
	Enabled bool

	// ImageBlockThreshold blocks content when the image signal reaches it.
	ImageBlockThreshold float64

	// TextBlockThreshold blocks content when the toxicity signal reaches it.
	TextBlockThreshold float64

	// ReviewThreshold routes content to human review when the overall
	// score reaches it without crossing a block threshold.
	ReviewThreshold float64
}

// Default returns the default policy configuration.
func Default() Config {
	return Config{
		Enabled:             true,
		ImageBlockThreshold: DefaultImageBlockThreshold,
		TextBlockThreshold:  DefaultTextBlockThreshold,
		ReviewThreshold:     DefaultReviewThreshold,
	}
}

// Override carries optional per-field overrides. A nil field keeps the
// base value.
type Override struct {
	Enabled             *bool
	ImageBlockThreshold *float64
	TextBlockThreshold  *float64
	ReviewThreshold     *float64
}

// With merges an override into the config and returns the result.
// The receiver is not modified.
func (c Config) With(ov *Override) Config {
	if ov == nil {
		return c
	}
	if ov.Enabled != nil {
		c.Enabled = *ov.Enabled
	}
	if ov.ImageBlockThreshold != nil {
		c.ImageBlockThreshold = *ov.ImageBlockThreshold
	}
	if ov.TextBlockThreshold != nil {
		c.TextBlockThreshold = *ov.TextBlockThreshold
	}
	if ov.ReviewThreshold != nil {
		c.ReviewThreshold = *ov.ReviewThreshold
	}
	return c
}

// Thresholds maps a category name to the score at which it contributes a
// blocked reason. Each category is independently tunable.
type Thresholds map[string]float64

// With returns a copy of the thresholds with the overrides applied.
// Unknown override keys are ignored.
func (t Thresholds) With(overrides Thresholds) Thresholds {
	merged := make(Thresholds, len(t))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		if _, ok := merged[k]; ok {
			merged[k] = v
		}
	}
	return merged
}

// DefaultImageThresholds returns the per-category thresholds for the image
// signal. Alcohol is notably higher to tolerate incidental depiction.
func DefaultImageThresholds() Thresholds {
	return Thresholds{
		trust.ImageCategoryNudity:    0.7,
		trust.ImageCategoryWeapon:    0.7,
		trust.ImageCategoryAlcohol:   0.9,
		trust.ImageCategoryDrugs:     0.7,
		trust.ImageCategoryGore:      0.7,
		trust.ImageCategoryOffensive: 0.7,
	}
}

// DefaultTextThresholds returns the per-dimension thresholds for the
// toxicity signal. Threat is the most sensitive dimension, profanity the
// most tolerant.
func DefaultTextThresholds() Thresholds {
	return Thresholds{
		trust.TextCategoryThreat:         0.5,
		trust.TextCategorySevereToxicity: 0.5,
		trust.TextCategoryIdentityAttack: 0.6,
		trust.TextCategoryToxicity:       0.7,
		trust.TextCategoryInsult:         0.7,
		trust.TextCategoryProfanity:      0.9,
	}
}
