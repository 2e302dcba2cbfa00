package trust

// ImageRef is a reference to one submitted image, typically a URL.
type ImageRef string

// ModerationInput is the content to be moderated, constructed per request
// by the caller from a user submission.
type ModerationInput struct {
	Title   string     `json:"title"`              // Submission title
	Body    string     `json:"body"`               // Body text, may contain markup
	Images  []ImageRef `json:"images,omitempty"`   // Ordered image references, possibly empty
	TraceID string     `json:"trace_id,omitempty"` // Request trace ID; generated when empty
}

// CategoryScores maps a fixed set of category names to probabilities in [0,1].
type CategoryScores map[string]float64

// Max returns the highest score across all categories.
func (c CategoryScores) Max() float64 {
	var max float64
	for _, v := range c {
		if v > max {
			max = v
		}
	}
	return max
}

// SignalResult is the outcome of one safety signal (image or text).
type SignalResult struct {
	Safe           bool           `json:"safe"`                  // No blocked reasons and no skips
	Score          float64        `json:"score"`                 // Max across the category set
	Categories     CategoryScores `json:"categories"`            // Per-category probabilities
	BlockedReasons []string       `json:"blocked_reasons"`       // Labels for categories at/above threshold
	Skipped        bool           `json:"skipped"`               // Signal could not be computed
	SkipReason     string         `json:"skip_reason,omitempty"` // Why the signal was skipped
}

// ClassificationResult is the outcome of semantic content classification.
type ClassificationResult struct {
	Category    ContentCategory `json:"category"`
	Confidence  float64         `json:"confidence"`
	Subcategory Subcategory     `json:"subcategory,omitempty"`
	Details     string          `json:"details,omitempty"`
}

// ModerationDecision is the engine's final output for one submission.
type ModerationDecision struct {
	Decision         Decision             `json:"decision"`
	OverallScore     float64              `json:"overall_score"`
	ContentCategory  ContentCategory      `json:"content_category"`
	ImageResult      *SignalResult        `json:"image_result,omitempty"` // Nil when input had no images
	ToxicityResult   SignalResult         `json:"toxicity_result"`
	Classification   ClassificationResult `json:"classification_result"`
	BlockedReasons   []string             `json:"blocked_reasons"`
	ReviewReasons    []string             `json:"review_reasons,omitempty"`
	ProcessingTimeMs int64                `json:"processing_time_ms"`
	TraceID          string               `json:"trace_id,omitempty"`
}

// Blocked reports whether the decision rejects the content.
func (d ModerationDecision) Blocked() bool {
	return d.Decision == DecisionBlocked
}

// NeedsReview reports whether the decision routes the content to a human.
func (d ModerationDecision) NeedsReview() bool {
	return d.Decision == DecisionPendingReview
}

// SkippedSignal returns a SignalResult carrying the fail-closed sentinel.
// Uncertainty degrades to mandatory review, never to silent approval.
func SkippedSignal(reason string) SignalResult {
	return SignalResult{
		Safe:       false,
		Score:      SkippedSignalScore,
		Categories: CategoryScores{},
		Skipped:    true,
		SkipReason: reason,
	}
}

// NeutralClassification returns the permissive default applied when the
// classifier is unconfigured, unreachable, or returns an unparseable
// response. Classification failure never blocks or forces review.
func NeutralClassification() ClassificationResult {
	return ClassificationResult{
		Category:   CategoryNormal,
		Confidence: 0.5,
	}
}
