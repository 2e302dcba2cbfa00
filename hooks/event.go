package hooks

import (
	"time"

	trust "github.com/ajudaki/trust"
)

// DecisionEvent is fired after every moderation decision.
type DecisionEvent struct {
	Input     trust.ModerationInput
	Decision  trust.ModerationDecision
	TraceID   string
	Timestamp time.Time
}

// BlockedEvent is fired when content is blocked.
type BlockedEvent struct {
	Input     trust.ModerationInput
	Decision  trust.ModerationDecision
	Reasons   []string
	TraceID   string
	Timestamp time.Time
}

// ReviewRequiredEvent is fired when content is routed to human review.
type ReviewRequiredEvent struct {
	Input     trust.ModerationInput
	Decision  trust.ModerationDecision
	Reasons   []string
	TraceID   string
	Timestamp time.Time
}

// SignalSkippedEvent is fired when a safety signal could not be computed
// and the fail-closed sentinel was applied.
type SignalSkippedEvent struct {
	Input      trust.ModerationInput
	Signal     string // "image" or "toxicity"
	SkipReason string
	TraceID    string
	Timestamp  time.Time
}
