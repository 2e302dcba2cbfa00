package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/policy"
)

// DefaultBatchConcurrency bounds how many submissions a batch moderates
// at once.
const DefaultBatchConcurrency = 4

// BatchInput is a set of submissions to moderate together.
type BatchInput struct {
	Items []trust.ModerationInput

	// Override applies to every item in the batch.
	Override *policy.Override

	// Concurrency bounds parallel moderation. Zero means
	// DefaultBatchConcurrency.
	Concurrency int
}

// BatchResult is the outcome of a batch moderation.
type BatchResult struct {
	// Decisions holds one decision per input, in input order.
	Decisions []trust.ModerationDecision

	// OverallDecision is the strictest decision across all items.
	OverallDecision trust.Decision

	// BlockedCount and ReviewCount summarize the batch.
	BlockedCount int
	ReviewCount  int
}

// ModerateBatch moderates every item with bounded concurrency. Like
// Moderate, it never returns an error; each item's failures are degraded
// to data inside its own decision.
func (e *Engine) ModerateBatch(ctx context.Context, input BatchInput) BatchResult {
	decisions := make([]trust.ModerationDecision, len(input.Items))

	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for i, item := range input.Items {
		i, item := i, item
		g.Go(func() error {
			decisions[i] = e.Moderate(ctx, item, input.Override)
			return nil
		})
	}
	g.Wait()

	result := BatchResult{
		Decisions:       decisions,
		OverallDecision: trust.DecisionApproved,
	}
	for _, d := range decisions {
		switch d.Decision {
		case trust.DecisionBlocked:
			result.BlockedCount++
		case trust.DecisionPendingReview:
			result.ReviewCount++
		}
		if stricter(d.Decision, result.OverallDecision) {
			result.OverallDecision = d.Decision
		}
	}
	return result
}

var decisionRank = map[trust.Decision]int{
	trust.DecisionApproved:      0,
	trust.DecisionPendingReview: 1,
	trust.DecisionBlocked:       2,
}

func stricter(a, b trust.Decision) bool {
	return decisionRank[a] > decisionRank[b]
}
