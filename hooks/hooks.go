// Package hooks provides the hook interface for observing moderation
// decisions. Hook errors are logged by the engine and never affect the
// decision itself.
package hooks

import (
	"context"
)

// Hooks defines the interface for handling moderation events.
type Hooks interface {
	// OnDecision is called after every moderation decision.
	OnDecision(ctx context.Context, e DecisionEvent) error

	// OnBlocked is called when content is blocked.
	OnBlocked(ctx context.Context, e BlockedEvent) error

	// OnReviewRequired is called when content needs human review.
	OnReviewRequired(ctx context.Context, e ReviewRequiredEvent) error

	// OnSignalSkipped is called when a safety signal fell back to the
	// fail-closed sentinel.
	OnSignalSkipped(ctx context.Context, e SignalSkippedEvent) error
}

// NopHooks is a no-op implementation of Hooks.
type NopHooks struct{}

// OnDecision does nothing.
func (NopHooks) OnDecision(ctx context.Context, e DecisionEvent) error { return nil }

// OnBlocked does nothing.
func (NopHooks) OnBlocked(ctx context.Context, e BlockedEvent) error { return nil }

// OnReviewRequired does nothing.
func (NopHooks) OnReviewRequired(ctx context.Context, e ReviewRequiredEvent) error { return nil }

// OnSignalSkipped does nothing.
func (NopHooks) OnSignalSkipped(ctx context.Context, e SignalSkippedEvent) error { return nil }

// Ensure NopHooks implements Hooks.
var _ Hooks = NopHooks{}

// ChainHooks chains multiple Hooks implementations.
type ChainHooks []Hooks

// OnDecision calls all hooks in order.
func (ch ChainHooks) OnDecision(ctx context.Context, e DecisionEvent) error {
	for _, h := range ch {
		if err := h.OnDecision(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnBlocked calls all hooks in order.
func (ch ChainHooks) OnBlocked(ctx context.Context, e BlockedEvent) error {
	for _, h := range ch {
		if err := h.OnBlocked(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnReviewRequired calls all hooks in order.
func (ch ChainHooks) OnReviewRequired(ctx context.Context, e ReviewRequiredEvent) error {
	for _, h := range ch {
		if err := h.OnReviewRequired(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnSignalSkipped calls all hooks in order.
func (ch ChainHooks) OnSignalSkipped(ctx context.Context, e SignalSkippedEvent) error {
	for _, h := range ch {
		if err := h.OnSignalSkipped(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// FuncHooks allows using functions as hooks.
type FuncHooks struct {
	OnDecisionFunc       func(ctx context.Context, e DecisionEvent) error
	OnBlockedFunc        func(ctx context.Context, e BlockedEvent) error
	OnReviewRequiredFunc func(ctx context.Context, e ReviewRequiredEvent) error
	OnSignalSkippedFunc  func(ctx context.Context, e SignalSkippedEvent) error
}

// OnDecision calls the function if set.
func (fh FuncHooks) OnDecision(ctx context.Context, e DecisionEvent) error {
	if fh.OnDecisionFunc != nil {
		return fh.OnDecisionFunc(ctx, e)
	}
	return nil
}

// OnBlocked calls the function if set.
func (fh FuncHooks) OnBlocked(ctx context.Context, e BlockedEvent) error {
	if fh.OnBlockedFunc != nil {
		return fh.OnBlockedFunc(ctx, e)
	}
	return nil
}

// OnReviewRequired calls the function if set.
func (fh FuncHooks) OnReviewRequired(ctx context.Context, e ReviewRequiredEvent) error {
	if fh.OnReviewRequiredFunc != nil {
		return fh.OnReviewRequiredFunc(ctx, e)
	}
	return nil
}

// OnSignalSkipped calls the function if set.
func (fh FuncHooks) OnSignalSkipped(ctx context.Context, e SignalSkippedEvent) error {
	if fh.OnSignalSkippedFunc != nil {
		return fh.OnSignalSkippedFunc(ctx, e)
	}
	return nil
}
