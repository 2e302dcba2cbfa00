// Package visibility maps moderation decisions to what each viewer is
// allowed to see. The engine decides the verdict; this package decides
// how the verdict renders for the creator, the public, and moderators.
package visibility

import (
	trust "github.com/ajudaki/trust"
)

// Policy defines how content is displayed while its decision is pending
// or after it was blocked.
type Policy string

const (
	// PolicyHidden hides undecided and blocked content from everyone
	// but moderators.
	PolicyHidden Policy = "hidden"

	// PolicyCreatorOnlyDuringReview shows pending content to its
	// creator, hiding it from the public until approved.
	PolicyCreatorOnlyDuringReview Policy = "creator_only_during_review"

	// PolicyVisibleDuringReview shows pending content to everyone,
	// hiding it only once blocked.
	PolicyVisibleDuringReview Policy = "visible_during_review"
)

// DefaultPolicy is applied when no policy is set.
const DefaultPolicy = PolicyCreatorOnlyDuringReview

// ViewerRole represents who is viewing the content.
type ViewerRole string

const (
	ViewerCreator   ViewerRole = "creator"
	ViewerPublic    ViewerRole = "public"
	ViewerModerator ViewerRole = "moderator"
)

// View is the rendering outcome for one viewer.
type View struct {
	Visible bool   // Whether the viewer sees the content
	Message string // User-facing message when the content is not shown as-is
}

// PendingMessage is shown to creators while their content awaits review.
const PendingMessage = "your post is awaiting review"

// BlockedMessage is shown to creators when their content was rejected.
const BlockedMessage = "your post was rejected for violating community guidelines"

// Resolve decides whether a viewer sees content with the given decision.
// Moderators always see everything.
func Resolve(policy Policy, decision trust.ModerationDecision, viewer ViewerRole) View {
	if policy == "" {
		policy = DefaultPolicy
	}
	if viewer == ViewerModerator {
		return View{Visible: true}
	}

	switch decision.Decision {
	case trust.DecisionApproved:
		return View{Visible: true}

	case trust.DecisionPendingReview:
		switch policy {
		case PolicyVisibleDuringReview:
			return View{Visible: true}
		case PolicyCreatorOnlyDuringReview:
			if viewer == ViewerCreator {
				return View{Visible: true, Message: PendingMessage}
			}
		}
		return View{Message: pendingMessageFor(viewer)}

	case trust.DecisionBlocked:
		return View{Message: blockedMessageFor(viewer)}
	}

	// Unknown decisions are treated as pending, never as approved.
	return View{Message: pendingMessageFor(viewer)}
}

func pendingMessageFor(viewer ViewerRole) string {
	if viewer == ViewerCreator {
		return PendingMessage
	}
	return ""
}

func blockedMessageFor(viewer ViewerRole) string {
	if viewer == ViewerCreator {
		return BlockedMessage
	}
	return ""
}
