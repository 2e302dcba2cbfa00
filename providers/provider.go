// Package providers defines the interfaces and shared configuration for
// the three external signal providers: image safety, text toxicity, and
// content classification.
package providers

import (
	"context"
)

// ImageScores is the raw per-detector probability tree returned by the
// image-safety provider.
type ImageScores struct {
	Nudity    NudityScores    `json:"nudity"`
	Weapon    float64         `json:"weapon"`
	Alcohol   float64         `json:"alcohol"`
	Drugs     float64         `json:"drugs"`
	Gore      float64         `json:"gore"`
	Offensive OffensiveScores `json:"offensive"`
}

// NudityScores breaks nudity detection into explicitness levels.
type NudityScores struct {
	SexualActivity float64 `json:"sexual_activity"`
	SexualDisplay  float64 `json:"sexual_display"`
	Erotica        float64 `json:"erotica"`
	VerySuggestive float64 `json:"very_suggestive"`
}

// OffensiveScores breaks offensive-content detection into symbol classes.
type OffensiveScores struct {
	Hate         float64 `json:"hate"` // General hate probability
	Nazi         float64 `json:"nazi"`
	Confederate  float64 `json:"confederate"`
	Supremacist  float64 `json:"supremacist"`
	Terrorist    float64 `json:"terrorist"`
	MiddleFinger float64 `json:"middle_finger"`
}

// TextScores maps a toxicity dimension name to its summary score.
type TextScores map[string]float64

// ImageScorer scores a single image reference against the fixed detector
// bundle.
type ImageScorer interface {
	// Name returns the provider name.
	Name() string

	// Configured reports whether credentials are present. Absence is an
	// expected runtime state, checked per call, never a startup failure.
	Configured() bool

	// ScoreImage requests the detector bundle for one image reference.
	ScoreImage(ctx context.Context, ref string) (ImageScores, error)
}

// TextScorer scores text against the six toxicity dimensions.
type TextScorer interface {
	Name() string
	Configured() bool

	// ScoreText requests per-dimension summary scores for the text.
	// lang is a language hint such as "pt" or "en".
	ScoreText(ctx context.Context, text, lang string) (TextScores, error)
}

// Completer sends one free-form natural-language instruction to the
// classification provider and returns the raw response text. The response
// has no structured contract; callers must defensively parse it.
type Completer interface {
	Name() string
	Configured() bool

	Complete(ctx context.Context, instruction string) (string, error)
}
