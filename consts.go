// Package trust provides a content moderation decision engine that fuses
// image-safety scoring, text-toxicity scoring, and semantic content
// classification into a single explainable verdict: approved, pending
// human review, or blocked.
package trust

// Decision represents the final moderation verdict for a submission.
type Decision string

const (
	DecisionApproved      Decision = "approved"       // Content may be published
	DecisionPendingReview Decision = "pending_review" // Needs human review
	DecisionBlocked       Decision = "blocked"        // Content rejected
)

// ContentCategory is a classification label orthogonal to safety scoring,
// used for routing rather than blocking.
type ContentCategory string

const (
	CategoryNormal       ContentCategory = "normal"
	CategoryMoneyRequest ContentCategory = "money_request"
)

// Subcategory refines a money_request classification.
type Subcategory string

const (
	SubcategoryCrowdfunding Subcategory = "crowdfunding"
	SubcategoryPersonal     Subcategory = "personal"
	SubcategoryCharity      Subcategory = "charity"
	SubcategoryPixRequest   Subcategory = "pix_request"
)

// Image risk categories scored by the image-safety signal.
const (
	ImageCategoryNudity    = "nudity"
	ImageCategoryWeapon    = "weapon"
	ImageCategoryAlcohol   = "alcohol"
	ImageCategoryDrugs     = "drugs"
	ImageCategoryGore      = "gore"
	ImageCategoryOffensive = "offensive"
)

// ImageCategories lists the image risk categories in their fixed order.
var ImageCategories = []string{
	ImageCategoryNudity,
	ImageCategoryWeapon,
	ImageCategoryAlcohol,
	ImageCategoryDrugs,
	ImageCategoryGore,
	ImageCategoryOffensive,
}

// Text risk dimensions scored by the toxicity signal.
const (
	TextCategoryToxicity       = "toxicity"
	TextCategorySevereToxicity = "severe_toxicity"
	TextCategoryInsult         = "insult"
	TextCategoryThreat         = "threat"
	TextCategoryIdentityAttack = "identity_attack"
	TextCategoryProfanity      = "profanity"
)

// TextCategories lists the text risk dimensions in their fixed order.
var TextCategories = []string{
	TextCategoryToxicity,
	TextCategorySevereToxicity,
	TextCategoryInsult,
	TextCategoryThreat,
	TextCategoryIdentityAttack,
	TextCategoryProfanity,
}

// ImageCategoryLabels maps image categories to the human-readable labels
// surfaced to moderators in blocked reasons.
var ImageCategoryLabels = map[string]string{
	ImageCategoryNudity:    "image contains nudity or sexual content",
	ImageCategoryWeapon:    "image contains weapons",
	ImageCategoryAlcohol:   "image contains alcohol",
	ImageCategoryDrugs:     "image contains drugs",
	ImageCategoryGore:      "image contains graphic violence",
	ImageCategoryOffensive: "image contains offensive symbols or gestures",
}

// TextCategoryLabels maps text dimensions to the human-readable labels
// surfaced to moderators in blocked reasons.
var TextCategoryLabels = map[string]string{
	TextCategoryToxicity:       "text is toxic",
	TextCategorySevereToxicity: "text is severely toxic",
	TextCategoryInsult:         "text contains insults",
	TextCategoryThreat:         "text contains threats",
	TextCategoryIdentityAttack: "text attacks an identity group",
	TextCategoryProfanity:      "text contains profanity",
}

// Review reason labels used by the decision tiers.
const (
	ReasonImageNeedsReview = "image requires manual review"
	ReasonTextNeedsReview  = "text may contain inappropriate content"
	ReasonGeneralReview    = "content requires manual review"
)

// SkippedSignalScore is the sentinel score a safety analyzer reports when
// its provider is unreachable, unconfigured, or failing. It sits strictly
// above the default review threshold so uncertainty always degrades to
// mandatory review, never to silent approval.
const SkippedSignalScore = 0.35
