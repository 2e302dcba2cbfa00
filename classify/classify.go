// Package classify detects money-solicitation content: direct payment or
// PIX requests, crowdfunding, charity asks, and disclosed payment details.
// Classification is orthogonal to safety scoring and fails open: any
// provider or parse failure degrades to the neutral normal category,
// never to a block or forced review.
package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/providers"
	"github.com/ajudaki/trust/textutil"
)

// MinTextLength is the combined text length below which classification
// short-circuits to normal without a network call.
const MinTextLength = 20

// MaxBodyLength caps the body text embedded in the instruction.
const MaxBodyLength = 2000

// moneyIndicators are strong money-solicitation phrases scanned by the
// network-free pre-filter. Matching is case-insensitive.
var moneyIndicators = []string{
	"pix:",
	"chave pix",
	"doação",
	"doacao",
	"doações",
	"vaquinha",
	"me ajude",
	"me ajudem",
	"preciso de ajuda financeira",
	"conta bancária",
	"conta bancaria",
	"deposite",
	"transferência bancária",
	"transferencia bancaria",
	"donate",
	"gofundme",
	"cashapp",
	"cash app",
	"paypal.me",
	"iban",
}

// QuickMoneyCheck reports whether the text contains a strong
// money-solicitation indicator. It is a cheap, network-free pre-filter
// available to callers independently of the classification path.
func QuickMoneyCheck(title, body string) bool {
	text := strings.ToLower(textutil.Normalize(title + " " + body))
	for _, indicator := range moneyIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

// Classifier labels content as normal or money_request via the
// classification provider.
type Classifier struct {
	provider providers.Completer
	log      *zap.Logger
}

// NewClassifier creates a classifier. A nil provider is treated as
// permanently unconfigured.
func NewClassifier(provider providers.Completer, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{provider: provider, log: log}
}

// Classify labels the content. Combined text under MinTextLength
// characters is trivially normal and triggers no network call. Any
// provider or parse failure returns the neutral default.
func (c *Classifier) Classify(ctx context.Context, title, body string) trust.ClassificationResult {
	combined := textutil.Normalize(title + " " + body)
	if len(combined) < MinTextLength {
		return trust.ClassificationResult{Category: trust.CategoryNormal, Confidence: 1.0}
	}

	if c.provider == nil || !c.provider.Configured() {
		c.log.Warn("classification provider not configured, defaulting to normal")
		return trust.NeutralClassification()
	}

	instruction := buildInstruction(title, textutil.Truncate(textutil.Normalize(body), MaxBodyLength))

	raw, err := c.provider.Complete(ctx, instruction)
	if err != nil {
		c.log.Warn("classification call failed, defaulting to normal",
			zap.String("category", string(trust.GetErrorCategory(err))),
			zap.Error(err),
		)
		return trust.NeutralClassification()
	}

	result, err := ParseResult(raw)
	if err != nil {
		// Expected degradation, not an alarm.
		c.log.Debug("classification response unparseable, defaulting to normal",
			zap.Error(err),
		)
		return trust.NeutralClassification()
	}

	return result
}

// buildInstruction assembles the single natural-language instruction sent
// to the provider.
func buildInstruction(title, body string) string {
	var b strings.Builder
	b.WriteString("Classify the following user-submitted post. Decide whether it solicits money ")
	b.WriteString("(direct payment or PIX requests, crowdfunding, charity asks, disclosed payment details) ")
	b.WriteString("or is a normal post.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Body: %s\n\n", body)
	b.WriteString(`Return strict JSON only, exactly one object of the form `)
	b.WriteString(`{"category":"normal"|"money_request","confidence":0.0-1.0,`)
	b.WriteString(`"subcategory":"crowdfunding"|"personal"|"charity"|"pix_request"|"",`)
	b.WriteString(`"details":"short explanation"}. `)
	b.WriteString("Use subcategory only when category is money_request.")
	return b.String()
}
