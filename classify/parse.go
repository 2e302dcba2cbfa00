package classify

import (
	"encoding/json"
	"errors"
	"fmt"

	trust "github.com/ajudaki/trust"
)

// ErrNoObject is returned when the response contains no balanced
// object-like substring.
var ErrNoObject = errors.New("classify: no JSON object in response")

// rawResult is the strict object the provider is instructed to return.
type rawResult struct {
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
	Subcategory string  `json:"subcategory"`
	Details     string  `json:"details"`
}

// ParseResult extracts and validates a classification object from the
// provider's free-form response text. It returns an error on failure;
// the neutral fail-open default is applied by the caller, keeping the
// policy visible and independently testable.
func ParseResult(raw string) (trust.ClassificationResult, error) {
	obj, ok := firstBalancedObject(raw)
	if !ok {
		return trust.ClassificationResult{}, ErrNoObject
	}

	var parsed rawResult
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return trust.ClassificationResult{}, fmt.Errorf("classify: invalid object: %w", err)
	}

	category := trust.ContentCategory(parsed.Category)
	switch category {
	case trust.CategoryNormal, trust.CategoryMoneyRequest:
	default:
		return trust.ClassificationResult{}, fmt.Errorf("classify: unknown category %q", parsed.Category)
	}

	result := trust.ClassificationResult{
		Category:   category,
		Confidence: clamp01(parsed.Confidence),
		Details:    parsed.Details,
	}

	switch sub := trust.Subcategory(parsed.Subcategory); sub {
	case trust.SubcategoryCrowdfunding, trust.SubcategoryPersonal,
		trust.SubcategoryCharity, trust.SubcategoryPixRequest:
		result.Subcategory = sub
	case "":
	default:
		// Unknown subcategories are dropped, not fatal.
	}

	return result, nil
}

// firstBalancedObject scans for the first balanced {...} substring,
// ignoring braces inside JSON strings.
func firstBalancedObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
