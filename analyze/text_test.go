package analyze

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/providers"
)

type stubTextScorer struct {
	calls      atomic.Int64
	configured bool
	scores     providers.TextScores
	err        error
	lastText   string
	lastLang   string
}

func (s *stubTextScorer) Name() string     { return "stub" }
func (s *stubTextScorer) Configured() bool { return s.configured }

func (s *stubTextScorer) ScoreText(ctx context.Context, text, lang string) (providers.TextScores, error) {
	s.calls.Add(1)
	s.lastText = text
	s.lastLang = lang
	if s.err != nil {
		return nil, s.err
	}
	return s.scores, nil
}

func TestAnalyzeTextShortTextSkipsCall(t *testing.T) {
	s := &stubTextScorer{configured: true}
	a := NewTextAnalyzer(s, nil, nil)

	tests := []struct {
		name  string
		title string
		body  string
	}{
		{"empty", "", ""},
		{"whitespace only", "  ", "\n\t"},
		{"two characters", "ok", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeText(context.Background(), tt.title, tt.body)
			if !got.Safe {
				t.Error("Safe = false, want true for trivially short text")
			}
			if got.Score != 0 {
				t.Errorf("Score = %v, want 0", got.Score)
			}
		})
	}

	if s.calls.Load() != 0 {
		t.Errorf("provider calls = %d, want 0 for short text", s.calls.Load())
	}
}

func TestAnalyzeTextUnconfigured(t *testing.T) {
	a := NewTextAnalyzer(&stubTextScorer{configured: false}, nil, nil)

	got := a.AnalyzeText(context.Background(), "hello", "this is a normal message")
	if !got.Skipped {
		t.Fatal("Skipped = false, want true")
	}
	if got.Score != trust.SkippedSignalScore {
		t.Errorf("Score = %v, want %v", got.Score, trust.SkippedSignalScore)
	}
	if len(got.BlockedReasons) != 0 {
		t.Errorf("BlockedReasons = %v, want empty", got.BlockedReasons)
	}
}

func TestAnalyzeTextProviderError(t *testing.T) {
	s := &stubTextScorer{configured: true, err: errors.New("rate limited")}
	a := NewTextAnalyzer(s, nil, nil)

	got := a.AnalyzeText(context.Background(), "hello", "this is a normal message")
	if !got.Skipped || got.Score != trust.SkippedSignalScore {
		t.Errorf("got %+v, want skipped sentinel", got)
	}
	if !strings.Contains(got.SkipReason, "rate limited") {
		t.Errorf("SkipReason = %q, want provider error included", got.SkipReason)
	}
}

func TestAnalyzeTextThresholds(t *testing.T) {
	tests := []struct {
		name       string
		scores     providers.TextScores
		wantSafe   bool
		wantReason string
	}{
		{
			name:     "all low",
			scores:   providers.TextScores{trust.TextCategoryToxicity: 0.2},
			wantSafe: true,
		},
		{
			name:       "threat is most sensitive",
			scores:     providers.TextScores{trust.TextCategoryThreat: 0.5},
			wantSafe:   false,
			wantReason: trust.TextCategoryLabels[trust.TextCategoryThreat],
		},
		{
			name:     "profanity is most tolerant",
			scores:   providers.TextScores{trust.TextCategoryProfanity: 0.85},
			wantSafe: true,
		},
		{
			name:       "profanity over 0.9 blocks",
			scores:     providers.TextScores{trust.TextCategoryProfanity: 0.91},
			wantSafe:   false,
			wantReason: trust.TextCategoryLabels[trust.TextCategoryProfanity],
		},
		{
			name:       "identity attack at 0.6",
			scores:     providers.TextScores{trust.TextCategoryIdentityAttack: 0.6},
			wantSafe:   false,
			wantReason: trust.TextCategoryLabels[trust.TextCategoryIdentityAttack],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stubTextScorer{configured: true, scores: tt.scores}
			a := NewTextAnalyzer(s, nil, nil)

			got := a.AnalyzeText(context.Background(), "title", "some body text to score")
			if got.Safe != tt.wantSafe {
				t.Errorf("Safe = %v, want %v", got.Safe, tt.wantSafe)
			}
			if tt.wantReason != "" {
				if len(got.BlockedReasons) != 1 || got.BlockedReasons[0] != tt.wantReason {
					t.Errorf("BlockedReasons = %v, want [%q]", got.BlockedReasons, tt.wantReason)
				}
			}
		})
	}
}

func TestAnalyzeTextStripsMarkup(t *testing.T) {
	s := &stubTextScorer{configured: true, scores: providers.TextScores{}}
	a := NewTextAnalyzer(s, nil, nil)

	a.AnalyzeText(context.Background(), "title", "<p>some <b>bold</b> text</p>")
	if strings.Contains(s.lastText, "<") {
		t.Errorf("provider received %q, want markup stripped", s.lastText)
	}
}

func TestAnalyzeTextLanguageOption(t *testing.T) {
	s := &stubTextScorer{configured: true, scores: providers.TextScores{}}
	a := NewTextAnalyzer(s, nil, nil, WithLanguage("en"))

	a.AnalyzeText(context.Background(), "title", "some body text to score")
	if s.lastLang != "en" {
		t.Errorf("language hint = %q, want %q", s.lastLang, "en")
	}
}

func TestAnalyzeTextTruncates(t *testing.T) {
	s := &stubTextScorer{configured: true, scores: providers.TextScores{}}
	a := NewTextAnalyzer(s, nil, nil, WithMaxTextLength(50))

	a.AnalyzeText(context.Background(), "title", strings.Repeat("long body ", 50))
	if len(s.lastText) > 50 {
		t.Errorf("provider received %d bytes, want at most 50", len(s.lastText))
	}
}
