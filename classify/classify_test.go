package classify

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	trust "github.com/ajudaki/trust"
)

type stubCompleter struct {
	calls      atomic.Int64
	configured bool
	response   string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Name() string     { return "stub" }
func (s *stubCompleter) Configured() bool { return s.configured }

func (s *stubCompleter) Complete(ctx context.Context, instruction string) (string, error) {
	s.calls.Add(1)
	s.lastPrompt = instruction
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestQuickMoneyCheck(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  bool
	}{
		{"pix key", "Ajudem", "minha chave pix é 123.456.789-00", true},
		{"pix prefix", "", "pix: 123.456.789-00", true},
		{"donation with accent", "", "aceito qualquer doação", true},
		{"donation without accent", "", "aceito qualquer doacao", true},
		{"crowdfunding", "", "criei uma vaquinha para o tratamento", true},
		{"gofundme link", "", "please donate at gofundme.com/help-me", true},
		{"uppercase indicator", "", "DEPOSITE na minha conta", true},
		{"indicator in title", "me ajudem por favor", "", true},
		{"plain post", "garage sale", "selling some old furniture this weekend", false},
		{"empty", "", "", false},
		{"markup around indicator", "", "<b>chave pix</b> abaixo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuickMoneyCheck(tt.title, tt.body); got != tt.want {
				t.Errorf("QuickMoneyCheck(%q, %q) = %v, want %v", tt.title, tt.body, got, tt.want)
			}
		})
	}
}

func TestClassifyShortTextSkipsCall(t *testing.T) {
	s := &stubCompleter{configured: true}
	c := NewClassifier(s, nil)

	got := c.Classify(context.Background(), "hi", "short text")
	if got.Category != trust.CategoryNormal {
		t.Errorf("Category = %v, want %v", got.Category, trust.CategoryNormal)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
	if s.calls.Load() != 0 {
		t.Errorf("provider calls = %d, want 0 for short text", s.calls.Load())
	}
}

func TestClassifyUnconfiguredFailsOpen(t *testing.T) {
	c := NewClassifier(&stubCompleter{configured: false}, nil)

	got := c.Classify(context.Background(), "Ajudem", "preciso de doação, pix: 123.456.789-00")
	want := trust.NeutralClassification()
	if got != want {
		t.Errorf("Classify() = %+v, want neutral %+v", got, want)
	}
}

func TestClassifyNilProviderFailsOpen(t *testing.T) {
	c := NewClassifier(nil, nil)

	got := c.Classify(context.Background(), "Ajudem", "preciso de doação, pix: 123.456.789-00")
	if got != trust.NeutralClassification() {
		t.Errorf("Classify() = %+v, want neutral default", got)
	}
}

func TestClassifyProviderErrorFailsOpen(t *testing.T) {
	s := &stubCompleter{configured: true, err: errors.New("upstream timeout")}
	c := NewClassifier(s, nil)

	got := c.Classify(context.Background(), "Ajudem", "preciso de doação, pix: 123.456.789-00")
	if got != trust.NeutralClassification() {
		t.Errorf("Classify() = %+v, want neutral default", got)
	}
}

func TestClassifyUnparseableFailsOpen(t *testing.T) {
	s := &stubCompleter{configured: true, response: "I am not sure about this one."}
	c := NewClassifier(s, nil)

	got := c.Classify(context.Background(), "Ajudem", "preciso de doação, pix: 123.456.789-00")
	if got != trust.NeutralClassification() {
		t.Errorf("Classify() = %+v, want neutral default", got)
	}
}

func TestClassifyMoneyRequest(t *testing.T) {
	s := &stubCompleter{
		configured: true,
		response:   `{"category":"money_request","confidence":0.92,"subcategory":"pix_request","details":"asks for PIX transfer"}`,
	}
	c := NewClassifier(s, nil)

	got := c.Classify(context.Background(), "Ajudem", "preciso de doação, pix: 123.456.789-00")
	if got.Category != trust.CategoryMoneyRequest {
		t.Errorf("Category = %v, want %v", got.Category, trust.CategoryMoneyRequest)
	}
	if got.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", got.Confidence)
	}
	if got.Subcategory != trust.SubcategoryPixRequest {
		t.Errorf("Subcategory = %v, want %v", got.Subcategory, trust.SubcategoryPixRequest)
	}
}

func TestClassifyInstructionContainsContent(t *testing.T) {
	s := &stubCompleter{configured: true, response: `{"category":"normal","confidence":0.9}`}
	c := NewClassifier(s, nil)

	c.Classify(context.Background(), "my title", "the body of the post goes here")
	if !strings.Contains(s.lastPrompt, "my title") {
		t.Error("instruction does not contain the title")
	}
	if !strings.Contains(s.lastPrompt, "the body of the post goes here") {
		t.Error("instruction does not contain the body")
	}
}

func TestClassifyTruncatesBody(t *testing.T) {
	s := &stubCompleter{configured: true, response: `{"category":"normal","confidence":0.9}`}
	c := NewClassifier(s, nil)

	marker := strings.Repeat("x", 100)
	body := strings.Repeat("padding words here ", 200) + marker
	c.Classify(context.Background(), "title", body)

	if strings.Contains(s.lastPrompt, marker) {
		t.Error("instruction contains text past the body cap, want it truncated")
	}
}
