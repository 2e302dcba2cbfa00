package textutil

import "testing"

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"html tags", "<p>hello <b>world</b></p>", " hello  world  "},
		{"markdown", "**bold** and _italic_", " bold  and  italic "},
		{"entities", "fish &amp; chips", "fish & chips"},
		{"nbsp", "a&nbsp;b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.in); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "a  b\n\nc\td", "a b c d"},
		{"strips and collapses", "<p>hello</p>\n<p>world</p>", "hello world"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only markup", "<br/><hr/>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate under limit = %q, want %q", got, "hello")
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Truncate(%q, 3) = %q, want %q", "hello", got, "hel")
	}
	if got := Truncate("hello", 0); got != "" {
		t.Errorf("Truncate with 0 = %q, want empty", got)
	}

	// Does not split multi-byte runes. "doação" has a 2-byte ç at offset 3.
	got := Truncate("doação", 4)
	if got != "doa" {
		t.Errorf("Truncate(%q, 4) = %q, want %q", "doação", got, "doa")
	}
}
