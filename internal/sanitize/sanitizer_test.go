package sanitize

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/medprep/internal/cache"
)

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}

	var empty string
	if got := Clean(empty); got != "" {
		t.Errorf("Expected empty string for zero value, got %q", got)
	}
}

func TestClean_GreetingAnonymized(t *testing.T) {
	got := Clean("Hi Mark, I have a headache.")

	if !strings.Contains(got, "Hi Patient") {
		t.Errorf("Expected 'Hi Patient' in %q", got)
	}
	if strings.Contains(got, "Mark") {
		t.Errorf("Expected name to be removed, got %q", got)
	}
	if got != "Hi Patient, I have a headache." {
		t.Errorf("Unexpected result: %q", got)
	}
}

func TestClean_SignatureRemoved(t *testing.T) {
	got := Clean("Take rest.\n\nBest wishes, Dr. Smith")

	for _, fragment := range []string{"Best wishes", "Dr.", "Smith"} {
		if strings.Contains(got, fragment) {
			t.Errorf("Expected %q to be removed, got %q", fragment, got)
		}
	}
	if got != "Take rest." {
		t.Errorf("Expected 'Take rest.', got %q", got)
	}
}

func TestClean_WhitespaceCollapsed(t *testing.T) {
	if got := Clean("a   b\n\nc"); got != "a b c" {
		t.Errorf("Expected 'a b c', got %q", got)
	}
	if got := Clean("  \t padded \n "); got != "padded" {
		t.Errorf("Expected 'padded', got %q", got)
	}
}

func TestClean_Cases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no matches", "My knee hurts when I run.", "My knee hurts when I run."},
		{"hello greeting", "Hello Anna, thanks for asking.", "Hello Patient, thanks for asking."},
		{"dear greeting", "Dear Robert,\nplease rest.", "Dear Patient, please rest."},
		{"lowercase name kept", "Hi mark, ok.", "Hi mark, ok."},
		{"all caps name kept", "Hi MARK, ok.", "Hi MARK, ok."},
		{"second token of name kept", "Hi John Smith, ok.", "Hi Patient Smith, ok."},
		{"sincerely with doctor", "Sincerely, Dr. Lee", ""},
		{"case insensitive trigger", "Drink water. SINCERELY yours", "Drink water."},
		{"chat doctor boilerplate", "Rest well. Thanks for choosing Chat Doctor.", "Rest well. ."},
		{"md suffix run", "Use ice.\nJohn Doe MD, cardiology", "Use ice. John Doe"},
		{"every occurrence removed", "A. Best wishes. B. Best wishes", "A. . B."},
		{"unicode name in signature", "Repouse. Dr. José Álvarez", "Repouse."},
		{"non-breaking space collapsed", "a\u00a0 b", "a b"},
		{"accented text kept", "Olá, tenho febre", "Olá, tenho febre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_PassOrder(t *testing.T) {
	// Signature removal runs before whitespace collapsing, so a sign-off
	// separated by blank lines is still removed.
	got := Clean("Take the tablets.\n\n\nRegards,\nChat Doctor\nSome Name")
	if strings.Contains(got, "Chat Doctor") || strings.Contains(got, "Some Name") {
		t.Errorf("Expected sign-off removed, got %q", got)
	}
	if got != "Take the tablets. Regards," {
		t.Errorf("Unexpected result: %q", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hi Mark, I have a headache.",
		"Take rest.\n\nBest wishes, Dr. Smith",
		"a   b\n\nc",
		"Hello Anna,\n\nI have had fever for 3 days.\nThanks for choosing Chat Doctor.",
		"Dear Patient, everything is fine.",
		"Olá Maria, tenho febre há três dias",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestRules_Order(t *testing.T) {
	got := Rules()
	want := []string{"signature", "greeting", "whitespace"}

	if len(got) != len(want) {
		t.Fatalf("Expected %d rules, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Rule %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}

func TestSanitizer_MatchesClean(t *testing.T) {
	s := NewSanitizer(cache.NewMemoryCache(0, time.Minute))

	inputs := []string{
		"Hi Mark, I have a headache.",
		"Take rest.\n\nBest wishes, Dr. Smith",
		"Hi Mark, I have a headache.",
		"",
	}

	for _, in := range inputs {
		if got, want := s.Clean(in), Clean(in); got != want {
			t.Errorf("Sanitizer.Clean(%q) = %q, want %q", in, got, want)
		}
	}

	hits, misses := s.Stats()
	if hits != 1 {
		t.Errorf("Expected 1 cache hit, got %d", hits)
	}
	if misses != 2 {
		t.Errorf("Expected 2 cache misses, got %d", misses)
	}
}

func TestSanitizer_NilCache(t *testing.T) {
	s := NewSanitizer(nil)

	if got := s.Clean("Hi Mark"); got != "Hi Patient" {
		t.Errorf("Expected 'Hi Patient', got %q", got)
	}
	if hits, misses := s.Stats(); hits != 0 || misses != 0 {
		t.Errorf("Expected no cache activity, got hits=%d misses=%d", hits, misses)
	}
}
