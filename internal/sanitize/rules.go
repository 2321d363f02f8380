package sanitize

import "regexp"

// Rule is a single match-and-replace rewrite applied to the whole text
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply rewrites every match of the rule's pattern
func (r Rule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

// Unicode-aware equivalents of \w and \s. Go's \w and \s are ASCII-only,
// which would leave accented names and non-breaking spaces behind.
const (
	wordClass  = `\p{L}\p{N}\p{Mn}_`
	spaceClass = `\s\v\p{Z}\x{85}\x{1c}-\x{1f}`
)

var (
	// Closing phrases and provider titles, followed by the rest of the
	// sign-off run. An embedded "Dr." is consumed whole so it leaves no
	// stray period behind.
	signatureRule = Rule{
		Name: "signature",
		Pattern: regexp.MustCompile(
			`(?i)(?:Best wishes|Sincerely|Thanks for choosing|Chat Doctor|MD|Dr\.)` +
				`(?:Dr\.|[` + spaceClass + wordClass + `,])*`),
		Replacement: "",
	}

	// Greeting followed by a single capitalized token. Case-sensitive.
	greetingRule = Rule{
		Name:        "greeting",
		Pattern:     regexp.MustCompile(`(Hi|Hello|Dear)[` + spaceClass + `]+[A-Z][a-z]+`),
		Replacement: "${1} " + Placeholder,
	}

	whitespaceRule = Rule{
		Name:        "whitespace",
		Pattern:     regexp.MustCompile(`[` + spaceClass + `]+`),
		Replacement: " ",
	}
)

// Placeholder replaces an anonymized name
const Placeholder = "Patient"

// Rules returns the rewrite rules in the order Clean applies them
func Rules() []Rule {
	return []Rule{signatureRule, greetingRule, whitespaceRule}
}
