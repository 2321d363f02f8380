// Package sanitize strips provider sign-offs and anonymizes greetings in
// medical question/answer text. It is a best-effort heuristic filter, not a
// de-identification system.
package sanitize

import (
	"strings"

	"github.com/ppiankov/medprep/internal/cache"
)

var rules = Rules()

// Clean removes signatures, anonymizes greeted names and collapses
// whitespace, in that order. It never fails.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	for _, rule := range rules {
		text = rule.Apply(text)
	}
	return strings.TrimSpace(text)
}

// Sanitizer memoizes Clean. Output is identical with or without a cache.
type Sanitizer struct {
	cache  cache.Cache
	hits   int
	misses int
}

// NewSanitizer creates a sanitizer backed by c; a nil cache disables memoization
func NewSanitizer(c cache.Cache) *Sanitizer {
	return &Sanitizer{cache: c}
}

// Clean returns the sanitized form of text
func (s *Sanitizer) Clean(text string) string {
	if s == nil || s.cache == nil || text == "" {
		return Clean(text)
	}

	key := cache.Key(text)
	if val, found := s.cache.Get(key); found {
		s.hits++
		return string(val)
	}

	s.misses++
	cleaned := Clean(text)
	_ = s.cache.Set(key, []byte(cleaned), 0)
	return cleaned
}

// Stats returns cache hits and misses since creation
func (s *Sanitizer) Stats() (hits, misses int) {
	if s == nil {
		return 0, 0
	}
	return s.hits, s.misses
}
