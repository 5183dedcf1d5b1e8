package services

import (
	"strings"
	"unicode"

	"freight/internal/core/domain/model/consignee"

	"github.com/agext/levenshtein"
)

const (
	// MaxMatchDistance is the largest edit distance accepted as a match.
	MaxMatchDistance = 3

	// minContainedLen keeps very short names from matching through containment.
	minContainedLen = 4
)

// FuzzyMatcher resolves free-text names against the consignee directory.
//
// Both sides are normalized (lowercase, alphanumerics only). A candidate whose
// normalized name contains, or is contained in, the text ranks first; among
// equally ranked candidates the smaller Levenshtein distance wins and ties
// keep directory order. A match is accepted when the candidate is contained
// or its distance is at most MaxMatchDistance.
//
// Resolve never fails: no match is a normal outcome.
type FuzzyMatcher struct{}

func NewFuzzyMatcher() FuzzyMatcher {
	return FuzzyMatcher{}
}

// Resolve returns the best accepted candidate for text.
func (FuzzyMatcher) Resolve(text string, candidates []consignee.Entry) (consignee.Entry, bool) {
	needle := Normalize(text)
	if needle == "" {
		return consignee.Entry{}, false
	}

	var (
		best      consignee.Entry
		bestScore = -1
		bestDist  int
	)
	for _, c := range candidates {
		name := Normalize(c.Name())
		if name == "" {
			continue
		}
		dist := levenshtein.Distance(needle, name, nil)
		score := dist
		if contains(needle, name) {
			score = 0
		}
		if bestScore < 0 || score < bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = c, score, dist
		}
	}

	if bestScore < 0 || bestScore > MaxMatchDistance {
		return consignee.Entry{}, false
	}
	return best, true
}

func contains(a, b string) bool {
	if len(a) < len(b) {
		a, b = b, a
	}
	return len(b) >= minContainedLen && strings.Contains(a, b)
}

// Normalize lowercases s and drops every rune that is not a letter or digit.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
