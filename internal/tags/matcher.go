package tags

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// DefaultThreshold is the largest normalized distance a candidate may have
// from the query and still be suggested.
const DefaultThreshold = 0.4

// Tag is a candidate tag known to the document service.
type Tag struct {
	ID   int
	Name string
}

// Match is a ranked candidate. Score is a normalized distance, 0 is best.
type Match struct {
	Tag   Tag
	Score float64

	bonus int
	order int
}

// MatcherOption tunes a Matcher.
type MatcherOption func(*Matcher)

// WithThreshold overrides the match sensitivity. Non-positive values keep the default.
func WithThreshold(threshold float64) MatcherOption {
	return func(m *Matcher) {
		if threshold > 0 {
			m.threshold = threshold
		}
	}
}

// Matcher ranks candidate tags against a typed query. It is not safe for
// concurrent use; the slab is reused between searches.
type Matcher struct {
	candidates []Tag
	threshold  float64
	slab       *util.Slab
}

// NewMatcher builds a matcher over a copy of candidates.
func NewMatcher(candidates []Tag, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		candidates: append([]Tag(nil), candidates...),
		threshold:  DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.candidates) > 0 {
		m.slab = util.MakeSlab(16*1024, 2048)
	}
	return m
}

// Threshold returns the configured sensitivity.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Len returns the number of candidates.
func (m *Matcher) Len() int {
	return len(m.candidates)
}

// Search returns candidates close enough to query, best first.
func (m *Matcher) Search(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(m.candidates) == 0 || q == "" {
		return nil
	}
	pattern := []rune(q)

	matches := make([]Match, 0, len(m.candidates))
	for i, tag := range m.candidates {
		name := []rune(strings.ToLower(tag.Name))
		score := windowDistance(pattern, name)
		if score > m.threshold {
			continue
		}
		chars := util.RunesToChars(name)
		res, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, m.slab)
		matches = append(matches, Match{Tag: tag, Score: score, bonus: res.Score, order: i})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		left, right := matches[a], matches[b]
		if left.Score != right.Score {
			return left.Score < right.Score
		}
		if left.bonus != right.bonus {
			return left.bonus > right.bonus
		}
		ln, rn := strings.ToLower(left.Tag.Name), strings.ToLower(right.Tag.Name)
		if ln != rn {
			return ln < rn
		}
		return left.order < right.order
	})
	return matches
}

// windowDistance is the edit distance between pattern and the closest window
// of text, normalized by the pattern length and capped at 1.
func windowDistance(pattern, text []rune) float64 {
	n := len(pattern)
	if n == 0 {
		return 0
	}
	if len(text) == 0 {
		return 1
	}
	lo, hi := n-1, n+1
	if lo < 1 {
		lo = 1
	}
	if hi > len(text) {
		hi = len(text)
	}
	if lo > hi {
		lo = hi
	}

	q := string(pattern)
	best := -1
	for size := lo; size <= hi; size++ {
		for start := 0; start+size <= len(text); start++ {
			d := levenshtein.ComputeDistance(q, string(text[start:start+size]))
			if best < 0 || d < best {
				best = d
			}
			if best == 0 {
				return 0
			}
		}
	}
	score := float64(best) / float64(n)
	if score > 1 {
		return 1
	}
	return score
}
