package names

import (
	"sort"
	"strings"
)

// DefaultMaxSuggestions bounds how many near-miss names a diagnostic carries.
const DefaultMaxSuggestions = 3

// minSimilarity is the score floor below which a candidate is noise.
const minSimilarity = 0.5

// Suggest returns up to max known names ranked by similarity to the
// unresolved name. Names below the similarity floor are dropped.
func Suggest(unresolved string, known []string, max int) []string {
	type scored struct {
		name  string
		score float64
	}

	var candidates []scored

	for _, k := range known {
		s := similarity(unresolved, k)
		if s >= minSimilarity {
			candidates = append(candidates, scored{name: k, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	if len(candidates) > max {
		candidates = candidates[:max]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}

	return out
}

// similarity is a normalized edit-distance score between 0 and 1 over
// case-folded identifiers; 1.0 means identical.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	maxLen := max(len(a), len(b))

	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming formulation.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
