// Package fuzzy implements the string similarity used to reconcile resume
// skills with job description keywords. Scores are in [0, 100].
package fuzzy

import (
	"sort"
	"strings"
)

// Scorer compares two strings and returns a similarity in [0, 100].
type Scorer func(a, b string) float64

// Match is the best choice found by ExtractOne.
type Match struct {
	Choice string
	Score  float64
	Index  int
}

// Ratio returns the normalized Indel similarity of a and b:
// 100 * 2*LCS(a, b) / (len(a) + len(b)), measured in runes.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	return 100 * float64(2*lcs(ra, rb)) / float64(total)
}

// TokenSortRatio sorts the whitespace separated tokens of both strings before
// computing Ratio, so word order does not matter.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// ExtractOne returns the choice with the highest score against query. The
// first choice wins ties. ok is false when choices is empty.
func ExtractOne(query string, choices []string, scorer Scorer) (Match, bool) {
	if scorer == nil {
		scorer = TokenSortRatio
	}

	best := Match{Index: -1, Score: -1}
	for i, choice := range choices {
		score := scorer(query, choice)
		if score > best.Score {
			best = Match{Choice: choice, Score: score, Index: i}
			if score == 100 {
				break
			}
		}
	}

	if best.Index < 0 {
		return Match{}, false
	}
	return best, true
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcs returns the length of the longest common subsequence using two rows.
func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
