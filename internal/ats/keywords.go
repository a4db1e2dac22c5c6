package ats

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// DefaultKeywordLimit bounds how many frequent job description terms are kept.
const DefaultKeywordLimit = 60

// genericTerms are frequent in any job description and say nothing about fit.
var genericTerms = NewSet("team", "project", "work", "experience", "ability", "skill")

// Keywords returns the most frequent alphabetic, non-stop lemmas of a job
// description, generic terms removed.
func (s *Scorer) Keywords(ctx context.Context, jobDescription string) (Set, error) {
	doc, err := s.analyzer.Analyze(ctx, strings.ToLower(jobDescription))
	if err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range doc.Tokens {
		if !tok.IsAlpha() || tok.IsStop {
			continue
		}
		lemma := strings.ToLower(strings.TrimSpace(tok.Lemma))
		if lemma == "" {
			continue
		}
		if _, seen := counts[lemma]; !seen {
			order = append(order, lemma)
		}
		counts[lemma]++
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > s.keywordLimit {
		order = order[:s.keywordLimit]
	}

	keywords := make(Set, len(order))
	for _, term := range order {
		if genericTerms.Has(term) {
			continue
		}
		keywords.Add(term)
	}

	return keywords, nil
}

// Lemma reduces a single word to the lemma the scorer stores in matched
// keywords, e.g. "Services" becomes "service". A word the analyzer yields no
// alphabetic token for is returned lower-cased.
func (s *Scorer) Lemma(ctx context.Context, word string) (string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return "", nil
	}

	doc, err := s.analyzer.Analyze(ctx, word)
	if err != nil {
		return "", fmt.Errorf("analyze %q: %w", word, err)
	}
	for _, tok := range doc.Tokens {
		if !tok.IsAlpha() {
			continue
		}
		if lemma := strings.ToLower(strings.TrimSpace(tok.Lemma)); lemma != "" {
			return lemma, nil
		}
	}
	return word, nil
}
