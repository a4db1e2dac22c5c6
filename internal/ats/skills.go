package ats

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/ats-scorer/internal/fuzzy"
)

// DefaultMatchThreshold is the similarity a candidate term must exceed to
// count as a job description keyword.
const DefaultMatchThreshold = 85.0

// Candidates returns the skill terms of a text: lemmas of non-stop nouns and
// proper nouns plus the lemmas of noun chunks.
func (s *Scorer) Candidates(ctx context.Context, text string) (Set, error) {
	doc, err := s.analyzer.Analyze(ctx, strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("analyze resume: %w", err)
	}

	candidates := make(Set)
	for _, tok := range doc.Tokens {
		if !tok.IsNoun() || tok.IsStop {
			continue
		}
		if term := strings.ToLower(strings.TrimSpace(tok.Lemma)); term != "" {
			candidates.Add(term)
		}
	}
	for _, chunk := range doc.Chunks {
		if term := strings.ToLower(strings.TrimSpace(chunk.Lemma)); term != "" {
			candidates.Add(term)
		}
	}

	return candidates, nil
}

// MatchSkills maps each candidate to its closest keyword and keeps the keyword
// when the similarity exceeds the threshold. The result is always a subset of
// keywords.
func (s *Scorer) MatchSkills(candidates, keywords Set) Set {
	matched := make(Set)
	if keywords.Len() == 0 {
		return matched
	}

	// Sorted choices make ties resolve the same way on every run.
	choices := keywords.Sorted()
	for candidate := range candidates {
		best, ok := fuzzy.ExtractOne(candidate, choices, s.similarity)
		if ok && best.Score > s.threshold {
			matched.Add(best.Choice)
		}
	}

	return matched
}

// Skills returns the candidates of text, or only the keywords they match
// when keywords is non-nil.
func (s *Scorer) Skills(ctx context.Context, text string, keywords Set) (Set, error) {
	candidates, err := s.Candidates(ctx, text)
	if err != nil {
		return nil, err
	}
	if keywords == nil {
		return candidates, nil
	}
	return s.MatchSkills(candidates, keywords), nil
}
