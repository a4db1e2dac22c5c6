package screening

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/candidate"
)

// Lemmatizer reduces a configured keyword to the form stored in matched
// keywords.
type Lemmatizer interface {
	Lemma(ctx context.Context, word string) (string, error)
}

type requiredKeywordsFilter struct {
	toggle
	keywords   []string
	lemmatizer Lemmatizer
	logger     *zap.Logger
}

// NewRequiredKeywords creates a filter that keeps only candidates whose
// matched keywords contain every configured keyword. Keywords are lemmatized
// with lemmatizer before comparing, so "services" matches a stored "service".
// A nil lemmatizer compares the lower-cased keywords as given.
func NewRequiredKeywords(keywords []string, lemmatizer Lemmatizer, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &requiredKeywordsFilter{lemmatizer: lemmatizer, logger: logger}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && !slices.Contains(f.keywords, k) {
			f.keywords = append(f.keywords, k)
		}
	}
	return f
}

func (f *requiredKeywordsFilter) Name() string { return "required_keywords" }

func (f *requiredKeywordsFilter) Validate() error {
	for _, k := range f.keywords {
		if strings.ContainsFunc(k, func(r rune) bool { return r == ' ' || r == '\t' }) {
			return fmt.Errorf("required keyword %q must be a single word", k)
		}
	}
	return nil
}

func (f *requiredKeywordsFilter) Apply(ctx context.Context, c *candidate.Candidates) (*candidate.Candidates, Step, error) {
	initial := c.Len()
	if len(f.keywords) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	required, err := f.lemmas(ctx)
	if err != nil {
		return c, Step{Initial: initial, Left: c.Len()}, err
	}

	dropped := c.Keep(func(item *candidate.Candidate) bool {
		if item.Failed() {
			return false
		}
		for _, k := range required {
			if !slices.Contains(item.Result.Matched, k) {
				return false
			}
		}
		return true
	})
	if len(dropped) > 0 {
		f.logger.Info("excluding candidates missing required keywords",
			zap.Strings("required_keywords", required),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

func (f *requiredKeywordsFilter) lemmas(ctx context.Context) ([]string, error) {
	if f.lemmatizer == nil {
		return f.keywords, nil
	}

	lemmas := make([]string, 0, len(f.keywords))
	for _, k := range f.keywords {
		lemma, err := f.lemmatizer.Lemma(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("lemmatize required keyword %q: %w", k, err)
		}
		if lemma != k {
			f.logger.Debug("required keyword lemmatized", zap.String("keyword", k), zap.String("lemma", lemma))
		}
		if !slices.Contains(lemmas, lemma) {
			lemmas = append(lemmas, lemma)
		}
	}
	return lemmas, nil
}

func (f *requiredKeywordsFilter) Status() Status {
	details := map[string]string{}
	if len(f.keywords) > 0 {
		details["keywords"] = strings.Join(f.keywords, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
