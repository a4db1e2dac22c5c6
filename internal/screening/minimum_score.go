package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/candidate"
)

type minimumScoreFilter struct {
	toggle
	minimum     float64
	excludeFile string
	logger      *zap.Logger
}

// NewMinimumScore creates a filter that drops candidates scoring below
// minimum. Dropped candidates are appended to excludeFile with the ats actor
// when a path is given.
func NewMinimumScore(minimum float64, excludeFile string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &minimumScoreFilter{
		minimum:     minimum,
		excludeFile: strings.TrimSpace(excludeFile),
		logger:      logger,
	}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %.1f", f.minimum)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, c *candidate.Candidates) (*candidate.Candidates, Step, error) {
	initial := c.Len()
	if f.minimum == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	var below []*candidate.Candidate
	c.Keep(func(item *candidate.Candidate) bool {
		if item.Score() >= f.minimum {
			return true
		}
		below = append(below, item)
		return false
	})

	if len(below) > 0 {
		rejected := &candidate.Candidates{Items: below}
		f.logger.Info("excluding candidates below minimum score",
			zap.Float64("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", rejected.IDs()),
			zap.Int("candidates_left", c.Len()),
		)

		if f.excludeFile != "" {
			reason := fmt.Sprintf("ats score below %.1f", f.minimum)
			if err := candidate.AppendToFile(f.excludeFile, rejected.ToExcluded(candidate.ExcludeActorATS, reason)); err != nil {
				return c, Step{}, fmt.Errorf("appending to exclude file: %w", err)
			}
			f.logger.Info("appended to exclude file", zap.String("filename", f.excludeFile))
		}
	}

	return c, Step{Initial: initial, Dropped: len(below), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	details := map[string]string{
		"minimum_score": fmt.Sprintf("%.1f", f.minimum),
	}
	if f.excludeFile != "" {
		details["exclude_file"] = f.excludeFile
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
