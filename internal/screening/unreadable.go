package screening

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/candidate"
)

type unreadableFilter struct {
	toggle
	logger *zap.Logger
}

// NewUnreadable creates a filter that drops candidates whose resume could not
// be read or scored.
func NewUnreadable(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &unreadableFilter{logger: logger}
}

func (f *unreadableFilter) Name() string { return "unreadable" }

func (f *unreadableFilter) Validate() error { return nil }

func (f *unreadableFilter) Apply(_ context.Context, c *candidate.Candidates) (*candidate.Candidates, Step, error) {
	initial := c.Len()
	dropped := c.Keep(func(item *candidate.Candidate) bool { return !item.Failed() })
	if len(dropped) > 0 {
		f.logger.Info("excluding unreadable resumes",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(dropped), Left: c.Len()}, nil
}

func (f *unreadableFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
