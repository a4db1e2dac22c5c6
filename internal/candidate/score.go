package candidate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/logger"
)

const defaultWorkers = 4

// Scorer rates resumes against keywords extracted once per job description.
type Scorer interface {
	Keywords(ctx context.Context, jobDescription string) (ats.Set, error)
	ScoreWithKeywords(ctx context.Context, resume, jobDescription string, keywords ats.Set) (*ats.Result, error)
}

// Score rates every readable candidate against jobDescription using up to
// workers goroutines. The job description is analyzed once for the batch.
// A failing candidate gets its Error set; only context cancellation or a
// failed job description analysis aborts the batch.
func (v *Candidates) Score(ctx context.Context, scorer Scorer, jobDescription string, workers int, log *zap.Logger) error {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if !slices.ContainsFunc(v.Items, func(c *Candidate) bool { return c.Error == "" }) {
		return nil
	}

	keywords, err := scorer.Keywords(ctx, jobDescription)
	if err != nil {
		return fmt.Errorf("extract job description keywords: %w", err)
	}
	log.Debug("job description keywords", zap.Int("count", keywords.Len()))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, c := range v.Items {
		if c.Error != "" {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cl := logger.WithCandidate(log, c.ID)
			result, err := scorer.ScoreWithKeywords(ctx, c.Text, jobDescription, keywords)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				cl.Warn("scoring resume failed", zap.Error(err))
				c.Error = err.Error()
				return nil
			}

			c.Result = result
			cl.Debug("resume scored", zap.Float64("score", result.Score))
			return nil
		})
	}

	return g.Wait()
}
