// Package ats scores how well a resume fits a job description: keyword
// extraction from the job description, fuzzy skill matching, experience and
// education extraction from the resume, and a fixed weighted sum.
package ats

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/analysis"
	"github.com/spigell/ats-scorer/internal/fuzzy"
)

// Config tunes the scorer. Zero values select the defaults.
type Config struct {
	KeywordLimit   int
	MatchThreshold float64
	Similarity     fuzzy.Scorer
}

// Scorer is immutable after New and safe for concurrent use as long as its
// analyzer is.
type Scorer struct {
	analyzer     analysis.Analyzer
	keywordLimit int
	threshold    float64
	similarity   fuzzy.Scorer
	logger       *zap.Logger
}

// Result is a score with everything that went into it.
type Result struct {
	Score          float64           `json:"score" yaml:"score"`
	Components     Components        `json:"components" yaml:"components"`
	Keywords       []string          `json:"keywords" yaml:"keywords"`
	Matched        []string          `json:"matched_keywords" yaml:"matched_keywords"`
	CandidateCount int               `json:"candidate_count" yaml:"candidate_count"`
	ResumeYears    int               `json:"resume_years" yaml:"resume_years"`
	JobYears       int               `json:"job_years" yaml:"job_years"`
	Education      []EducationRecord `json:"education" yaml:"education"`
}

func New(analyzer analysis.Analyzer, cfg Config, logger *zap.Logger) *Scorer {
	if cfg.KeywordLimit <= 0 {
		cfg.KeywordLimit = DefaultKeywordLimit
	}
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = DefaultMatchThreshold
	}
	if cfg.Similarity == nil {
		cfg.Similarity = fuzzy.TokenSortRatio
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		analyzer:     analyzer,
		keywordLimit: cfg.KeywordLimit,
		threshold:    cfg.MatchThreshold,
		similarity:   cfg.Similarity,
		logger:       logger,
	}
}

// Score rates resume against jobDescription on a 0-100 scale. Errors come
// only from the analyzer.
func (s *Scorer) Score(ctx context.Context, resume, jobDescription string) (*Result, error) {
	keywords, err := s.Keywords(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	return s.ScoreWithKeywords(ctx, resume, jobDescription, keywords)
}

// ScoreWithKeywords is Score with the job description keywords already
// extracted by Keywords, so one posting is analyzed once for many resumes.
func (s *Scorer) ScoreWithKeywords(ctx context.Context, resume, jobDescription string, keywords Set) (*Result, error) {
	candidates, err := s.Candidates(ctx, resume)
	if err != nil {
		return nil, err
	}
	matched := s.MatchSkills(candidates, keywords)

	education, err := s.Education(ctx, resume)
	if err != nil {
		return nil, err
	}

	if keywords == nil {
		keywords = NewSet()
	}

	in := Inputs{
		Matched:        matched.Len(),
		Candidates:     candidates.Len(),
		Keywords:       keywords.Len(),
		ResumeYears:    ExperienceYears(resume),
		JobYears:       ExperienceYears(jobDescription),
		Education:      education,
		JobDescription: jobDescription,
	}
	components := Aggregate(in)

	result := &Result{
		Score:          Overall(components),
		Components:     components,
		Keywords:       keywords.Sorted(),
		Matched:        matched.Sorted(),
		CandidateCount: in.Candidates,
		ResumeYears:    in.ResumeYears,
		JobYears:       in.JobYears,
		Education:      education,
	}

	s.logger.Debug("resume scored",
		zap.Float64("score", result.Score),
		zap.Float64("skill_score", components.Skill),
		zap.Float64("keyword_score", components.Keyword),
		zap.Float64("experience_score", components.Experience),
		zap.Float64("education_score", components.Education),
		zap.Int("keywords", in.Keywords),
		zap.Int("matched", in.Matched),
		zap.Int("candidates", in.Candidates),
	)

	return result, nil
}
