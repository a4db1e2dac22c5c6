package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/analysis"
	"github.com/spigell/ats-scorer/internal/analysis/gemini"
	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/secrets"
)

func newAnalyzer(ctx context.Context, cfg *AnalyzerConfig, log *zap.Logger) (analysis.Analyzer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", analysis.ProviderBuiltin:
		analyzer, err := analysis.Default()
		if err != nil {
			return nil, fmt.Errorf("loading builtin analyzer: %w", err)
		}
		return analyzer, nil
	case gemini.Provider:
	default:
		return nil, fmt.Errorf("unsupported analyzer provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set analyzer.gemini.api-key-file, ATS_GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithCommonFields(log, gemini.Provider, cfg.Gemini.Model).With(
		zap.Int("analyzer_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAnalyzer(generator, cfg.Gemini.MaxLogLength, logger.WithCommonFields(log, gemini.Provider, generator.Model())), nil
}

func newScorer(ctx context.Context, config *Config, log *zap.Logger) (*ats.Scorer, error) {
	analyzer, err := newAnalyzer(ctx, config.Analyzer, log)
	if err != nil {
		return nil, err
	}

	return ats.New(analyzer, ats.Config{
		KeywordLimit:   config.Scoring.KeywordLimit,
		MatchThreshold: config.Scoring.MatchThreshold,
	}, log), nil
}
