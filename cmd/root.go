package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/logger"
)

const (
	app = "ats-scorer"
)

type Config struct {
	Analyzer *AnalyzerConfig `mapstructure:"analyzer"`
	Scoring  *ScoringConfig  `mapstructure:"scoring"`
	Rank     *RankConfig     `mapstructure:"rank"`
}

type AnalyzerConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ScoringConfig struct {
	KeywordLimit   int     `mapstructure:"keyword-limit"`
	MatchThreshold float64 `mapstructure:"match-threshold"`
}

type RankConfig struct {
	Workers          int      `mapstructure:"workers"`
	MinimumScore     float64  `mapstructure:"minimum-score"`
	ExcludeFile      string   `mapstructure:"exclude-file"`
	RequiredKeywords []string `mapstructure:"required-keywords"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-scorer scores resumes against a job description the way an applicant tracking system would",
	}
)

// Execute executes the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	if err := viper.BindEnv("analyzer.gemini.api-key-file", "ATS_GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding ATS_GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("analyzer.provider", "builtin")
	viper.SetDefault("analyzer.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("analyzer.gemini.max-retries", 3)
	viper.SetDefault("analyzer.gemini.max-log-length", 200)
	viper.SetDefault("scoring.keyword-limit", 60)
	viper.SetDefault("scoring.match-threshold", 85)
	viper.SetDefault("rank.workers", 4)
	viper.SetDefault("rank.minimum-score", 0)
	viper.SetDefault("rank.exclude-file", "")
	viper.SetDefault("rank.required-keywords", []string{})

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("analyzer", "", "text analyzer: builtin or gemini (overrides analyzer.provider)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("analyzer.provider", rootCmd.PersistentFlags().Lookup("analyzer"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// setup builds the logger and reads the config, exiting on failure.
func setup() (*zap.Logger, *Config) {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Analyzer == nil || config.Scoring == nil || config.Rank == nil {
		lg.Fatal("config is incomplete")
	}
	if config.Analyzer.Gemini == nil {
		config.Analyzer.Gemini = &GeminiConfig{}
	}

	lg.Debug("starting with config",
		zap.String("analyzer", config.Analyzer.Provider),
		zap.Int("keyword_limit", config.Scoring.KeywordLimit),
		zap.Float64("match_threshold", config.Scoring.MatchThreshold),
		zap.String("version", version),
	)

	return lg, config
}
