package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/candidate"
	"github.com/spigell/ats-scorer/internal/extract"
	"github.com/spigell/ats-scorer/internal/screening"
)

const (
	PromptShowRanking         = "Show ranking"
	PromptReportByBand        = "Report by score band"
	PromptInspect             = "Inspect a candidate"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
	PromptExcludeCandidate    = "Exclude this candidate"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank --jd FILE PATTERN...",
	Short: "Score, screen and rank many resumes for one job description",
	Long: `Rank loads every resume matching the patterns (files, directories or
globs such as "resumes/**/*.pdf"), scores them against the job description,
applies the screening filters and opens an interactive menu over the ranking.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().BoolP("yes", "y", false, "print the ranking and exit without the interactive menu")
	rankCmd.Flags().IntP("workers", "w", 4, "resumes scored in parallel")
	rankCmd.Flags().Float64P("minimum-score", "m", 0, "drop candidates scoring below this value")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	rankCmd.Flags().StringSlice("required-keyword", nil, "keyword every remaining candidate must match, compared by lemma (repeatable)")

	addJobDescriptionFlags(rankCmd)

	viper.BindPFlag("rank.workers", rankCmd.Flags().Lookup("workers"))
	viper.BindPFlag("rank.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("rank.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("rank.required-keywords", rankCmd.Flags().Lookup("required-keyword"))
}

func rank(cmd *cobra.Command, patterns []string) {
	ctx := cmd.Context()
	log, config := setup()
	defer log.Sync()

	log.Info("starting the ats-scorer", zap.String("version", version))

	jd, err := jobDescription(cmd)
	if err != nil {
		log.Fatal("reading job description", zap.Error(err))
	}

	candidates, err := candidate.Load(ctx, patterns, extract.Text, log)
	if err != nil {
		log.Fatal("loading resumes", zap.Error(err))
	}
	log.Info("loaded resumes", zap.Int("count", candidates.Len()))

	scorer, err := newScorer(ctx, config, log)
	if err != nil {
		log.Fatal("building scorer", zap.Error(err))
	}

	if err := candidates.Score(ctx, scorer, jd, config.Rank.Workers, log); err != nil {
		log.Fatal("scoring resumes", zap.Error(err))
	}

	filters := prepareFilters(config.Rank, scorer, log)
	for _, status := range filters.Describe() {
		log.Debug("filter", zap.Any("status", status))
	}

	candidates, err = filters.RunFilters(ctx, candidates)
	if err != nil {
		log.Fatal("screening failed", zap.Error(err))
	}

	if candidates.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no candidates left after screening"))
		return
	}

	candidates.SortByScore()
	out := cmd.OutOrStdout()

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		if err := writeRanking(out, candidates); err != nil {
			log.Fatal("writing ranking", zap.Error(err))
		}
		return
	}

	excludeFile := strings.TrimSpace(config.Rank.ExcludeFile)
	for {
		items := []string{PromptShowRanking, PromptReportByBand, PromptInspect, PromptCandidatesToFile}
		if excludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		prompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		log.Info("current list of candidates", zap.Int("count", candidates.Len()))

		if err := handleAction(action, out, log, excludeFile, candidates); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, out io.Writer, log *zap.Logger, excludeFile string, candidates *candidate.Candidates) error {
	switch action {
	case PromptShowRanking:
		return writeRanking(out, candidates)
	case PromptReportByBand:
		pretty, _ := json.MarshalIndent(candidates.ReportByBand(), "", "  ")
		log.Info(string(pretty), zap.Int("candidates count", candidates.Len()))
		return nil
	case PromptInspect:
		return inspect(out, log, excludeFile, candidates)
	case PromptCandidatesToFile:
		filename, err := candidates.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		if err := candidate.AppendToFile(excludeFile, candidates.ToExcluded(candidate.ExcludeActorUser, "")); err != nil {
			return err
		}
		log.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", candidates.Len()))
		candidates.Items = nil
		return errExit
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func inspect(out io.Writer, log *zap.Logger, excludeFile string, candidates *candidate.Candidates) error {
	for {
		if candidates.Len() == 0 {
			return nil
		}

		items := make([]string, 0, candidates.Len()+1)
		for _, c := range candidates.Items {
			items = append(items, candidateLabel(c))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		c := candidates.Items[idx]
		fmt.Fprintf(out, "%s (%s)\n", c.Name, c.Path)
		if c.Failed() {
			fmt.Fprintf(out, "error: %s\n", c.Error)
		} else if err := writeResultText(out, c.Result); err != nil {
			return err
		}

		if excludeFile == "" {
			continue
		}

		confirm := promptui.Select{
			Label: "Exclude " + c.Name + "?",
			Items: []string{PromptBack, PromptExcludeCandidate},
		}
		_, choice, err := confirm.Run()
		if err != nil {
			return err
		}
		if choice != PromptExcludeCandidate {
			continue
		}

		single := &candidate.Candidates{Items: []*candidate.Candidate{c}}
		if err := candidate.AppendToFile(excludeFile, single.ToExcluded(candidate.ExcludeActorUser, "")); err != nil {
			return err
		}
		candidates.RemoveByIndex(idx)
		log.Info("appended to exclude file", zap.String("filename", excludeFile), zap.String("candidate", c.ID))
	}
}

func candidateLabel(c *candidate.Candidate) string {
	if c.Failed() {
		return fmt.Sprintf("  -    %s (%s)", c.Name, c.Path)
	}
	return fmt.Sprintf("%5.1f %s (%s)", c.Result.Score, c.Name, c.Path)
}

func prepareFilters(config *RankConfig, lemmatizer screening.Lemmatizer, log *zap.Logger) *screening.Filtering {
	steps := []screening.Filter{
		screening.NewUnreadable(log),
		screening.NewExcludeFile(config.ExcludeFile, log),
		screening.NewRequiredKeywords(config.RequiredKeywords, lemmatizer, log),
		screening.NewMinimumScore(config.MinimumScore, config.ExcludeFile, log),
	}

	return screening.New(steps, log)
}
