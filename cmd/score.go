package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/extract"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against a job description",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume file (.pdf, .docx or .txt)")
	scoreCmd.Flags().StringP("output", "o", outputText, "output format: text, json or yaml")
	scoreCmd.MarkFlagRequired("resume")

	addJobDescriptionFlags(scoreCmd)
}

func score(cmd *cobra.Command) {
	ctx := cmd.Context()
	log, config := setup()
	defer log.Sync()

	resumePath, _ := cmd.Flags().GetString("resume")
	format, _ := cmd.Flags().GetString("output")

	resume, err := extract.Text(resumePath)
	if err != nil {
		log.Fatal("reading resume", zap.Error(err))
	}

	jd, err := jobDescription(cmd)
	if err != nil {
		log.Fatal("reading job description", zap.Error(err))
	}

	scorer, err := newScorer(ctx, config, log)
	if err != nil {
		log.Fatal("building scorer", zap.Error(err))
	}

	result, err := scorer.Score(ctx, resume, jd)
	if err != nil {
		log.Fatal("scoring resume", zap.Error(err), zap.String("resume", resumePath))
	}

	if err := writeResult(cmd.OutOrStdout(), format, result); err != nil {
		log.Fatal("writing result", zap.Error(err))
	}
}

func addJobDescriptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("jd", "", "job description file (.pdf, .docx, .txt, .html)")
	cmd.Flags().String("jd-text", "", "job description text (may be empty)")

	cmd.MarkFlagsOneRequired("jd", "jd-text")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text")
}

// jobDescription reads --jd-text or the --jd file.
// An explicitly empty --jd-text is a valid job description.
func jobDescription(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("jd-text") {
		text, _ := cmd.Flags().GetString("jd-text")
		return text, nil
	}

	path, _ := cmd.Flags().GetString("jd")
	return extract.JobDescription(path)
}
