package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/candidate"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func writeResult(w io.Writer, format string, result *ats.Result) error {
	switch strings.ToLower(format) {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case outputText, "":
		return writeResultText(w, result)
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, outputText, outputJSON, outputYAML)
	}
}

func writeResultText(w io.Writer, result *ats.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ATS score:\t%.1f\n", result.Score)
	fmt.Fprintf(tw, "skills:\t%.3f\t(%d of %d resume terms matched)\n", result.Components.Skill, len(result.Matched), result.CandidateCount)
	fmt.Fprintf(tw, "keywords:\t%.3f\t(%d of %d job keywords, not weighted)\n", result.Components.Keyword, len(result.Matched), len(result.Keywords))
	fmt.Fprintf(tw, "experience:\t%.3f\t(resume %d years, job %d years)\n", result.Components.Experience, result.ResumeYears, result.JobYears)
	fmt.Fprintf(tw, "education:\t%.3f\t(%d records)\n", result.Components.Education, len(result.Education))
	fmt.Fprintf(tw, "matched keywords:\t%s\n", strings.Join(result.Matched, ", "))
	for _, record := range result.Education {
		fmt.Fprintf(tw, "education record:\t%s\n", record)
	}
	return tw.Flush()
}

func writeRanking(w io.Writer, candidates *candidate.Candidates) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tBAND\tNAME\tPATH")
	for i, c := range candidates.Items {
		score := "-"
		if !c.Failed() {
			score = fmt.Sprintf("%.1f", c.Result.Score)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, score, c.Band(), c.Name, c.Path)
	}
	return tw.Flush()
}
