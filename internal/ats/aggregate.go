package ats

import (
	"math"
	"strings"
)

const (
	skillWeight      = 0.5
	experienceWeight = 0.3
	educationWeight  = 0.2

	// anyEducationScore applies when the job description names no degree.
	anyEducationScore = 0.8
)

// Inputs carries everything the aggregator needs from the extractors.
type Inputs struct {
	Matched        int
	Candidates     int
	Keywords       int
	ResumeYears    int
	JobYears       int
	Education      []EducationRecord
	JobDescription string
}

// Components are the sub-scores. Keyword is reported but carries no weight in
// the overall score.
type Components struct {
	Skill      float64 `json:"skill" yaml:"skill"`
	Keyword    float64 `json:"keyword" yaml:"keyword"`
	Experience float64 `json:"experience" yaml:"experience"`
	Education  float64 `json:"education" yaml:"education"`
}

func Aggregate(in Inputs) Components {
	return Components{
		Skill:      SkillScore(in.Matched, in.Candidates),
		Keyword:    KeywordScore(in.Matched, in.Keywords),
		Experience: ExperienceScore(in.ResumeYears, in.JobYears),
		Education:  EducationScore(in.JobDescription, in.Education),
	}
}

// SkillScore is matched keywords per resume skill candidate.
func SkillScore(matched, candidates int) float64 {
	return float64(matched) / float64(max(candidates, 1))
}

func KeywordScore(matched, keywords int) float64 {
	if keywords == 0 {
		return 0
	}
	return float64(matched) / float64(keywords)
}

// ExperienceScore is capped at 1 when the job asks for a number of years.
// Otherwise every ten years count as 1 with no cap, so a senior resume
// against an unspecified job can exceed 1.
func ExperienceScore(resumeYears, jobYears int) float64 {
	if jobYears > 0 {
		return math.Min(1, float64(resumeYears)/float64(jobYears))
	}
	return float64(resumeYears) / 10
}

// EducationScore checks the highest degree the job description mentions,
// phd first, then master, then bachelor, against the resume records. Only the
// first mentioned level is checked. Degree names are matched as plain
// substrings, so "bsc" does not satisfy "bachelor".
func EducationScore(jobDescription string, records []EducationRecord) float64 {
	jd := strings.ToLower(jobDescription)

	switch {
	case strings.Contains(jd, "phd"):
		return hit(records, "phd")
	case strings.Contains(jd, "master"):
		return hit(records, "master", "phd")
	case strings.Contains(jd, "bachelor"):
		return hit(records, "bachelor", "master", "phd")
	case len(records) > 0:
		return anyEducationScore
	default:
		return 0
	}
}

func hit(records []EducationRecord, degrees ...string) float64 {
	for _, r := range records {
		if containsAny(strings.ToLower(r.String()), degrees...) {
			return 1
		}
	}
	return 0
}

// Overall weights the components into a percentage rounded to one decimal.
// The result is not clamped.
func Overall(c Components) float64 {
	overall := skillWeight*c.Skill + experienceWeight*c.Experience + educationWeight*c.Education
	return math.Round(overall*100*10) / 10
}
