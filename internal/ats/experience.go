package ats

import (
	"regexp"
	"strconv"
)

var experiencePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:\+|-)?\s*(?:years?|yrs?)`)

// ExperienceYears returns the largest "<n> years" mention in text, or 0.
// "10+ yrs" and "3-years" count as 10 and 3.
func ExperienceYears(text string) int {
	years := 0
	for _, m := range experiencePattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// Overflowing numbers are not experience.
			continue
		}
		years = max(years, n)
	}
	return years
}
