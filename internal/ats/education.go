package ats

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/ats-scorer/internal/analysis"
)

// RecordKind tells institution records from degree records.
type RecordKind string

const (
	KindInstitution RecordKind = "institution"
	KindDegree      RecordKind = "degree"
)

var institutionWords = []string{"university", "college", "institute", "school", "academy", "polytechnic"}

// degreePattern has no word boundaries: "ba" also matches inside "backend".
var degreePattern = regexp.MustCompile(`(?i)(bachelor|master|phd|mba|b\.sc|m\.sc|ba|ma|ms|bs|btech|mtech)`)

type EducationRecord struct {
	Kind  RecordKind `json:"kind" yaml:"kind"`
	Value string     `json:"value" yaml:"value"`
}

// String is the form the education score searches for degree names.
func (r EducationRecord) String() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Value)
}

// Education returns institution records from ORG/FAC entities followed by
// one degree record per degree keyword found in the raw text. Nothing is
// deduplicated.
func (s *Scorer) Education(ctx context.Context, text string) ([]EducationRecord, error) {
	doc, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze education: %w", err)
	}

	var records []EducationRecord
	for _, ent := range doc.Entities {
		if ent.Label != analysis.LabelOrganization && ent.Label != analysis.LabelFacility {
			continue
		}
		if containsAny(strings.ToLower(ent.Text), institutionWords...) {
			records = append(records, EducationRecord{Kind: KindInstitution, Value: ent.Text})
		}
	}

	for _, degree := range degreePattern.FindAllString(text, -1) {
		records = append(records, EducationRecord{Kind: KindDegree, Value: degree})
	}

	return records, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
