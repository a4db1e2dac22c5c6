// Package candidate holds the resumes ranked against one job description.
package candidate

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spigell/ats-scorer/internal/ats"
)

const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
	BandFailed    = "failed"
)

type Candidates struct {
	Items []*Candidate
}

type Candidate struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Path   string      `json:"path"`
	Text   string      `json:"-"`
	Result *ats.Result `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Failed reports whether the resume could not be read or scored.
func (c *Candidate) Failed() bool {
	return c.Error != "" || c.Result == nil
}

// Score is the ATS score, or -1 when the candidate failed.
func (c *Candidate) Score() float64 {
	if c.Failed() {
		return -1
	}
	return c.Result.Score
}

// Band buckets the score for reports.
func (c *Candidate) Band() string {
	if c.Failed() {
		return BandFailed
	}
	switch s := c.Result.Score; {
	case s >= 80:
		return BandExcellent
	case s >= 60:
		return BandGood
	case s >= 40:
		return BandFair
	default:
		return BandPoor
	}
}

func (v *Candidates) Len() int {
	return len(v.Items)
}

// SortByScore orders candidates best first; failed ones go last and ties
// keep their order.
func (v *Candidates) SortByScore() {
	slices.SortStableFunc(v.Items, func(a, b *Candidate) int {
		return cmp.Compare(b.Score(), a.Score())
	})
}

func (v *Candidates) FindByID(id string) *Candidate {
	for _, c := range v.Items {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (v *Candidates) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, c := range v.Items {
		ids = append(ids, c.ID)
	}
	return ids
}

// Exclude removes candidates whose ID is in ids and returns the removed IDs.
// The remaining order is preserved.
func (v *Candidates) Exclude(ids []string) []string {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	var excluded []string
	v.Items = slices.DeleteFunc(v.Items, func(c *Candidate) bool {
		if _, ok := targets[c.ID]; ok {
			excluded = append(excluded, c.ID)
			return true
		}
		return false
	})
	return excluded
}

// Keep retains the candidates for which keep returns true and returns the IDs
// of the dropped ones.
func (v *Candidates) Keep(keep func(*Candidate) bool) []string {
	var dropped []string
	v.Items = slices.DeleteFunc(v.Items, func(c *Candidate) bool {
		if keep(c) {
			return false
		}
		dropped = append(dropped, c.ID)
		return true
	})
	return dropped
}

// RemoveByIndex removes the candidate at idx, preserving order.
func (v *Candidates) RemoveByIndex(idx int) {
	v.Items = slices.Delete(v.Items, idx, idx+1)
}

// ReportByBand groups candidates by score band.
func (v *Candidates) ReportByBand() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range v.Items {
		entry := map[string]string{
			"id":   c.ID,
			"name": c.Name,
		}
		if c.Failed() {
			entry["error"] = c.Error
		} else {
			entry["score"] = fmt.Sprintf("%.1f", c.Result.Score)
			entry["experience_years"] = fmt.Sprintf("%d", c.Result.ResumeYears)
			entry["matched_keywords"] = fmt.Sprintf("%v", c.Result.Matched)
		}
		band := c.Band()
		report[band] = append(report[band], entry)
	}
	return report
}

func (v *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
