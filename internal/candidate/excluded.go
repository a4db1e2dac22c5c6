package candidate

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

const (
	// ExcludeActorUser marks candidates excluded by hand.
	ExcludeActorUser = "user"
	// ExcludeActorATS marks candidates excluded by the score threshold.
	ExcludeActorATS = "ats"
)

type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	ID         string
	Path       string
	Actor      string
	Reason     string    `json:",omitempty"`
	ExcludedAt time.Time
}

func (v *Candidates) ToExcluded(actor, reason string) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, c := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ID:         c.ID,
			Path:       c.Path,
			Actor:      actor,
			Reason:     reason,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file holds
// no candidates.
func GetExcludedFromFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (v *ExcludedCandidates) Append(s *ExcludedCandidates) {
	v.Items = append(v.Items, s.Items...)
}

func (v *ExcludedCandidates) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, c := range v.Items {
		ids = append(ids, c.ID)
	}
	return ids
}

func (v *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// AppendToFile adds candidates to the exclude file at path.
func AppendToFile(path string, add *ExcludedCandidates) error {
	excluded, err := GetExcludedFromFile(path)
	if err != nil {
		return err
	}
	excluded.Append(add)
	return excluded.ToFile(path)
}
