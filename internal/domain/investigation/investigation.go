// Package investigation holds dated lab panels in memory for recency
// queries. Panels are session-scoped working data, not part of the clinical
// record, so nothing here touches the database.
package investigation

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Panel tags. Frequent panels are the routine post-transplant bloods;
// annual panels are the yearly full workup.
const (
	TagFrequent = "frequent"
	TagAnnual   = "annual"
)

// Record is one dated lab panel.
type Record struct {
	ID   uuid.UUID `json:"id"`
	PHN  string    `json:"phn"`
	Tag  string    `json:"tag"`
	Date string    `json:"date"`

	SerumCreatinine string `json:"serumCreatinine"`
	EGFR            string `json:"egfr"`
	BloodUrea       string `json:"bloodUrea"`
	SerumSodium     string `json:"serumSodium"`
	SerumPotassium  string `json:"serumPotassium"`
	Hemoglobin      string `json:"hemoglobin"`
	WBC             string `json:"wbc"`
	Platelets       string `json:"platelets"`
	TacrolimusLevel string `json:"tacrolimusLevel"`
	UrineProtein    string `json:"urineProtein"`
	FastingGlucose  string `json:"fastingGlucose"`
	HbA1c           string `json:"hba1c"`
	LipidProfile    string `json:"lipidProfile"`
	Notes           string `json:"notes"`
}

// Store keeps panels in memory, grouped per patient. Safe for concurrent
// use by request handlers.
type Store struct {
	mu      sync.RWMutex
	records map[string][]*Record
}

func NewStore() *Store {
	return &Store{records: make(map[string][]*Record)}
}

func (s *Store) Add(rec *Record) error {
	if rec.PHN == "" {
		return fmt.Errorf("phn is required")
	}
	if rec.Date == "" {
		return fmt.Errorf("date is required")
	}
	if rec.Tag != TagFrequent && rec.Tag != TagAnnual {
		return fmt.Errorf("invalid tag: %s", rec.Tag)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.New()
	cp := *rec
	s.records[rec.PHN] = append(s.records[rec.PHN], &cp)
	return nil
}

// ListByPHN returns all of a patient's panels, newest first.
func (s *Store) ListByPHN(phn string) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.records[phn])
}

// Recent returns the n most recent panels carrying the given tag, newest
// first. n <= 0 returns an empty slice.
func (s *Store) Recent(phn, tag string, n int) []*Record {
	if n <= 0 {
		return []*Record{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tagged []*Record
	for _, rec := range s.records[phn] {
		if rec.Tag == tag {
			tagged = append(tagged, rec)
		}
	}
	tagged = sortedCopy(tagged)
	if len(tagged) > n {
		tagged = tagged[:n]
	}
	return tagged
}

func sortedCopy(recs []*Record) []*Record {
	out := make([]*Record, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
