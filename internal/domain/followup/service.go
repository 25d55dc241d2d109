package followup

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, n *Note) error {
	if n.PHN == "" {
		return fmt.Errorf("phn is required")
	}
	if n.Date == "" {
		return fmt.Errorf("date is required")
	}
	if n.Text == "" {
		return fmt.Errorf("note text is required")
	}
	return s.repo.Create(ctx, n)
}

// ListByPHN returns a patient's notes in chronological order, optionally
// narrowed by the display filter.
func (s *Service) ListByPHN(ctx context.Context, phn string, f Filter) ([]*Note, error) {
	if phn == "" {
		return nil, fmt.Errorf("phn is required")
	}
	return s.repo.ListByPHN(ctx, phn, f)
}

// Latest returns the chronologically last note for a patient, or nil when
// the patient has none.
func (s *Service) Latest(ctx context.Context, phn string) (*Note, error) {
	notes, err := s.ListByPHN(ctx, phn, Filter{})
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return notes[len(notes)-1], nil
}
