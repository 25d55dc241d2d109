package surgery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create normalizes and stores a transplant record. The signer field gates
// submission: a record nobody signed off on is rejected outright.
func (s *Service) Create(ctx context.Context, partial map[string]any) (*Record, error) {
	rec := Normalize(partial)
	if err := s.validate(rec); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, partial map[string]any) (*Record, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := Normalize(partial)
	if err := s.validate(rec); err != nil {
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPHN(ctx context.Context, phn string) ([]*Record, error) {
	if phn == "" {
		return nil, fmt.Errorf("phn is required")
	}
	return s.repo.ListByPHN(ctx, phn)
}

func (s *Service) LatestByPHN(ctx context.Context, phn string) (*Record, error) {
	if phn == "" {
		return nil, fmt.Errorf("phn is required")
	}
	return s.repo.LatestByPHN(ctx, phn)
}

func (s *Service) ExistsForPHN(ctx context.Context, phn string) (bool, error) {
	if phn == "" {
		return false, fmt.Errorf("phn is required")
	}
	return s.repo.ExistsForPHN(ctx, phn)
}

func (s *Service) validate(rec *Record) error {
	if rec.Patient.PHN == "" {
		return fmt.Errorf("patient phn is required")
	}
	if rec.Patient.Name == "" {
		return fmt.Errorf("patient name is required")
	}
	if rec.Transplant.Date == "" {
		return fmt.Errorf("transplant date is required")
	}
	if rec.Transplant.Surgeon == "" {
		return fmt.Errorf("surgeon is required")
	}
	if rec.Transplant.Unit == "" {
		return fmt.Errorf("transplant unit is required")
	}
	if rec.CompletedBy == "" {
		return fmt.Errorf("completed by is required")
	}
	return nil
}
