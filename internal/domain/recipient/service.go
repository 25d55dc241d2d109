package recipient

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

func (s *Service) Create(ctx context.Context, partial map[string]any) (*AssessmentRecord, error) {
	rec := Normalize(partial)
	if rec.PHN == "" {
		return nil, fmt.Errorf("phn is required")
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces an existing record's questionnaire body. An update always
// targets a known id; there is no upsert path.
func (s *Service) Update(ctx context.Context, id uuid.UUID, partial map[string]any) (*AssessmentRecord, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := Normalize(partial)
	if rec.PHN == "" {
		return nil, fmt.Errorf("phn is required")
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("name is required")
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

func (s *Service) List(ctx context.Context, limit, offset int) ([]*AssessmentRecord, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) LatestByPHN(ctx context.Context, phn string) (*AssessmentRecord, error) {
	if phn == "" {
		return nil, fmt.Errorf("phn is required")
	}
	return s.repo.LatestByPHN(ctx, phn)
}
