package patient

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a patient on first contact. PHNs are unique; registering
// an existing one fails rather than silently overwriting demographics.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.PHN == "" {
		return fmt.Errorf("phn is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	_, err := s.repo.GetByPHN(ctx, p.PHN)
	if err == nil {
		return fmt.Errorf("patient %s already registered", p.PHN)
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetByPHN(ctx context.Context, phn string) (*Patient, error) {
	if phn == "" {
		return nil, fmt.Errorf("phn is required")
	}
	return s.repo.GetByPHN(ctx, phn)
}

// UpdateDemographics rewrites a patient's demographic fields. The PHN itself
// never changes.
func (s *Service) UpdateDemographics(ctx context.Context, p *Patient) error {
	if p.PHN == "" {
		return fmt.Errorf("phn is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchByName(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.SearchByName(ctx, name, limit, offset)
}
