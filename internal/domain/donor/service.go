package donor

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

// Create normalizes a possibly-partial submission into the canonical record
// shape and stores it. New donors start as available unless a valid status
// was submitted with the form.
func (s *Service) Create(ctx context.Context, partial map[string]any) (*AssessmentRecord, error) {
	rec := Normalize(partial)
	if rec.PHN == "" {
		return nil, fmt.Errorf("phn is required")
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if rec.Status == "" {
		rec.Status = StatusAvailable
	}
	if !validStatuses[rec.Status] {
		return nil, fmt.Errorf("invalid status: %s", rec.Status)
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the questionnaire body of an existing record. Status and
// assignment are managed through UpdateStatus and never change here.
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
	rec.Status = existing.Status
	rec.AssignedRecipient = existing.AssignedRecipient
	rec.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*AssessmentRecord, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.List(ctx, status, limit, offset)
}

func (s *Service) LatestByPHN(ctx context.Context, phn string) (*AssessmentRecord, error) {
	if phn == "" {
		return nil, fmt.Errorf("phn is required")
	}
	return s.repo.LatestByPHN(ctx, phn)
}

func (s *Service) SearchByName(ctx context.Context, name string, limit, offset int) ([]*AssessmentRecord, int, error) {
	return s.repo.SearchByName(ctx, name, limit, offset)
}

// UpdateStatus moves a donor through the assignment workflow. Assigning
// requires naming the recipient; leaving the assigned state clears it.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status, recipientPhn string) (*AssessmentRecord, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(rec.Status, status) {
		return nil, fmt.Errorf("cannot move donor from %s to %s", rec.Status, status)
	}
	if status == StatusAssigned {
		if recipientPhn == "" {
			return nil, fmt.Errorf("recipient phn is required to assign a donor")
		}
		rec.AssignedRecipient = recipientPhn
	} else {
		rec.AssignedRecipient = ""
	}
	rec.Status = status
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
