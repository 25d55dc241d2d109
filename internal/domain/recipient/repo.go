package recipient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("recipient assessment not found")

// Repository stores recipient assessment records.
type Repository interface {
	Create(ctx context.Context, rec *AssessmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error)
	Update(ctx context.Context, rec *AssessmentRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*AssessmentRecord, int, error)
	LatestByPHN(ctx context.Context, phn string) (*AssessmentRecord, error)
}
