package donor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("donor assessment not found")

// Repository stores donor assessment records.
type Repository interface {
	Create(ctx context.Context, rec *AssessmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error)
	Update(ctx context.Context, rec *AssessmentRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status string, limit, offset int) ([]*AssessmentRecord, int, error)
	LatestByPHN(ctx context.Context, phn string) (*AssessmentRecord, error)
	SearchByName(ctx context.Context, name string, limit, offset int) ([]*AssessmentRecord, int, error)
}
