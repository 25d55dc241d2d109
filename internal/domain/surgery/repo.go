package surgery

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("surgery record not found")

// Repository stores transplant surgery records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Record, int, error)
	ListByPHN(ctx context.Context, phn string) ([]*Record, error)
	LatestByPHN(ctx context.Context, phn string) (*Record, error)
	ExistsForPHN(ctx context.Context, phn string) (bool, error)
}
