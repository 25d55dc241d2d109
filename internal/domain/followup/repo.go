package followup

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("follow-up note not found")

// Repository stores follow-up notes. There is no update or delete; the list
// only ever grows.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	ListByPHN(ctx context.Context, phn string, f Filter) ([]*Note, error)
}
