package screening

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists screenings into one table per kind. Screenings are
// immutable audit records: there is no update or delete.
type Repository interface {
	Create(ctx context.Context, kind string, s *Screening) error
	GetByID(ctx context.Context, kind string, id uuid.UUID) (*Screening, error)
	List(ctx context.Context, kind string, limit, offset int) ([]*Screening, int, error)
}
