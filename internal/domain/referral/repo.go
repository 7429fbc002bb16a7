package referral

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (*Referral, error)
	// RecordConsent flips a pending referral to agreed and routed in one
	// conditional write. It reports false when the referral was no longer
	// pending, so a concurrent second consent loses cleanly.
	RecordConsent(ctx context.Context, id uuid.UUID, region, constituency, facility, contactMethod string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string, services []string) error
	SetAppointment(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListConsented(ctx context.Context, limit, offset int) ([]*Referral, int, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Referral, int, error)
}
