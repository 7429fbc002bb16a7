package referral

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink/carelink/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type referralRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &referralRepoPG{pool: pool}
}

func (r *referralRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const referralCols = `id, patient_name, phone_number, email, type, screening_id, user_id,
	referral_message, consent_status, region, constituency, facility, contact_method,
	status, notes, services, appointment_at, referral_date, created_at, updated_at`

func (r *referralRepoPG) scanReferral(row pgx.Row) (*Referral, error) {
	var ref Referral
	err := row.Scan(&ref.ID, &ref.PatientName, &ref.PhoneNumber, &ref.Email, &ref.Type,
		&ref.ScreeningID, &ref.UserID, &ref.ReferralMessage, &ref.ConsentStatus,
		&ref.Region, &ref.Constituency, &ref.Facility, &ref.ContactMethod,
		&ref.Status, &ref.Notes, &ref.Services, &ref.AppointmentAt,
		&ref.ReferralDate, &ref.CreatedAt, &ref.UpdatedAt)
	return &ref, err
}

func (r *referralRepoPG) Create(ctx context.Context, ref *Referral) error {
	ref.ID = uuid.New()
	if ref.ReferralDate.IsZero() {
		ref.ReferralDate = time.Now().UTC()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO referral (id, patient_name, phone_number, email, type, screening_id, user_id,
			referral_message, consent_status, status, notes, services, referral_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		ref.ID, ref.PatientName, ref.PhoneNumber, ref.Email, ref.Type, ref.ScreeningID,
		ref.UserID, ref.ReferralMessage, ref.ConsentStatus, ref.Status, ref.Notes,
		ref.Services, ref.ReferralDate)
	return err
}

func (r *referralRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return r.scanReferral(r.conn(ctx).QueryRow(ctx, `SELECT `+referralCols+` FROM referral WHERE id = $1`, id))
}

// RecordConsent is conditional on consent_status still being pending so that
// two concurrent consents cannot both win; the losing call sees zero rows.
func (r *referralRepoPG) RecordConsent(ctx context.Context, id uuid.UUID, region, constituency, facility, contactMethod string) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE referral
		SET consent_status=$2, region=$3, constituency=$4, facility=$5, contact_method=$6,
			status=$7, updated_at=NOW()
		WHERE id = $1 AND consent_status = $8`,
		id, ConsentAgreed, region, constituency, facility, contactMethod,
		StatusPendingReview, ConsentPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *referralRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string, services []string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE referral
		SET status=$2, notes=COALESCE($3, notes), services=COALESCE($4, services), updated_at=NOW()
		WHERE id = $1`,
		id, status, notes, services)
	return err
}

func (r *referralRepoPG) SetAppointment(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE referral SET appointment_at=$2, updated_at=NOW() WHERE id = $1`,
		id, at)
	return err
}

func (r *referralRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM referral WHERE id = $1`, id)
	return err
}

func (r *referralRepoPG) ListConsented(ctx context.Context, limit, offset int) ([]*Referral, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM referral WHERE consent_status = $1`, ConsentAgreed).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+referralCols+` FROM referral WHERE consent_status = $1 ORDER BY referral_date DESC LIMIT $2 OFFSET $3`,
		ConsentAgreed, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Referral
	for rows.Next() {
		ref, err := r.scanReferral(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ref)
	}
	return items, total, nil
}

func (r *referralRepoPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Referral, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM referral WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+referralCols+` FROM referral WHERE user_id = $1 ORDER BY referral_date DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Referral
	for rows.Next() {
		ref, err := r.scanReferral(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ref)
	}
	return items, total, nil
}
