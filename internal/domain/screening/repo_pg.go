package screening

import (
	"context"
	"fmt"

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

type screeningRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &screeningRepoPG{pool: pool}
}

func (r *screeningRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

var kindTables = map[string]string{
	KindHIV:  "screening_hiv",
	KindGBV:  "screening_gbv",
	KindPrEP: "screening_prep",
	KindSTI:  "screening_sti",
}

func tableFor(kind string) (string, error) {
	t, ok := kindTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown screening kind: %s", kind)
	}
	return t, nil
}

const screeningCols = `id, name, age, phone_number, email, user_id, answers, created_at`

func (r *screeningRepoPG) scanScreening(row pgx.Row, kind string) (*Screening, error) {
	var s Screening
	err := row.Scan(&s.ID, &s.Name, &s.Age, &s.PhoneNumber, &s.Email, &s.UserID, &s.Answers, &s.CreatedAt)
	s.Kind = kind
	return &s, err
}

func (r *screeningRepoPG) Create(ctx context.Context, kind string, s *Screening) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	s.ID = uuid.New()
	s.Kind = kind
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO `+table+` (id, name, age, phone_number, email, user_id, answers)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.Name, s.Age, s.PhoneNumber, s.Email, s.UserID, s.Answers)
	return err
}

func (r *screeningRepoPG) GetByID(ctx context.Context, kind string, id uuid.UUID) (*Screening, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return r.scanScreening(r.conn(ctx).QueryRow(ctx, `SELECT `+screeningCols+` FROM `+table+` WHERE id = $1`, id), kind)
}

func (r *screeningRepoPG) List(ctx context.Context, kind string, limit, offset int) ([]*Screening, int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+screeningCols+` FROM `+table+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Screening
	for rows.Next() {
		s, err := r.scanScreening(rows, kind)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
