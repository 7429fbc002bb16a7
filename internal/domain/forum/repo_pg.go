package forum

import (
	"context"

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

type forumRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &forumRepoPG{pool: pool}
}

func (r *forumRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const postCols = `id, author_id, title, body, status, created_at, updated_at`

func (r *forumRepoPG) scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *forumRepoPG) CreatePost(ctx context.Context, p *Post) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO forum_post (id, author_id, title, body, status)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.AuthorID, p.Title, p.Body, p.Status)
	return err
}

func (r *forumRepoPG) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	return r.scanPost(r.conn(ctx).QueryRow(ctx, `SELECT `+postCols+` FROM forum_post WHERE id = $1`, id))
}

func (r *forumRepoPG) SetPostStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE forum_post SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *forumRepoPG) DeletePost(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM forum_post WHERE id = $1`, id)
	return err
}

func (r *forumRepoPG) ListPosts(ctx context.Context, status string, limit, offset int) ([]*Post, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM forum_post WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+postCols+` FROM forum_post WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Post
	for rows.Next() {
		p, err := r.scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *forumRepoPG) CreateComment(ctx context.Context, c *Comment) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO forum_comment (id, post_id, author_id, body)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.PostID, c.AuthorID, c.Body)
	return err
}

func (r *forumRepoPG) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*Comment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM forum_comment WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, post_id, author_id, body, created_at FROM forum_comment WHERE post_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &c)
	}
	return items, total, nil
}
