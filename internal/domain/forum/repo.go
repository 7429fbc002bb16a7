package forum

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	SetPostStatus(ctx context.Context, id uuid.UUID, status string) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, status string, limit, offset int) ([]*Post, int, error)
	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*Comment, int, error)
}
