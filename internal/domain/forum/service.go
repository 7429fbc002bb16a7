package forum

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carelink/carelink/internal/domain/apperr"
)

type Service struct {
	posts Repository
}

func NewService(posts Repository) *Service {
	return &Service{posts: posts}
}

var validPostStatuses = map[string]bool{
	PostPending:  true,
	PostApproved: true,
}

// CreatePost accepts a new post into the moderation queue.
func (s *Service) CreatePost(ctx context.Context, p *Post) error {
	if strings.TrimSpace(p.Title) == "" {
		return apperr.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(p.Body) == "" {
		return apperr.NewValidationError("body", "body is required")
	}
	p.Status = PostPending
	return s.posts.CreatePost(ctx, p)
}

// ListApproved is the public feed.
func (s *Service) ListApproved(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	return s.posts.ListPosts(ctx, PostApproved, limit, offset)
}

// ListPending is the moderation queue.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	return s.posts.ListPosts(ctx, PostPending, limit, offset)
}

// Moderate sets a post's moderation state.
func (s *Service) Moderate(ctx context.Context, id uuid.UUID, status string) (*Post, error) {
	if !validPostStatuses[status] {
		return nil, apperr.NewValidationError("status", "invalid status: "+status)
	}
	if _, err := s.posts.GetPost(ctx, id); err != nil {
		return nil, apperr.NewNotFoundError("post", id.String())
	}
	if err := s.posts.SetPostStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.posts.GetPost(ctx, id)
}

func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, err := s.posts.GetPost(ctx, id); err != nil {
		return apperr.NewNotFoundError("post", id.String())
	}
	return s.posts.DeletePost(ctx, id)
}

// AddComment attaches a comment to an approved post. Commenting on a pending
// post is rejected so unreviewed content cannot gather a thread.
func (s *Service) AddComment(ctx context.Context, c *Comment) error {
	if strings.TrimSpace(c.Body) == "" {
		return apperr.NewValidationError("body", "body is required")
	}
	p, err := s.posts.GetPost(ctx, c.PostID)
	if err != nil {
		return apperr.NewNotFoundError("post", c.PostID.String())
	}
	if p.Status != PostApproved {
		return apperr.NewPreconditionError("post", "comments are only allowed on approved posts")
	}
	return s.posts.CreateComment(ctx, c)
}

func (s *Service) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*Comment, int, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, 0, apperr.NewNotFoundError("post", postID.String())
	}
	return s.posts.ListComments(ctx, postID, limit, offset)
}
