package community

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TxRunner runs fn inside a transaction when a database is attached.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	posts    PostRepository
	comments CommentRepository
	inTx     TxRunner
}

func NewService(posts PostRepository, comments CommentRepository, opts ...Option) *Service {
	s := &Service{posts: posts, comments: comments, inTx: passthroughTx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithTxRunner(run TxRunner) Option {
	return func(s *Service) { s.inTx = run }
}

const (
	maxTitleLen = 200
	maxBodyLen  = 5000
)

func (s *Service) CreatePost(ctx context.Context, p *Post) error {
	if p.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(p.Title) > maxTitleLen {
		return fmt.Errorf("title exceeds %d characters", maxTitleLen)
	}
	if p.Body == "" {
		return fmt.Errorf("body is required")
	}
	if len(p.Body) > maxBodyLen {
		return fmt.Errorf("body exceeds %d characters", maxBodyLen)
	}
	if p.Topic == "" {
		p.Topic = TopicGeneral
	}
	return s.posts.Create(ctx, p)
}

func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *Service) ListPosts(ctx context.Context, topic string, limit, offset int) ([]*Post, int, error) {
	return s.posts.List(ctx, topic, limit, offset)
}

// UpdatePost lets the author edit topic, title and body. Empty fields keep
// their current value.
func (s *Service) UpdatePost(ctx context.Context, accountID uuid.UUID, p *Post) (*Post, error) {
	existing, err := s.posts.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing.AccountID != accountID {
		return nil, fmt.Errorf("post does not belong to account")
	}
	if p.Topic != "" {
		existing.Topic = p.Topic
	}
	if p.Title != "" {
		if len(p.Title) > maxTitleLen {
			return nil, fmt.Errorf("title exceeds %d characters", maxTitleLen)
		}
		existing.Title = p.Title
	}
	if p.Body != "" {
		if len(p.Body) > maxBodyLen {
			return nil, fmt.Errorf("body exceeds %d characters", maxBodyLen)
		}
		existing.Body = p.Body
	}
	if err := s.posts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePost removes a post and its comments. Only the author may delete.
func (s *Service) DeletePost(ctx context.Context, accountID, id uuid.UUID) error {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AccountID != accountID {
		return fmt.Errorf("post does not belong to account")
	}
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.comments.DeleteByPost(ctx, id); err != nil {
			return err
		}
		return s.posts.Delete(ctx, id)
	})
}

func (s *Service) AddComment(ctx context.Context, c *Comment) error {
	if c.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if c.Body == "" {
		return fmt.Errorf("body is required")
	}
	if len(c.Body) > maxBodyLen {
		return fmt.Errorf("body exceeds %d characters", maxBodyLen)
	}
	if _, err := s.posts.GetByID(ctx, c.PostID); err != nil {
		return fmt.Errorf("post not found")
	}
	return s.comments.Create(ctx, c)
}

func (s *Service) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*Comment, int, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, 0, fmt.Errorf("post not found")
	}
	return s.comments.ListByPost(ctx, postID, limit, offset)
}

// DeleteComment removes a comment. The comment author or the post author
// may delete it.
func (s *Service) DeleteComment(ctx context.Context, accountID, id uuid.UUID) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AccountID != accountID {
		p, err := s.posts.GetByID(ctx, c.PostID)
		if err != nil || p.AccountID != accountID {
			return fmt.Errorf("comment does not belong to account")
		}
	}
	return s.comments.Delete(ctx, id)
}
