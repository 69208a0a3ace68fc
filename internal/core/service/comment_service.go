package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// CommentService implements commenting on posts.
type CommentService struct {
	repo   ports.CommentRepository
	posts  ports.PostRepository
	logger zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, posts ports.PostRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, posts: posts, logger: logger}
}

func (s *CommentService) Add(ctx context.Context, postID, userID, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrCommentRequired
	}

	// the target post must exist before the comment is written
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:    postID,
		UserID:    userID,
		Comment:   cleanInput(text),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", postID).Str("user_id", userID).Msg("comment added")
	return created, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]ports.CommentItem, error) {
	return s.repo.ListByPost(ctx, postID)
}
