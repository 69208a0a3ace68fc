package ports

import (
	"context"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

type CommentService interface {
	Add(ctx context.Context, postID, userID, text string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]CommentItem, error)
}
