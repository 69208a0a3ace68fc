package ports

import (
	"context"
	"time"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

// CommentItem is a comment joined with its author's public name, as
// rendered in the public comment listing.
type CommentItem struct {
	ID            string    `json:"id"`
	PostID        string    `json:"post_id"`
	UserID        string    `json:"user_id"`
	Comment       string    `json:"comment"`
	AuthorName    string    `json:"author_name"`
	AuthorSurname string    `json:"author_surname"`
	CreatedAt     time.Time `json:"created_at"`
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// ListByPost returns the post's comments newest first.
	ListByPost(ctx context.Context, postID string) ([]CommentItem, error)
}
