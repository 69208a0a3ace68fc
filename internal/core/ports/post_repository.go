package ports

import (
	"context"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

// PostRepository defines persistence for posts.
//
// ToggleLike must flip the user's membership in the post's likes set as a
// single atomic operation on the document and report the resulting state;
// a read-modify-write here would lose concurrent toggles.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likes int, err error)
}
