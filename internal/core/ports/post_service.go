package ports

import (
	"context"
	"io"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

// PostInput carries the text fields of a post.
type PostInput struct {
	Title       string
	Subtitle    string
	Description string
	Content     string
	Year        string
}

// ImageUpload is an incoming image file, not yet validated or stored.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// ImageStore persists uploaded images and serves as the source for the
// static /uploads route. Save validates type and size before writing and
// returns the stored filename.
type ImageStore interface {
	Save(upload ImageUpload) (string, error)
	Remove(filename string) error
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes_count"`
}

type PostService interface {
	Create(ctx context.Context, input PostInput, image *ImageUpload) (*domain.Post, error)
	Update(ctx context.Context, id string, input PostInput, image *ImageUpload) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error)
}
