package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrImageRequired = errors.New("image is required")
var ErrImageType = errors.New("only jpeg, jpg, png, webp or avif images are allowed")
var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

// Post is a published blog entry. Image holds the stored filename of the
// uploaded picture, served statically under /uploads. Likes holds the IDs
// of users who currently like the post.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Year        string    `json:"year"`
	Image       string    `json:"image"`
	Likes       []string  `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
