package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")
var ErrCommentRequired = errors.New("comment is required")

// Comment is a user comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
