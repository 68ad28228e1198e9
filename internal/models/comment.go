package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	ArticleID int       `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentSeed represents a comment record from a fixture file
type CommentSeed struct {
	ArticleID int       `json:"article_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentRequest is the POST /api/articles/:article_id/comments body
type NewCommentRequest struct {
	Username RawField `json:"username"`
	Body     RawField `json:"body"`
}

// NewComment is a validated comment ready for insertion
type NewComment struct {
	Username string
	Body     string
}
