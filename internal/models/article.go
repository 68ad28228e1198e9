package models

import (
	"time"
)

// DefaultArticleImgURL is assigned by the database when an article is created without an image
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article represents a single article including its body and derived comment count
type Article struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body" db:"body"`
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"` // Computed, not stored
}

// ArticleSummary is the list representation of an article (no body)
type ArticleSummary struct {
	ArticleID     int       `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

// ArticleSeed represents an article record from a fixture file
type ArticleSeed struct {
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url,omitempty"`
}

// VoteUpdateRequest is the PATCH /api/articles/:article_id body.
// IncVotes stays raw so that absence and wrong type can be told apart.
type VoteUpdateRequest struct {
	IncVotes RawField `json:"inc_votes"`
}
