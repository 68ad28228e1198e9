package models

import (
	"bytes"
	"encoding/json"
)

// RawField holds an undecoded JSON body value and whether its key was present
type RawField struct {
	Raw     json.RawMessage
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *RawField) UnmarshalJSON(b []byte) error {
	f.Present = true
	f.Raw = append(f.Raw[:0], b...)
	return nil
}

// IsNull reports whether the field was absent or an explicit JSON null
func (f RawField) IsNull() bool {
	return !f.Present || bytes.Equal(bytes.TrimSpace(f.Raw), []byte("null"))
}

// SortColumn is a validated article sort key
type SortColumn string

const (
	SortByAuthor       SortColumn = "author"
	SortByTitle        SortColumn = "title"
	SortByArticleID    SortColumn = "article_id"
	SortByTopic        SortColumn = "topic"
	SortByCreatedAt    SortColumn = "created_at"
	SortByVotes        SortColumn = "votes"
	SortByCommentCount SortColumn = "comment_count"
)

// ValidSortColumns defines the allowed sort_by values
var ValidSortColumns = map[SortColumn]bool{
	SortByAuthor:       true,
	SortByTitle:        true,
	SortByArticleID:    true,
	SortByTopic:        true,
	SortByCreatedAt:    true,
	SortByVotes:        true,
	SortByCommentCount: true,
}

// SortOrder is a validated sort direction
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Defaults applied when sort_by or order are not supplied
const (
	DefaultSortColumn = SortByCreatedAt
	DefaultSortOrder  = OrderDesc
)

// ArticleQuery is a validated GET /api/articles request
type ArticleQuery struct {
	SortBy SortColumn
	Order  SortOrder
	Topic  string // empty means no filter
}
