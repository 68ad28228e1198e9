package validation

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/models"
)

// ParseID validates an article_id or comment_id path parameter.
// Identifiers are SERIAL columns, so anything outside int32 is rejected here
// rather than by the database.
func ParseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apperror.InvalidType(apperror.MsgInvalidDataType)
	}
	return int(id), nil
}

// ParseSortBy validates a sort_by query value against the column allowlist
func ParseSortBy(raw string) (models.SortColumn, error) {
	col := models.SortColumn(raw)
	if !models.ValidSortColumns[col] {
		return "", apperror.InvalidQuery(apperror.MsgInvalidSortBy)
	}
	return col, nil
}

// ParseOrder validates an order query value. Matching is case-sensitive.
func ParseOrder(raw string) (models.SortOrder, error) {
	switch order := models.SortOrder(raw); order {
	case models.OrderAsc, models.OrderDesc:
		return order, nil
	default:
		return "", apperror.InvalidQuery(apperror.MsgInvalidOrder)
	}
}

// ArticleQuery builds a validated article listing query. Absent parameters
// take their defaults; present ones, even empty, must pass the allowlists.
func ArticleQuery(sortBy string, hasSortBy bool, order string, hasOrder bool, topic string) (models.ArticleQuery, error) {
	q := models.ArticleQuery{
		SortBy: models.DefaultSortColumn,
		Order:  models.DefaultSortOrder,
		Topic:  topic,
	}

	if hasSortBy {
		col, err := ParseSortBy(sortBy)
		if err != nil {
			return q, err
		}
		q.SortBy = col
	}

	if hasOrder {
		o, err := ParseOrder(order)
		if err != nil {
			return q, err
		}
		q.Order = o
	}

	return q, nil
}

// ValidateNewComment checks that username and body are both present, non-empty strings
func ValidateNewComment(req *models.NewCommentRequest) (models.NewComment, error) {
	username, usernamePresent, usernameIsString := stringField(req.Username)
	body, bodyPresent, bodyIsString := stringField(req.Body)

	if !usernamePresent || !bodyPresent {
		return models.NewComment{}, apperror.MissingField(apperror.MsgMissingComment)
	}
	if !usernameIsString || !bodyIsString {
		return models.NewComment{}, apperror.InvalidType(apperror.MsgInvalidComment)
	}

	return models.NewComment{Username: username, Body: body}, nil
}

// ValidateVoteUpdate extracts the signed vote delta from a PATCH body
func ValidateVoteUpdate(req *models.VoteUpdateRequest) (int, error) {
	if req.IncVotes.IsNull() {
		return 0, apperror.MissingField(apperror.MsgIncVotesRequired)
	}

	// Decoding into float64 rejects strings, booleans, objects and arrays
	var n float64
	if err := json.Unmarshal(req.IncVotes.Raw, &n); err != nil {
		return 0, apperror.InvalidType(apperror.MsgIncVotesNumber)
	}

	// votes is an INTEGER column; fractional or huge deltas are a type error
	delta, err := strconv.ParseInt(string(bytes.TrimSpace(req.IncVotes.Raw)), 10, 32)
	if err != nil {
		return 0, apperror.InvalidType(apperror.MsgInvalidDataType)
	}

	return int(delta), nil
}

// stringField decodes a raw body value. An absent, null or empty-string value
// counts as not present.
func stringField(f models.RawField) (value string, present bool, isString bool) {
	if f.IsNull() {
		return "", false, false
	}

	if err := json.Unmarshal(f.Raw, &value); err != nil {
		return "", true, false
	}
	if value == "" {
		return "", false, true
	}

	return value, true, true
}
