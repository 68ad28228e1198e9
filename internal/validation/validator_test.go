package validation

import (
	"encoding/json"
	"testing"

	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFailure(t *testing.T, err error, kind apperror.Kind, msg string) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected classified error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, msg, appErr.Msg)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "positive", raw: "1", want: 1},
		{name: "large valid", raw: "2147483647", want: 2147483647},
		{name: "negative parses", raw: "-3", want: -3},
		{name: "word", raw: "banana", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "decimal", raw: "1.5", wantErr: true},
		{name: "trailing garbage", raw: "12abc", wantErr: true},
		{name: "beyond int32", raw: "99999999999", wantErr: true},
		{name: "sql fragment", raw: "1;DROP TABLE articles", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				assertFailure(t, err, apperror.KindInvalidType, "Invalid data type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortBy(t *testing.T) {
	for col := range models.ValidSortColumns {
		t.Run("allowed "+string(col), func(t *testing.T) {
			got, err := ParseSortBy(string(col))
			require.NoError(t, err)
			assert.Equal(t, col, got)
		})
	}

	for _, raw := range []string{"", "body", "VOTES", "votes DESC", "articles.votes", "1", "article_img_url", "votes; DROP TABLE users"} {
		t.Run("rejected "+raw, func(t *testing.T) {
			_, err := ParseSortBy(raw)
			assertFailure(t, err, apperror.KindInvalidQuery, "Invalid sort_by query")
		})
	}
}

func TestParseOrder(t *testing.T) {
	got, err := ParseOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, models.OrderAsc, got)

	got, err = ParseOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, models.OrderDesc, got)

	// Case-sensitive on purpose
	for _, raw := range []string{"ASC", "Desc", "", "ascending", "up"} {
		_, err := ParseOrder(raw)
		assertFailure(t, err, apperror.KindInvalidQuery, "Invalid order query")
	}
}

func TestArticleQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := ArticleQuery("", false, "", false, "")
		require.NoError(t, err)
		assert.Equal(t, models.ArticleQuery{SortBy: models.SortByCreatedAt, Order: models.OrderDesc}, q)
	})

	t.Run("explicit values and topic", func(t *testing.T) {
		q, err := ArticleQuery("votes", true, "asc", true, "cats")
		require.NoError(t, err)
		assert.Equal(t, models.ArticleQuery{SortBy: models.SortByVotes, Order: models.OrderAsc, Topic: "cats"}, q)
	})

	t.Run("present but empty sort_by is invalid", func(t *testing.T) {
		_, err := ArticleQuery("", true, "", false, "")
		assertFailure(t, err, apperror.KindInvalidQuery, "Invalid sort_by query")
	})

	t.Run("sort_by checked before order", func(t *testing.T) {
		_, err := ArticleQuery("nope", true, "sideways", true, "")
		assertFailure(t, err, apperror.KindInvalidQuery, "Invalid sort_by query")
	})

	t.Run("invalid order", func(t *testing.T) {
		_, err := ArticleQuery("title", true, "sideways", true, "")
		assertFailure(t, err, apperror.KindInvalidQuery, "Invalid order query")
	})
}

func decodeComment(t *testing.T, body string) *models.NewCommentRequest {
	t.Helper()
	var req models.NewCommentRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestValidateNewComment(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind apperror.Kind
		wantMsg  string
	}{
		{name: "valid", body: `{"username":"butter_bridge","body":"I've been amazed!"}`},
		{name: "extra fields ignored", body: `{"username":"butter_bridge","body":"hi","votes":100}`},
		{name: "empty object", body: `{}`, wantKind: apperror.KindMissingField, wantMsg: "Missing required fields: username and body"},
		{name: "missing body", body: `{"username":"butter_bridge"}`, wantKind: apperror.KindMissingField, wantMsg: "Missing required fields: username and body"},
		{name: "missing username", body: `{"body":"hello"}`, wantKind: apperror.KindMissingField, wantMsg: "Missing required fields: username and body"},
		{name: "null body", body: `{"username":"butter_bridge","body":null}`, wantKind: apperror.KindMissingField, wantMsg: "Missing required fields: username and body"},
		{name: "empty string body", body: `{"username":"butter_bridge","body":""}`, wantKind: apperror.KindMissingField, wantMsg: "Missing required fields: username and body"},
		{name: "numeric body", body: `{"username":"butter_bridge","body":42}`, wantKind: apperror.KindInvalidType, wantMsg: "Invalid data type for username or body"},
		{name: "array username", body: `{"username":["a"],"body":"hello"}`, wantKind: apperror.KindInvalidType, wantMsg: "Invalid data type for username or body"},
		{name: "missing wins over wrong type", body: `{"username":7}`, wantKind: apperror.KindMissingField, wantMsg: "Missing required fields: username and body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateNewComment(decodeComment(t, tt.body))
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, "butter_bridge", got.Username)
				assert.NotEmpty(t, got.Body)
				return
			}
			assertFailure(t, err, tt.wantKind, tt.wantMsg)
		})
	}
}

func TestValidateVoteUpdate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     int
		wantKind apperror.Kind
		wantMsg  string
	}{
		{name: "positive", body: `{"inc_votes":1}`, want: 1},
		{name: "negative", body: `{"inc_votes":-100}`, want: -100},
		{name: "zero", body: `{"inc_votes":0}`, want: 0},
		{name: "missing", body: `{}`, wantKind: apperror.KindMissingField, wantMsg: "inc_votes is required"},
		{name: "null", body: `{"inc_votes":null}`, wantKind: apperror.KindMissingField, wantMsg: "inc_votes is required"},
		{name: "string", body: `{"inc_votes":"one"}`, wantKind: apperror.KindInvalidType, wantMsg: "inc_votes must be a number"},
		{name: "numeric string", body: `{"inc_votes":"1"}`, wantKind: apperror.KindInvalidType, wantMsg: "inc_votes must be a number"},
		{name: "boolean", body: `{"inc_votes":true}`, wantKind: apperror.KindInvalidType, wantMsg: "inc_votes must be a number"},
		{name: "fraction", body: `{"inc_votes":1.5}`, wantKind: apperror.KindInvalidType, wantMsg: "Invalid data type"},
		{name: "overflow", body: `{"inc_votes":1e12}`, wantKind: apperror.KindInvalidType, wantMsg: "Invalid data type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req models.VoteUpdateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, err := ValidateVoteUpdate(&req)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			assertFailure(t, err, tt.wantKind, tt.wantMsg)
		})
	}
}
