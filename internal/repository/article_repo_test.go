package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/news-aggregator-api/internal/database"
	"github.com/news-aggregator-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleCols = []string{
	"article_id", "author", "title", "body", "topic",
	"created_at", "votes", "article_img_url", "comment_count",
}

var summaryCols = []string{
	"article_id", "author", "title", "topic",
	"created_at", "votes", "article_img_url", "comment_count",
}

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return database.Wrap(sqlDB, zerolog.Nop()), mock
}

func TestBuildListQuery_OrderByAllowlist(t *testing.T) {
	tests := []struct {
		sortBy models.SortColumn
		order  models.SortOrder
		want   string
	}{
		{models.SortByAuthor, models.OrderAsc, "ORDER BY articles.author ASC"},
		{models.SortByTitle, models.OrderDesc, "ORDER BY articles.title DESC"},
		{models.SortByArticleID, models.OrderAsc, "ORDER BY articles.article_id ASC"},
		{models.SortByTopic, models.OrderDesc, "ORDER BY articles.topic DESC"},
		{models.SortByCreatedAt, models.OrderDesc, "ORDER BY articles.created_at DESC"},
		{models.SortByVotes, models.OrderAsc, "ORDER BY articles.votes ASC"},
		{models.SortByCommentCount, models.OrderDesc, "ORDER BY comment_count DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			query, args, err := buildListQuery(models.ArticleQuery{SortBy: tt.sortBy, Order: tt.order})
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(query, tt.want), "query %q", query)
			assert.NotContains(t, query, "WHERE")
			assert.NotContains(t, query, "articles.body")
			assert.Empty(t, args)
		})
	}
}

func TestBuildListQuery_TopicIsBound(t *testing.T) {
	query, args, err := buildListQuery(models.ArticleQuery{
		SortBy: models.SortByCreatedAt,
		Order:  models.OrderDesc,
		Topic:  "cats' OR 1=1 --",
	})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE articles.topic = $1")
	assert.NotContains(t, query, "cats")
	assert.Equal(t, []interface{}{"cats' OR 1=1 --"}, args)
}

func TestBuildListQuery_RejectsUnlistedKeys(t *testing.T) {
	_, _, err := buildListQuery(models.ArticleQuery{SortBy: "body; DROP TABLE articles", Order: models.OrderAsc})
	assert.ErrorIs(t, err, ErrUnknownSort)

	_, _, err = buildListQuery(models.ArticleQuery{SortBy: models.SortByVotes, Order: "ASC"})
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestArticleRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	created := time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE articles.article_id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(articleCols).
			AddRow(1, "butter_bridge", "Living in the shadow of a great man", "I find this existence challenging", "mitch", created, 100, models.DefaultArticleImgURL, 11))

	article, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, 1, article.ArticleID)
	assert.Equal(t, "mitch", article.Topic)
	assert.Equal(t, 100, article.Votes)
	assert.Equal(t, 11, article.CommentCount)
	assert.Equal(t, created, article.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE articles.article_id = $1")).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows(articleCols))

	article, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, article)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_List_WithTopic(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE articles.topic = $1 GROUP BY articles.article_id ORDER BY articles.votes ASC")).
		WithArgs("cats").
		WillReturnRows(sqlmock.NewRows(summaryCols).
			AddRow(5, "rogersop", "UNCOVERED: catspiracy to bring down democracy", "cats", now, 0, models.DefaultArticleImgURL, 2))

	articles, err := repo.List(context.Background(), models.ArticleQuery{
		SortBy: models.SortByVotes,
		Order:  models.OrderAsc,
		Topic:  "cats",
	})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 5, articles[0].ArticleID)
	assert.Equal(t, 2, articles[0].CommentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY articles.created_at DESC")).
		WillReturnRows(sqlmock.NewRows(summaryCols))

	articles, err := repo.List(context.Background(), models.ArticleQuery{
		SortBy: models.DefaultSortColumn,
		Order:  models.DefaultSortOrder,
	})
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestArticleRepo_List_InvalidSortNeverQueries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	_, err := repo.List(context.Background(), models.ArticleQuery{SortBy: "password", Order: models.OrderAsc})
	assert.ErrorIs(t, err, ErrUnknownSort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_IncrementVotes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)
	created := time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE articles SET votes = votes + $1 WHERE article_id = $2")).
		WithArgs(-1, 1).
		WillReturnRows(sqlmock.NewRows(articleCols).
			AddRow(1, "butter_bridge", "Living in the shadow of a great man", "body", "mitch", created, 99, models.DefaultArticleImgURL, 11))

	article, err := repo.IncrementVotes(context.Background(), 1, -1)
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, 99, article.Votes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_IncrementVotes_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE articles SET votes = votes + $1")).
		WithArgs(5, 999).
		WillReturnRows(sqlmock.NewRows(articleCols))

	article, err := repo.IncrementVotes(context.Background(), 999, 5)
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestArticleRepo_DriverErrorPropagates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)")).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "57014", Message: "canceling statement due to user request"})

	_, err := repo.Exists(context.Background(), 1)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("57014"), pqErr.Code)
}

func TestArticleRepo_ExistsAndCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	exists, err := repo.Exists(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
