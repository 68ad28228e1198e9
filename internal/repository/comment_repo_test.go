package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/news-aggregator-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commentCols = []string{"comment_id", "article_id", "author", "body", "votes", "created_at"}

func TestCommentRepo_ListByArticle_NewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)
	newer := time.Date(2020, 11, 3, 21, 0, 0, 0, time.UTC)
	older := time.Date(2020, 4, 6, 12, 17, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE article_id = $1 ORDER BY created_at DESC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(commentCols).
			AddRow(5, 1, "icellusedkars", "I hate streaming noses", 0, newer).
			AddRow(2, 1, "butter_bridge", "The beautiful thing about treasure is that it exists.", 14, older))

	comments, err := repo.ListByArticle(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, 5, comments[0].CommentID)
	assert.Equal(t, 1, comments[1].ArticleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepo_ListByArticle_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(commentCols))

	comments, err := repo.ListByArticle(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestCommentRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (article_id, author, body) VALUES ($1, $2, $3)")).
		WithArgs(2, "lurker", "first!").
		WillReturnRows(sqlmock.NewRows(commentCols).AddRow(19, 2, "lurker", "first!", 0, now))

	comment, err := repo.Create(context.Background(), 2, models.NewComment{Username: "lurker", Body: "first!"})
	require.NoError(t, err)
	assert.Equal(t, 19, comment.CommentID)
	assert.Equal(t, 2, comment.ArticleID)
	assert.Equal(t, "lurker", comment.Author)
	assert.Equal(t, 0, comment.Votes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE comment_id = $1")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE comment_id = $1")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepo_Delete_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepo(db)
	boom := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
		WithArgs(1).
		WillReturnError(boom)

	_, err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("rogersop").
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}).
			AddRow("rogersop", "paul", "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}))

	user, err := repo.GetByUsername(context.Background(), "rogersop")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "paul", user.Name)

	user, err = repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTopicRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT slug, description FROM topics")).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "description"}).
			AddRow("mitch", "The man, the Mitch, the legend").
			AddRow("cats", "Not dogs"))

	topics, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "cats", Description: "Not dogs"},
	}, topics)
}

func TestTopicRepo_BatchInsert_UsesCopy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTopicRepo(db)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "topics"`))
	prep.ExpectExec().WithArgs("mitch", "The man, the Mitch, the legend").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("paper", "what books are made of").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	inserted, err := repo.BatchInsert(context.Background(), []*models.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "paper", Description: "what books are made of"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicRepo_BatchInsert_RowErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTopicRepo(db)
	boom := errors.New("copy failed")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "topics"`))
	prep.ExpectExec().WithArgs("mitch", "").WillReturnError(boom)
	mock.ExpectRollback()

	inserted, err := repo.BatchInsert(context.Background(), []*models.Topic{{Slug: "mitch"}})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchInsert_EmptyIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repos := New(db)
	ctx := context.Background()

	n, err := repos.Topic.BatchInsert(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = repos.User.BatchInsert(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = repos.Article.BatchInsert(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = repos.Comment.BatchInsert(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
