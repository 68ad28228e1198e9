package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/news-aggregator-api/internal/database"
	"github.com/news-aggregator-api/internal/models"
)

// ErrUnknownSort is returned when a query reaches the repository with a sort
// key that has no allowlisted SQL expression
var ErrUnknownSort = errors.New("sort key is not allowlisted")

// articleSortExpressions maps validated sort keys to the SQL placed in ORDER BY.
// Caller input is never interpolated; only these literals are.
var articleSortExpressions = map[models.SortColumn]string{
	models.SortByAuthor:       "articles.author",
	models.SortByTitle:        "articles.title",
	models.SortByArticleID:    "articles.article_id",
	models.SortByTopic:        "articles.topic",
	models.SortByCreatedAt:    "articles.created_at",
	models.SortByVotes:        "articles.votes",
	models.SortByCommentCount: "comment_count",
}

var sortDirections = map[models.SortOrder]string{
	models.OrderAsc:  "ASC",
	models.OrderDesc: "DESC",
}

const articleColumns = `
	articles.article_id, articles.author, articles.title, articles.body, articles.topic,
	articles.created_at, articles.votes, articles.article_img_url`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// GetByID retrieves an article by ID with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// buildListQuery composes the article listing SQL and its bound arguments
func buildListQuery(q models.ArticleQuery) (string, []interface{}, error) {
	sortExpr, ok := articleSortExpressions[q.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("%w: sort_by %q", ErrUnknownSort, q.SortBy)
	}
	direction, ok := sortDirections[q.Order]
	if !ok {
		return "", nil, fmt.Errorf("%w: order %q", ErrUnknownSort, q.Order)
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`
		SELECT articles.article_id, articles.author, articles.title, articles.topic,
			articles.created_at, articles.votes, articles.article_img_url,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id`)

	if q.Topic != "" {
		args = append(args, q.Topic)
		sb.WriteString(fmt.Sprintf("\n\t\tWHERE articles.topic = $%d", len(args)))
	}

	sb.WriteString("\n\t\tGROUP BY articles.article_id")
	sb.WriteString("\n\t\tORDER BY " + sortExpr + " " + direction)

	return sb.String(), args, nil
}

// List returns article summaries ordered by the validated column and direction.
// Ties keep whatever order the database produces.
func (r *articleRepo) List(ctx context.Context, q models.ArticleQuery) ([]models.ArticleSummary, error) {
	query, args, err := buildListQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]models.ArticleSummary, 0)
	for rows.Next() {
		var a models.ArticleSummary
		err := rows.Scan(
			&a.ArticleID, &a.Author, &a.Title, &a.Topic,
			&a.CreatedAt, &a.Votes, &a.ArticleImgURL, &a.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// IncrementVotes applies a relative vote delta and returns the updated article.
// The increment happens in a single statement so concurrent updates never lose votes.
func (r *articleRepo) IncrementVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	query := `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1
			WHERE article_id = $2
			RETURNING *
		)
		SELECT ` + articleColumns + `,
			(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.article_id)::INT AS comment_count
		FROM updated AS articles
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, delta, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// BatchInsert inserts multiple articles using PostgreSQL COPY.
// article_id is left to the SERIAL sequence, so ids follow slice order.
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.ArticleSeed) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"title", "topic", "author", "body", "created_at", "votes", "article_img_url",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, article := range articles {
		imgURL := article.ArticleImgURL
		if imgURL == "" {
			imgURL = models.DefaultArticleImgURL
		}

		_, err := stmt.ExecContext(ctx,
			article.Title, article.Topic, article.Author, article.Body,
			article.CreatedAt, article.Votes, imgURL,
		)
		if err != nil {
			return 0, err
		}
		inserted++
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

// scanArticle scans a row selected with articleColumns plus comment_count
func scanArticle(row *sql.Row) (*models.Article, error) {
	var article models.Article
	err := row.Scan(
		&article.ArticleID, &article.Author, &article.Title, &article.Body, &article.Topic,
		&article.CreatedAt, &article.Votes, &article.ArticleImgURL, &article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
