package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/repository"
)

// foreignKeyViolation mirrors what PostgreSQL reports when a referenced row is missing
func foreignKeyViolation(constraint string) error {
	return &pq.Error{Code: "23503", Message: "insert or update violates foreign key constraint", Constraint: constraint}
}

// Store links the mock repositories so that joins (comment_count) and
// foreign keys behave the way they do in PostgreSQL
type Store struct {
	Topics   *MockTopicRepository
	Users    *MockUserRepository
	Articles *MockArticleRepository
	Comments *MockCommentRepository
}

// NewStore creates an empty, linked set of mock repositories
func NewStore() *Store {
	s := &Store{
		Topics: NewMockTopicRepository(),
		Users:  NewMockUserRepository(),
	}
	s.Articles = &MockArticleRepository{
		Articles: make(map[int]*models.Article),
		store:    s,
	}
	s.Comments = &MockCommentRepository{
		Comments: make(map[int]*models.Comment),
		Now:      func() time.Time { return time.Now().UTC() },
		store:    s,
	}
	return s
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:   s.Topics,
		Article: s.Articles,
		Comment: s.Comments,
		User:    s.Users,
	}
}

// Pinger satisfies the database health check used by the health service
type Pinger struct {
	Err error
}

func (p *Pinger) HealthCheck(ctx context.Context) error {
	return p.Err
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	mu     sync.RWMutex
	Topics []models.Topic
	Err    error
}

// Verify interface compliance
var _ repository.TopicRepository = (*MockTopicRepository)(nil)

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{Topics: make([]models.Topic, 0)}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(make([]models.Topic, 0, len(m.Topics)), m.Topics...), nil
}

func (m *MockTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.Topics {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Topics), nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range topics {
		m.Topics = append(m.Topics, *t)
	}
	return len(topics), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu    sync.RWMutex
	Users []models.User
	Err   error
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make([]models.User, 0)}
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append(make([]models.User, 0, len(m.Users)), m.Users...), nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.Users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	user, err := m.GetByUsername(ctx, username)
	return user != nil, err
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Users), nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.Users = append(m.Users, *u)
	}
	return len(users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository.
// IDs are assigned sequentially like the SERIAL column.
type MockArticleRepository struct {
	mu       sync.RWMutex
	Articles map[int]*models.Article
	nextID   int
	Err      error

	ListCalls int
	LastQuery models.ArticleQuery

	store *Store
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) withCount(a models.Article) models.Article {
	a.CommentCount = m.store.Comments.countFor(a.ArticleID)
	return a
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	article := m.withCount(*a)
	return &article, nil
}

func (m *MockArticleRepository) List(ctx context.Context, q models.ArticleQuery) ([]models.ArticleSummary, error) {
	m.ListCalls++
	m.LastQuery = q
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := models.ValidSortColumns[q.SortBy]; !ok {
		return nil, repository.ErrUnknownSort
	}
	if q.Order != models.OrderAsc && q.Order != models.OrderDesc {
		return nil, repository.ErrUnknownSort
	}

	m.mu.RLock()
	ids := make([]int, 0, len(m.Articles))
	for id := range m.Articles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	summaries := make([]models.ArticleSummary, 0, len(ids))
	for _, id := range ids {
		a := m.withCount(*m.Articles[id])
		if q.Topic != "" && a.Topic != q.Topic {
			continue
		}
		summaries = append(summaries, models.ArticleSummary{
			ArticleID:     a.ArticleID,
			Author:        a.Author,
			Title:         a.Title,
			Topic:         a.Topic,
			CreatedAt:     a.CreatedAt,
			Votes:         a.Votes,
			ArticleImgURL: a.ArticleImgURL,
			CommentCount:  a.CommentCount,
		})
	}
	m.mu.RUnlock()

	less := summaryLess(q.SortBy)
	sort.SliceStable(summaries, func(i, j int) bool {
		if q.Order == models.OrderDesc {
			return less(summaries[j], summaries[i])
		}
		return less(summaries[i], summaries[j])
	})
	return summaries, nil
}

func summaryLess(col models.SortColumn) func(a, b models.ArticleSummary) bool {
	switch col {
	case models.SortByAuthor:
		return func(a, b models.ArticleSummary) bool { return strings.Compare(a.Author, b.Author) < 0 }
	case models.SortByTitle:
		return func(a, b models.ArticleSummary) bool { return strings.Compare(a.Title, b.Title) < 0 }
	case models.SortByArticleID:
		return func(a, b models.ArticleSummary) bool { return a.ArticleID < b.ArticleID }
	case models.SortByTopic:
		return func(a, b models.ArticleSummary) bool { return strings.Compare(a.Topic, b.Topic) < 0 }
	case models.SortByVotes:
		return func(a, b models.ArticleSummary) bool { return a.Votes < b.Votes }
	case models.SortByCommentCount:
		return func(a, b models.ArticleSummary) bool { return a.CommentCount < b.CommentCount }
	default:
		return func(a, b models.ArticleSummary) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	article := m.withCount(*a)
	return &article, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Articles), nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.ArticleSeed) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, seed := range articles {
		if ok, _ := m.store.Topics.Exists(ctx, seed.Topic); !ok {
			return 0, foreignKeyViolation("articles_topic_fkey")
		}
		if ok, _ := m.store.Users.Exists(ctx, seed.Author); !ok {
			return 0, foreignKeyViolation("articles_author_fkey")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seed := range articles {
		m.nextID++
		imgURL := seed.ArticleImgURL
		if imgURL == "" {
			imgURL = models.DefaultArticleImgURL
		}
		m.Articles[m.nextID] = &models.Article{
			ArticleID:     m.nextID,
			Author:        seed.Author,
			Title:         seed.Title,
			Body:          seed.Body,
			Topic:         seed.Topic,
			CreatedAt:     seed.CreatedAt,
			Votes:         seed.Votes,
			ArticleImgURL: imgURL,
		}
	}
	return len(articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu       sync.RWMutex
	Comments map[int]*models.Comment
	nextID   int
	Now      func() time.Time
	Err      error

	CreateCalls int

	store *Store
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) countFor(articleID int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	comments := make([]models.Comment, 0)
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	m.mu.RUnlock()

	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CommentID > comments[j].CommentID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, articleID int, comment models.NewComment) (*models.Comment, error) {
	m.CreateCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if ok, _ := m.store.Articles.Exists(ctx, articleID); !ok {
		return nil, foreignKeyViolation("comments_article_id_fkey")
	}
	if ok, _ := m.store.Users.Exists(ctx, comment.Username); !ok {
		return nil, foreignKeyViolation("comments_author_fkey")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := &models.Comment{
		CommentID: m.nextID,
		ArticleID: articleID,
		Author:    comment.Username,
		Body:      comment.Body,
		Votes:     0,
		CreatedAt: m.Now(),
	}
	m.Comments[c.CommentID] = c
	created := *c
	return &created, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Comments), nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.CommentSeed) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, seed := range comments {
		if ok, _ := m.store.Articles.Exists(ctx, seed.ArticleID); !ok {
			return 0, foreignKeyViolation("comments_article_id_fkey")
		}
		if ok, _ := m.store.Users.Exists(ctx, seed.Author); !ok {
			return 0, foreignKeyViolation("comments_author_fkey")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seed := range comments {
		m.nextID++
		m.Comments[m.nextID] = &models.Comment{
			CommentID: m.nextID,
			ArticleID: seed.ArticleID,
			Author:    seed.Author,
			Body:      seed.Body,
			Votes:     seed.Votes,
			CreatedAt: seed.CreatedAt,
		}
	}
	return len(comments), nil
}
