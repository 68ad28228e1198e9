package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-aggregator-api/internal/apperror"
	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/service"
	"github.com/news-aggregator-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles?sort_by=&order=&topic=
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	sortBy, hasSortBy := c.GetQuery("sort_by")
	order, hasOrder := c.GetQuery("order")

	q, err := validation.ArticleQuery(sortBy, hasSortBy, order, hasOrder, c.Query("topic"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	articles, err := h.services.Article.ListArticles(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	article, err := h.services.Article.GetArticleByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// UpdateArticleVotes handles PATCH /api/articles/:article_id
func (h *ArticleHandler) UpdateArticleVotes(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.VoteUpdateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	delta, err := validation.ValidateVoteUpdate(&req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	article, err := h.services.Article.UpdateArticleVotes(c.Request.Context(), id, delta)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// bindOptionalJSON decodes a JSON body. An empty body leaves dst untouched so
// that field validation can report what is missing.
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.Wrap(apperror.KindInvalidType, apperror.MsgInvalidDataType, err)
	}
	return nil
}
