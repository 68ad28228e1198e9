package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-aggregator-api/internal/models"
	"github.com/news-aggregator-api/internal/service"
	"github.com/news-aggregator-api/internal/validation"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	comments, err := h.services.Comment.ListCommentsByArticle(c.Request.Context(), articleID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment handles POST /api/articles/:article_id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	articleID, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.NewCommentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := validation.ValidateNewComment(&req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.services.Comment.InsertComment(c.Request.Context(), articleID, comment)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": created})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := validation.ParseID(c.Param("comment_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.services.Comment.DeleteCommentByID(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
