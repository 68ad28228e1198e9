package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/news-aggregator-api/internal/apperror"
	"github.com/rs/zerolog"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Msg string `json:"msg"`
}

// errorClassifier maps an error to a response when it recognises it
type errorClassifier func(err error) (status int, msg string, ok bool)

// errorClassifiers run in order; the first that recognises the error wins.
// Anything left over is a 500.
var errorClassifiers = []errorClassifier{
	classifyAppError,
	classifyPostgresError,
}

// classifyAppError passes classified client failures through verbatim.
// Internal failures never expose their message.
func classifyAppError(err error) (int, string, bool) {
	appErr, ok := apperror.As(err)
	if !ok {
		return 0, "", false
	}
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		return status, apperror.MsgInternal, true
	}
	return status, appErr.Msg, true
}

// PostgreSQL error codes with a client-facing meaning
const (
	pqInvalidTextRepresentation = "22P02"
	pqNumericValueOutOfRange    = "22003"
	pqForeignKeyViolation       = "23503"
	pqNotNullViolation          = "23502"
)

// classifyPostgresError is the only place that inspects driver error codes
func classifyPostgresError(err error) (int, string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return 0, "", false
	}

	switch pqErr.Code {
	case pqInvalidTextRepresentation, pqNumericValueOutOfRange:
		return http.StatusBadRequest, apperror.MsgInvalidDataType, true
	case pqForeignKeyViolation:
		// A referenced row vanished between the existence checks and the insert
		return http.StatusNotFound, apperror.MsgNotFound, true
	case pqNotNullViolation:
		return http.StatusBadRequest, "Missing required fields", true
	default:
		return 0, "", false
	}
}

// normalizeError turns any error into a status and a short message
func normalizeError(err error) (int, string) {
	for _, classify := range errorClassifiers {
		if status, msg, ok := classify(err); ok {
			return status, msg
		}
	}
	return http.StatusInternalServerError, apperror.MsgInternal
}

// errorMiddleware answers requests whose handlers recorded an error with c.Error
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := normalizeError(err)

		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", c.GetString(requestIDKey)).
				Str("path", c.Request.URL.Path).
				Msg("Request failed")
		} else {
			log.Debug().
				Err(err).
				Int("status", status).
				Str("path", c.Request.URL.Path).
				Msg("Request rejected")
		}

		c.AbortWithStatusJSON(status, errorResponse{Msg: msg})
	}
}
