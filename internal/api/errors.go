package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/service"
)

const (
	detailUnauthorised       = "Unauthorised"
	detailTokenLimitExceeded = "Token limit exceeded"
	detailUnparseable        = "Unable to process the response received"
	detailProviderFailure    = "Completion provider unavailable"
	detailInternal           = "Internal Server Error"
)

// statusForError maps service errors onto the HTTP status and detail message
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden, detailUnauthorised
	case errors.Is(err, service.ErrTokenLimitExceeded):
		return http.StatusBadRequest, detailTokenLimitExceeded
	case errors.Is(err, service.ErrResponseParse):
		return http.StatusBadRequest, detailUnparseable
	case errors.Is(err, service.ErrProviderFailure):
		return http.StatusBadGateway, detailProviderFailure
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

func abortWithError(c *gin.Context, err error) {
	status, detail := statusForError(err)
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
