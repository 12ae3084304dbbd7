// Package handlers exposes the REST surface: request binding, the
// {message, data} response envelope and the mapping from service errors
// to HTTP statuses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehulj/noteshare/internal/auth"
	"github.com/mehulj/noteshare/internal/service"
)

// respond writes the success envelope: a human-readable message and a
// data object keyed by resource name.
func respond(c *gin.Context, message string, data gin.H) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

// respondError maps a service failure to its status class. Unrecognized
// errors are 500 with the message surfaced as-is.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"message": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingDetails),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrQueryRequired),
		errors.Is(err, service.ErrSelfShare),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyShared),
		errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
