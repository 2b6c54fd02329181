// Package handlers implements the HTTP handlers for the GHXChange API. Each
// handler binds and validates the request, delegates to a service, and maps
// service errors onto HTTP statuses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Neelshah1810/GHXChange/internal/service"
)

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrRoleMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInsufficientFunds), errors.Is(err, service.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPolicyViolation):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as a JSON message with the mapped status.
// Internal errors are masked.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "server error"
	}
	c.JSON(status, gin.H{"message": message})
}
