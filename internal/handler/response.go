package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// ErrorResponse represents an error response. Fields is populated for
// validation failures only.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []service.FieldError `json:"fields,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}
	c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Bad input - Bad Request
	case errors.Is(err, service.ErrUnknownVehicleClass),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidAdminUserID):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict

	// No price can be produced for the request as given
	case errors.Is(err, service.ErrQuoteUnavailable):
		return http.StatusUnprocessableEntity

	// Retryable server error
	case errors.Is(err, service.ErrReferenceExhausted):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
