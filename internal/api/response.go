package api

import (
	"errors"
	"net/http"

	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform success envelope.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIError is the uniform failure envelope.
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// respond writes the success envelope.
func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// abortWithError writes the failure envelope and stops the chain.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, APIError{
		StatusCode: code,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// respondServiceError maps the service error taxonomy onto HTTP status
// codes. Unclassified errors become an opaque 500 so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
