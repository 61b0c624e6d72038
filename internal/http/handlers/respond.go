package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/domain"
)

// SimpleResponse is the success envelope for single-entity operations.
type SimpleResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorEnvelope is the single error shape every failure resolves to.
// Detail carries the wrapped cause outside production mode only.
type ErrorEnvelope struct {
	StatusCode int     `json:"statusCode"`
	Message    string  `json:"message"`
	Detail     *string `json:"detail"`
}

// RespondSuccess wraps a payload in the success envelope.
func RespondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SimpleResponse{StatusCode: status, Message: message, Data: data})
}

// RespondDomainError classifies err into the fixed taxonomy, in descending
// precedence, and emits the error envelope. The same logical failure always
// produces the same statusCode/message pair regardless of endpoint.
func RespondDomainError(c *gin.Context, debug bool, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case domain.IsForbidden(err):
		status = http.StatusForbidden
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsConflict(err):
		// duplicate email/table name answered 400 by this API, not 409
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError && !debug {
		message = "Internal Server Error"
	}

	var detail *string
	if debug {
		if cause := errors.Unwrap(err); cause != nil {
			s := cause.Error()
			detail = &s
		}
	}

	c.JSON(status, ErrorEnvelope{StatusCode: status, Message: message, Detail: detail})
}

// BindJSONOrError parses the request body, answering a ValidationError when
// the payload is missing or malformed.
func BindJSONOrError[T any](c *gin.Context, debug bool, dst *T) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, debug, domain.ValidationError{Msg: "Invalid request payload", Err: err})
		return false
	}
	return true
}
