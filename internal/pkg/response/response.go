package response

import (
	"errors"
	"net/http"

	xerrors "gymdesk-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error) {
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// FromError translates a service error into the protocol-appropriate status
// code. Unknown errors become 500 without leaking internals.
func FromError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, message, err)
	case errors.Is(err, xerrors.ErrValidation),
		errors.Is(err, xerrors.ErrUnknownPlanType):
		Error(c, http.StatusBadRequest, message, err)
	case errors.Is(err, xerrors.ErrDuplicateActivePlan),
		errors.Is(err, xerrors.ErrDuplicateEmail):
		Error(c, http.StatusConflict, message, err)
	case errors.Is(err, xerrors.ErrInvalidTransition):
		Error(c, http.StatusUnprocessableEntity, message, err)
	case errors.Is(err, xerrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, message, err)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, message, err)
	default:
		Error(c, http.StatusInternalServerError, message, xerrors.ErrInternal)
	}
}
