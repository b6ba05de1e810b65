package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinura/schoolboard/internal/app/models/dto"
	"github.com/ekinura/schoolboard/internal/pkg/apperrors"
)

// HandleAPIError maps pipeline errors to HTTP responses. Storage errors of
// either kind surface as the same opaque message: callers never learn
// whether the store was unreachable or rejected the value.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewFailure("Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewFailure("Invalid request"))
	case errors.Is(err, apperrors.ErrStorageUnavailable),
		errors.Is(err, apperrors.ErrConstraintViolation):
		if c.Request.Method == http.MethodGet {
			c.JSON(http.StatusInternalServerError, dto.NewFailure("Failed to fetch schools"))
		} else {
			c.JSON(http.StatusInternalServerError, dto.NewFailure("Failed to add school"))
		}
	default:
		c.JSON(http.StatusInternalServerError, dto.NewFailure("Internal server error"))
	}
}
