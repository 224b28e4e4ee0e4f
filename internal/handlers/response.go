package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/services"
)

// respondError maps service errors onto status codes. Anything unexpected is
// attached to the context for the ErrorHandler to log and answered with a
// generic message.
func respondError(c *gin.Context, resource string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(verr.Msg))
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(resource+" not found"))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse(resource+" already exists"))
	case errors.Is(err, services.ErrMediaDisabled):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
	}
}

// bindJSON decodes the request body. An empty body decodes to the zero value
// so that the service decides whether the input is sufficient.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return models.ValidationErrorf("invalid request body: %v", err)
	}
	return nil
}
