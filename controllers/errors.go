package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-hub/models"
)

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "Access denied. Admin role required"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, "Resource was changed or already exists"
	case errors.Is(err, models.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "Deletion must be confirmed with confirm=true"
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Store unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, message := statusFor(err)

	fields := []zap.Field{zap.Int("status", status), zap.Error(err)}
	var storeErr *models.StoreError
	if errors.As(err, &storeErr) {
		fields = append(fields, zap.String("op", storeErr.Op), zap.String("key", storeErr.Key))
	}
	if status >= http.StatusInternalServerError {
		log.Error(message, fields...)
	} else {
		log.Debug(message, fields...)
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}
