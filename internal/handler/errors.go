package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffpoints/backend/internal/service"
)

func errorStatus(err error) (int, string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, service.ErrAuthenticationRequired):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusForbidden, "invalid token"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrDuplicateUser):
		return http.StatusBadRequest, "user already exists"
	case errors.Is(err, service.ErrProtectedAccount):
		return http.StatusBadRequest, "cannot delete the admin account"
	case errors.Is(err, service.ErrDuplicateStaff):
		return http.StatusBadRequest, "staff member already exists"
	case errors.Is(err, service.ErrUnknownStaff):
		return http.StatusBadRequest, "unknown staff member"
	default:
		return http.StatusInternalServerError, "server error"
	}
}

func writeError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func abortWithError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bindJSON binds the request body and turns binding failures into a
// ValidationError.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, &service.ValidationError{Reason: "invalid request body"})
		return false
	}
	return true
}
