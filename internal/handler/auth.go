package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffpoints/backend/internal/metrics"
	"github.com/staffpoints/backend/internal/model"
	"github.com/staffpoints/backend/internal/service"
)

type AuthHandler struct {
	svc     *service.AuthService
	metrics *metrics.Metrics
}

func NewAuthHandler(svc *service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m}
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Username and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		h.metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			h.metrics.LoginAttemptsTotal.WithLabelValues("unauthorized").Inc()
		} else {
			h.metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		writeError(c, err)
		return
	}

	h.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := GetAuthUser(c)
	if identity == nil {
		writeError(c, service.ErrAuthenticationRequired)
		return
	}
	c.JSON(http.StatusOK, model.UserResponse{
		Username: identity.Username,
		Role:     identity.Role,
	})
}
