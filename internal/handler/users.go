package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffpoints/backend/internal/model"
	"github.com/staffpoints/backend/internal/service"
)

type UserHandler struct {
	store *service.CredentialStore
}

func NewUserHandler(store *service.CredentialStore) *UserHandler {
	return &UserHandler{store: store}
}

// ListUsers godoc
// @Summary List accounts
// @Description Password hashes are never returned.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.store.List(c.Request.Context())
	resp := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, u.Public())
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary Create an account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateUserRequest true "Username, password and role"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.Add(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Public())
}

// DeleteUser godoc
// @Summary Delete an account
// @Description The admin account cannot be deleted.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 204
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/users/{username} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.store.Remove(c.Request.Context(), c.Param("username")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
