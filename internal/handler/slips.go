package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffpoints/backend/internal/model"
	"github.com/staffpoints/backend/internal/service"
)

type SlipHandler struct {
	staff *service.StaffService
	slips *service.SlipService
}

func NewSlipHandler(staff *service.StaffService, slips *service.SlipService) *SlipHandler {
	return &SlipHandler{staff: staff, slips: slips}
}

// ListStaff godoc
// @Summary List staff members
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Staff
// @Failure 401 {object} model.ErrorResponse
// @Router /api/staff [get]
func (h *SlipHandler) ListStaff(c *gin.Context) {
	staff, err := h.staff.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// CreateStaff godoc
// @Summary Add a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateStaffRequest true "Staff name"
// @Success 201 {object} model.Staff
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/staff [post]
func (h *SlipHandler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.staff.Add(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// DeleteStaff godoc
// @Summary Remove a staff member
// @Tags staff
// @Security BearerAuth
// @Param name path string true "Staff name"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Router /api/staff/{name} [delete]
func (h *SlipHandler) DeleteStaff(c *gin.Context) {
	if err := h.staff.Remove(c.Request.Context(), c.Param("name")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSlips godoc
// @Summary List points slips
// @Description Newest date first.
// @Tags slips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Slip
// @Failure 401 {object} model.ErrorResponse
// @Router /api/slips [get]
func (h *SlipHandler) ListSlips(c *gin.Context) {
	slips, err := h.slips.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slips)
}

// CreateSlip godoc
// @Summary Save a points slip
// @Tags slips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateSlipRequest true "Slip"
// @Success 201 {object} model.Slip
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/slips [post]
func (h *SlipHandler) CreateSlip(c *gin.Context) {
	var req model.CreateSlipRequest
	if !bindJSON(c, &req) {
		return
	}
	createdBy := ""
	if identity := GetAuthUser(c); identity != nil {
		createdBy = identity.Username
	}
	slip, err := h.slips.Create(c.Request.Context(), req, createdBy)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slip)
}
