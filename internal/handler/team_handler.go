package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// TeamHandler wires HTTP endpoints to the team service.
type TeamHandler struct {
	service *service.TeamService
}

// NewTeamHandler creates a new handler.
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{service: svc}
}

// List godoc
// @Summary List published team members
// @Tags Team
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /team [get]
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}

// ListAdmin godoc
// @Summary List all team members including hidden ones
// @Tags Team
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /team/admin [get]
func (h *TeamHandler) ListAdmin(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}

// Create godoc
// @Summary Add a team member
// @Tags Team
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /team [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req models.CreateTeamMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid team member payload"))
		return
	}
	file, _ := c.FormFile("image")

	member, err := h.service.Create(c.Request.Context(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update a team member
// @Tags Team
// @Accept mpfd
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /team/{id} [patch]
func (h *TeamHandler) Update(c *gin.Context) {
	var req models.UpdateTeamMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid team member payload"))
		return
	}
	file, _ := c.FormFile("image")

	member, err := h.service.Update(c.Request.Context(), c.Param("id"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Delete godoc
// @Summary Remove a team member
// @Tags Team
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /team/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "team member deleted", nil)
}
