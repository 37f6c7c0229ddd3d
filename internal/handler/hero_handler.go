package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// HeroHandler wires HTTP endpoints to the hero service.
type HeroHandler struct {
	service *service.HeroService
}

// NewHeroHandler creates a new handler.
func NewHeroHandler(svc *service.HeroService) *HeroHandler {
	return &HeroHandler{service: svc}
}

// List godoc
// @Summary List active hero images
// @Tags Heroes
// @Produce json
// @Param displayType query string false "Display slot"
// @Success 200 {object} response.Envelope
// @Router /heroes [get]
func (h *HeroHandler) List(c *gin.Context) {
	heroes, err := h.service.List(c.Request.Context(), c.Query("displayType"), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, heroes, nil)
}

// ListAdmin godoc
// @Summary List all hero images including disabled ones
// @Tags Heroes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /heroes/admin [get]
func (h *HeroHandler) ListAdmin(c *gin.Context) {
	heroes, err := h.service.List(c.Request.Context(), c.Query("displayType"), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, heroes, nil)
}

// Create godoc
// @Summary Add a hero image
// @Tags Heroes
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /heroes [post]
func (h *HeroHandler) Create(c *gin.Context) {
	var req models.CreateHeroRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hero payload"))
		return
	}
	file, _ := c.FormFile("image")

	hero, err := h.service.Create(c.Request.Context(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, hero)
}

// Update godoc
// @Summary Update a hero image
// @Tags Heroes
// @Accept mpfd
// @Produce json
// @Param id path string true "Hero ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /heroes/{id} [patch]
func (h *HeroHandler) Update(c *gin.Context) {
	var req models.UpdateHeroRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hero payload"))
		return
	}
	file, _ := c.FormFile("image")

	hero, err := h.service.Update(c.Request.Context(), c.Param("id"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hero, nil)
}

// Delete godoc
// @Summary Delete a hero image
// @Tags Heroes
// @Produce json
// @Param id path string true "Hero ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /heroes/{id} [delete]
func (h *HeroHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "hero deleted", nil)
}
