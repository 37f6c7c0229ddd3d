package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// GalleryHandler wires HTTP endpoints to the gallery service.
type GalleryHandler struct {
	service *service.GalleryService
}

// NewGalleryHandler creates a new handler.
func NewGalleryHandler(svc *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: svc}
}

// List godoc
// @Summary List published gallery images
// @Tags Gallery
// @Produce json
// @Param category query string false "Category"
// @Success 200 {object} response.Envelope
// @Router /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("category"), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// ListAdmin godoc
// @Summary List all gallery images including drafts
// @Tags Gallery
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /gallery/admin [get]
func (h *GalleryHandler) ListAdmin(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("category"), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Add a gallery image
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req models.CreateGalleryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid gallery payload"))
		return
	}
	file, _ := c.FormFile("image")

	item, err := h.service.Create(c.Request.Context(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a gallery image
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gallery/{id} [patch]
func (h *GalleryHandler) Update(c *gin.Context) {
	var req models.UpdateGalleryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid gallery payload"))
		return
	}
	file, _ := c.FormFile("image")

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "gallery item deleted", nil)
}
