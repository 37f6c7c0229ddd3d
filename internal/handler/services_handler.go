package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// ServicesHandler wires HTTP endpoints to the services catalog.
type ServicesHandler struct {
	service *service.ServicesService
}

// NewServicesHandler creates a new handler.
func NewServicesHandler(svc *service.ServicesService) *ServicesHandler {
	return &ServicesHandler{service: svc}
}

// List godoc
// @Summary List published services
// @Tags Services
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /services [get]
func (h *ServicesHandler) List(c *gin.Context) {
	services, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, services, nil)
}

// ListAdmin godoc
// @Summary List all services including drafts
// @Tags Services
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /services/admin [get]
func (h *ServicesHandler) ListAdmin(c *gin.Context) {
	services, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, services, nil)
}

// Get godoc
// @Summary Get one service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /services/{id} [get]
func (h *ServicesHandler) Get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, svc, nil)
}

// Create godoc
// @Summary Create a service
// @Tags Services
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /services [post]
func (h *ServicesHandler) Create(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid service payload"))
		return
	}
	file, _ := c.FormFile("image")

	svc, err := h.service.Create(c.Request.Context(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, svc)
}

// Update godoc
// @Summary Update a service
// @Tags Services
// @Accept mpfd
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /services/{id} [patch]
func (h *ServicesHandler) Update(c *gin.Context) {
	var req models.UpdateServiceRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid service payload"))
		return
	}
	file, _ := c.FormFile("image")

	svc, err := h.service.Update(c.Request.Context(), c.Param("id"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, svc, nil)
}

// Delete godoc
// @Summary Delete a service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /services/{id} [delete]
func (h *ServicesHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "service deleted", nil)
}
