package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// ContactHandler wires HTTP endpoints to the contact service.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new handler.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// Submit godoc
// @Summary Submit a contact message
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body models.CreateContactRequest true "Contact payload"
// @Success 201 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact payload"))
		return
	}

	contact, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "thank you for reaching out, we will get back to you soon", contact)
}

// List godoc
// @Summary List contact messages
// @Tags Contacts
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope
// @Router /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	filter := models.ContactFilter{
		Status:    c.Query("status"),
		ListQuery: parseListQuery(c),
	}

	contacts, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts, pagination)
}

// Get godoc
// @Summary Open one contact message
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /contact/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// Update godoc
// @Summary Update contact triage state
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param payload body models.UpdateContactRequest true "Triage payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /contact/{id} [patch]
func (h *ContactHandler) Update(c *gin.Context) {
	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact update payload"))
		return
	}

	contact, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /contact/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "contact deleted", nil)
}
