package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// NewsletterHandler wires HTTP endpoints to the newsletter service.
type NewsletterHandler struct {
	service *service.NewsletterService
}

// NewNewsletterHandler creates a new handler.
func NewNewsletterHandler(svc *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: svc}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param payload body models.SubscribeRequest true "Subscribe payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subscribe payload"))
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "subscribed to the newsletter", sub)
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param payload body models.SubscribeRequest true "Unsubscribe payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unsubscribe payload"))
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "unsubscribed from the newsletter", nil)
}

// List godoc
// @Summary List newsletter subscribers
// @Tags Newsletter
// @Produce json
// @Param active query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /newsletter [get]
func (h *NewsletterHandler) List(c *gin.Context) {
	filter := models.SubscriberFilter{ListQuery: parseListQuery(c)}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	subs, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, pagination)
}

// Delete godoc
// @Summary Delete a subscriber
// @Tags Newsletter
// @Produce json
// @Param id path string true "Subscriber ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /newsletter/{id} [delete]
func (h *NewsletterHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "subscriber deleted", nil)
}
