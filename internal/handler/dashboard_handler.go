package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// DashboardHandler wires HTTP endpoints to the dashboard service.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Admin dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ExportContacts godoc
// @Summary Download contact messages as CSV or PDF
// @Tags Dashboard
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /dashboard/export/contacts [get]
func (h *DashboardHandler) ExportContacts(c *gin.Context) {
	file, err := h.service.ExportContacts(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, file)
}

// ExportSubscribers godoc
// @Summary Download newsletter subscribers as CSV or PDF
// @Tags Dashboard
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /dashboard/export/subscribers [get]
func (h *DashboardHandler) ExportSubscribers(c *gin.Context) {
	file, err := h.service.ExportSubscribers(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, file)
}

func serveExport(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
