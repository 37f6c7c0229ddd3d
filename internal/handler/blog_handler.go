package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// BlogHandler wires HTTP endpoints to the blog service.
type BlogHandler struct {
	service *service.BlogService
}

// NewBlogHandler creates a new handler.
func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{service: svc}
}

func parseListQuery(c *gin.Context) models.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return models.ListQuery{Page: page, PageSize: size}
}

// List godoc
// @Summary List published blog posts
// @Tags Blogs
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param category query string false "Category"
// @Success 200 {object} response.Envelope
// @Router /blogs [get]
func (h *BlogHandler) List(c *gin.Context) {
	published := true
	filter := models.BlogFilter{
		Category:  c.Query("category"),
		Published: &published,
		ListQuery: parseListQuery(c),
	}

	blogs, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blogs, pagination)
}

// ListAdmin godoc
// @Summary List all blog posts including drafts
// @Tags Blogs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blogs/admin [get]
func (h *BlogHandler) ListAdmin(c *gin.Context) {
	filter := models.BlogFilter{
		Category:  c.Query("category"),
		ListQuery: parseListQuery(c),
	}
	if raw := c.Query("published"); raw != "" {
		published := raw == "true"
		filter.Published = &published
	}

	blogs, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blogs, pagination)
}

// GetBySlug godoc
// @Summary Get a blog post by slug
// @Tags Blogs
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blogs/{slug} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blog, nil)
}

// Create godoc
// @Summary Create a blog post
// @Tags Blogs
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid blog payload"))
		return
	}
	file, _ := c.FormFile("image")

	blog, err := h.service.Create(c.Request.Context(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, blog)
}

// Update godoc
// @Summary Update a blog post
// @Tags Blogs
// @Accept mpfd
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blogs/{id} [patch]
func (h *BlogHandler) Update(c *gin.Context) {
	var req models.UpdateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid blog payload"))
		return
	}
	file, _ := c.FormFile("image")

	blog, err := h.service.Update(c.Request.Context(), c.Param("id"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blog, nil)
}

// Delete godoc
// @Summary Delete a blog post
// @Tags Blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "blog deleted", nil)
}
