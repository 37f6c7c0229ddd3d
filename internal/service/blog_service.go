package service

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type blogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, int, error)
	Update(ctx context.Context, id string, req models.UpdateBlogRequest, date *time.Time) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

// BlogService manages blog posts.
type BlogService struct {
	repo      blogRepository
	uploader  ImageUploader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBlogService constructs a BlogService.
func NewBlogService(repo blogRepository, uploader ImageUploader, validate *validator.Validate, logger *zap.Logger) *BlogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{repo: repo, uploader: uploader, validator: validate, logger: logger}
}

// List returns posts matching the filter with pagination metadata.
func (s *BlogService) List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, *models.Pagination, error) {
	blogs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blogs")
	}
	filter.Normalize()
	return blogs, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// GetBySlug returns one post for the public site.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blog")
	}
	return blog, nil
}

// GetByID returns one post for the admin panel.
func (s *BlogService) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blog")
	}
	return blog, nil
}

// Create publishes a new post. The slug must be unique; an uploaded cover
// image wins over an image URL in the payload.
func (s *BlogService) Create(ctx context.Context, req models.CreateBlogRequest, file *multipart.FileHeader) (*models.Blog, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blog payload")
	}

	if existing, err := s.repo.FindBySlug(ctx, req.Slug); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a blog with this slug already exists")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
	}

	image := req.Image
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "blogs")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload blog image")
		}
		image = url
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	blog := &models.Blog{
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Category:  req.Category,
		Image:     image,
		ReadTime:  req.ReadTime,
		Published: published,
		Tags:      pq.StringArray(req.Tags),
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			date, err = time.Parse("2006-01-02", req.Date)
		}
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format")
		}
		blog.Date = date
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create blog")
	}
	return blog, nil
}

// Update applies a partial update. Changing the slug re-checks uniqueness.
func (s *BlogService) Update(ctx context.Context, id string, req models.UpdateBlogRequest, file *multipart.FileHeader) (*models.Blog, error) {
	if req.Slug != nil {
		existing, err := s.repo.FindBySlug(ctx, *req.Slug)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
		}
		if existing != nil && existing.ID != id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a blog with this slug already exists")
		}
	}

	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "blogs")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload blog image")
		}
		req.Image = &url
	}

	var date *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", *req.Date)
		}
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format")
		}
		date = &parsed
	}

	blog, err := s.repo.Update(ctx, id, req, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update blog")
	}
	return blog, nil
}

// Delete removes a post permanently.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "blog not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete blog")
	}
	return nil
}
