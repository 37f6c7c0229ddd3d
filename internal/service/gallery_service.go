package service

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type galleryRepository interface {
	Create(ctx context.Context, item *models.Gallery) error
	FindByID(ctx context.Context, id string) (*models.Gallery, error)
	List(ctx context.Context, category string, publishedOnly bool) ([]models.Gallery, error)
	Update(ctx context.Context, id string, req models.UpdateGalleryRequest) (*models.Gallery, error)
	Delete(ctx context.Context, id string) error
}

// GalleryService manages gallery images.
type GalleryService struct {
	repo      galleryRepository
	uploader  ImageUploader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGalleryService constructs a GalleryService.
func NewGalleryService(repo galleryRepository, uploader ImageUploader, validate *validator.Validate, logger *zap.Logger) *GalleryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{repo: repo, uploader: uploader, validator: validate, logger: logger}
}

// List returns gallery images in display order.
func (s *GalleryService) List(ctx context.Context, category string, publishedOnly bool) ([]models.Gallery, error) {
	items, err := s.repo.List(ctx, category, publishedOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list gallery")
	}
	return items, nil
}

// Get returns one gallery image.
func (s *GalleryService) Get(ctx context.Context, id string) (*models.Gallery, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gallery item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gallery item")
	}
	return item, nil
}

// Create adds a gallery image. Either an uploaded file or an image URL is
// required.
func (s *GalleryService) Create(ctx context.Context, req models.CreateGalleryRequest, file *multipart.FileHeader) (*models.Gallery, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gallery payload")
	}

	image := req.Image
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "gallery")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload gallery image")
		}
		image = url
	}
	if image == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "an image is required")
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	item := &models.Gallery{
		Title:       req.Title,
		Image:       image,
		Category:    req.Category,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Published:   published,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create gallery item")
	}
	return item, nil
}

// Update applies a partial update.
func (s *GalleryService) Update(ctx context.Context, id string, req models.UpdateGalleryRequest, file *multipart.FileHeader) (*models.Gallery, error) {
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "gallery")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload gallery image")
		}
		req.Image = &url
	}

	item, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gallery item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update gallery item")
	}
	return item, nil
}

// Delete removes a gallery image permanently.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "gallery item not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete gallery item")
	}
	return nil
}
