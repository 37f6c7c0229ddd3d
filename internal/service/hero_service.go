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

type heroRepository interface {
	Create(ctx context.Context, hero *models.Hero) error
	FindByID(ctx context.Context, id string) (*models.Hero, error)
	List(ctx context.Context, displayType string, activeOnly bool) ([]models.Hero, error)
	Update(ctx context.Context, id string, req models.UpdateHeroRequest) (*models.Hero, error)
	Delete(ctx context.Context, id string) error
}

// HeroService manages landing-page hero images.
type HeroService struct {
	repo      heroRepository
	uploader  ImageUploader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHeroService constructs a HeroService.
func NewHeroService(repo heroRepository, uploader ImageUploader, validate *validator.Validate, logger *zap.Logger) *HeroService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeroService{repo: repo, uploader: uploader, validator: validate, logger: logger}
}

// List returns hero images, optionally one display slot only.
func (s *HeroService) List(ctx context.Context, displayType string, activeOnly bool) ([]models.Hero, error) {
	heroes, err := s.repo.List(ctx, displayType, activeOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list heroes")
	}
	return heroes, nil
}

// Get returns one hero image.
func (s *HeroService) Get(ctx context.Context, id string) (*models.Hero, error) {
	hero, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "hero not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hero")
	}
	return hero, nil
}

// Create adds a hero image. Either an uploaded file or an image URL is
// required.
func (s *HeroService) Create(ctx context.Context, req models.CreateHeroRequest, file *multipart.FileHeader) (*models.Hero, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hero payload")
	}

	image := req.Image
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "heroes")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload hero image")
		}
		image = url
	}
	if image == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "an image is required")
	}

	displayType := models.HeroMobile
	if req.DisplayType != "" {
		displayType = models.HeroDisplayType(req.DisplayType)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	hero := &models.Hero{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Image:       image,
		DisplayType: displayType,
		Alt:         req.Alt,
		SortOrder:   req.SortOrder,
		Active:      active,
	}
	if err := s.repo.Create(ctx, hero); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create hero")
	}
	return hero, nil
}

// Update applies a partial update.
func (s *HeroService) Update(ctx context.Context, id string, req models.UpdateHeroRequest, file *multipart.FileHeader) (*models.Hero, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hero payload")
	}

	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "heroes")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload hero image")
		}
		req.Image = &url
	}

	hero, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "hero not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update hero")
	}
	return hero, nil
}

// Delete removes a hero image permanently.
func (s *HeroService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "hero not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete hero")
	}
	return nil
}
