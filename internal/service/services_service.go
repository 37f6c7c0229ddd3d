package service

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type servicesRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	FindByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Service, error)
	Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

// ServicesService manages the offerings shown on the services page.
type ServicesService struct {
	repo      servicesRepository
	uploader  ImageUploader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewServicesService constructs a ServicesService.
func NewServicesService(repo servicesRepository, uploader ImageUploader, validate *validator.Validate, logger *zap.Logger) *ServicesService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServicesService{repo: repo, uploader: uploader, validator: validate, logger: logger}
}

// List returns offerings in display order.
func (s *ServicesService) List(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	services, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list services")
	}
	return services, nil
}

// Get returns one offering.
func (s *ServicesService) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load service")
	}
	return svc, nil
}

// Create adds a new offering.
func (s *ServicesService) Create(ctx context.Context, req models.CreateServiceRequest, file *multipart.FileHeader) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}

	image := req.Image
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "services")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload service image")
		}
		image = url
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	svc := &models.Service{
		Title:           req.Title,
		Description:     req.Description,
		Icon:            req.Icon,
		Image:           image,
		LongDescription: req.LongDescription,
		Features:        pq.StringArray(req.Features),
		SortOrder:       req.SortOrder,
		Published:       published,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create service")
	}
	return svc, nil
}

// Update applies a partial update.
func (s *ServicesService) Update(ctx context.Context, id string, req models.UpdateServiceRequest, file *multipart.FileHeader) (*models.Service, error) {
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "services")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload service image")
		}
		req.Image = &url
	}

	svc, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update service")
	}
	return svc, nil
}

// Delete removes an offering permanently.
func (s *ServicesService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete service")
	}
	return nil
}
