package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type contactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int, error)
	Update(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactService captures public contact submissions and supports admin
// triage.
type ContactService struct {
	repo      contactRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactRepository, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, validator: validate, logger: logger}
}

// Submit stores a message from the public contact form.
func (s *ContactService) Submit(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save contact message")
	}

	s.logger.Info("contact message received",
		zap.String("contact_id", contact.ID),
		zap.String("email", contact.Email),
	)
	return contact, nil
}

// List returns submissions for the admin inbox with pagination metadata.
func (s *ContactService) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, *models.Pagination, error) {
	contacts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contacts")
	}
	filter.Normalize()
	return contacts, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns one submission and marks it read on first open.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "contact not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load contact")
	}

	if contact.Status == models.ContactUnread {
		status := string(models.ContactRead)
		updated, err := s.repo.Update(ctx, id, models.UpdateContactRequest{Status: &status})
		if err != nil {
			s.logger.Warn("failed to mark contact read", zap.String("contact_id", id), zap.Error(err))
			return contact, nil
		}
		return updated, nil
	}
	return contact, nil
}

// Update applies triage changes (status, notes).
func (s *ContactService) Update(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact update payload")
	}

	contact, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "contact not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update contact")
	}
	return contact, nil
}

// Delete removes a submission permanently.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "contact not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete contact")
	}
	return nil
}
