package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type newsletterRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, sub *models.Subscriber) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error)
	Delete(ctx context.Context, id string) error
}

// NewsletterService manages newsletter signups.
type NewsletterService struct {
	repo      newsletterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNewsletterService constructs a NewsletterService.
func NewNewsletterService(repo newsletterRepository, validate *validator.Validate, logger *zap.Logger) *NewsletterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsletterService{repo: repo, validator: validate, logger: logger}
}

// Subscribe signs an email up. An address that unsubscribed earlier is
// reactivated on its existing row; an already active one is a conflict.
func (s *NewsletterService) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.Subscriber, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subscribe payload")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subscription")
	}

	if existing != nil {
		if existing.Active {
			return nil, appErrors.Clone(appErrors.ErrConflict, "this email is already subscribed")
		}
		if err := s.repo.SetActive(ctx, existing.ID, true); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resubscribe")
		}
		existing.Active = true
		existing.UnsubscribedAt = nil
		return existing, nil
	}

	sub := &models.Subscriber{Email: email}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to subscribe")
	}
	return sub, nil
}

// Unsubscribe deactivates a signup, keeping the row for a later return.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return appErrors.Clone(appErrors.ErrBadRequest, "email is required")
	}

	sub, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subscription not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subscription")
	}
	if !sub.Active {
		return appErrors.Clone(appErrors.ErrBadRequest, "this email is already unsubscribed")
	}

	if err := s.repo.SetActive(ctx, sub.ID, false); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unsubscribe")
	}
	return nil
}

// List returns subscribers for the admin panel with pagination metadata.
func (s *NewsletterService) List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, *models.Pagination, error) {
	subs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subscribers")
	}
	filter.Normalize()
	return subs, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Delete removes a subscriber permanently.
func (s *NewsletterService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subscriber not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subscriber")
	}
	return nil
}
