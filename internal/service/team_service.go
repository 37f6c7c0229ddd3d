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

type teamRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	FindByID(ctx context.Context, id string) (*models.TeamMember, error)
	List(ctx context.Context, publishedOnly bool) ([]models.TeamMember, error)
	Update(ctx context.Context, id string, req models.UpdateTeamMemberRequest) (*models.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// TeamService manages the people on the team page.
type TeamService struct {
	repo      teamRepository
	uploader  ImageUploader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamService constructs a TeamService.
func NewTeamService(repo teamRepository, uploader ImageUploader, validate *validator.Validate, logger *zap.Logger) *TeamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{repo: repo, uploader: uploader, validator: validate, logger: logger}
}

// List returns team members in display order.
func (s *TeamService) List(ctx context.Context, publishedOnly bool) ([]models.TeamMember, error) {
	members, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team members")
	}
	return members, nil
}

// Get returns one team member.
func (s *TeamService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load team member")
	}
	return member, nil
}

// Create adds a team member.
func (s *TeamService) Create(ctx context.Context, req models.CreateTeamMemberRequest, file *multipart.FileHeader) (*models.TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid team member payload")
	}

	image := req.Image
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "team")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload team member image")
		}
		image = url
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	member := &models.TeamMember{
		Name:        req.Name,
		Role:        req.Role,
		Image:       image,
		Bio:         req.Bio,
		SocialLinks: pq.StringArray(req.SocialLinks),
		SortOrder:   req.SortOrder,
		Published:   published,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create team member")
	}
	return member, nil
}

// Update applies a partial update.
func (s *TeamService) Update(ctx context.Context, id string, req models.UpdateTeamMemberRequest, file *multipart.FileHeader) (*models.TeamMember, error) {
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "team")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload team member image")
		}
		req.Image = &url
	}

	member, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update team member")
	}
	return member, nil
}

// Delete removes a team member permanently.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete team member")
	}
	return nil
}
