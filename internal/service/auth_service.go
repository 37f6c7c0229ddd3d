package service

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, name, email, profileImage *string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ImageUploader pushes an uploaded file to the media host and returns its
// public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

// AuthService provides the admin authentication use cases on top of the
// session layer.
type AuthService struct {
	repo      authUserRepository
	sessions  *SessionService
	otp       *OTPService
	uploader  ImageUploader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(repo authUserRepository, sessions *SessionService, otp *OTPService, uploader ImageUploader, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		otp:       otp,
		uploader:  uploader,
		validator: validate,
		logger:    logger,
	}
}

// Login verifies credentials and issues a new session. Both unknown email
// and wrong password collapse into one invalid-credentials answer.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (*models.User, *models.TokenPair, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid credentials")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid credentials")
	}

	pair, err := s.sessions.Issue(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh exchanges a refresh token for a brand-new session.
func (s *AuthService) Refresh(ctx context.Context, presented string, meta models.RequestMeta) (*models.User, *models.TokenPair, error) {
	if presented == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrBadRequest, "no refresh token provided")
	}

	claims, err := s.sessions.Refresh(ctx, presented)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	pair, err := s.sessions.Issue(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the current session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Logout(ctx, sessionID)
}

// LogoutAll revokes every session of the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessions.LogoutAll(ctx, userID)
}

// Profile returns the current user's public projection.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.UserInfo, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	info := user.Info()
	return &info, nil
}

// UpdateProfile changes name/email and optionally replaces the profile
// image through the media uploader.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest, file *multipart.FileHeader) (*models.UserInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	if file == nil && req.Name == "" && req.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "no fields provided to update")
	}

	var name, email, image *string
	if req.Name != "" {
		name = &req.Name
	}
	if req.Email != "" {
		email = &req.Email
	}
	if file != nil {
		url, err := s.uploader.Upload(ctx, file, "profiles")
		if err != nil {
			s.logger.Error("profile image upload failed", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, "failed to upload profile image")
		}
		image = &url
	}

	user, err := s.repo.UpdateProfile(ctx, userID, name, email, image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	info := user.Info()
	return &info, nil
}

// ChangePassword rotates the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid change password payload")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrUnauthorized, "current password is incorrect")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	return nil
}

// ForgotPassword sends a reset OTP, subject to the abuse lockouts.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid forgot password payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := s.otp.CheckRestrictions(ctx, user.Email); err != nil {
		return err
	}
	if err := s.otp.TrackRequest(ctx, user.Email); err != nil {
		return err
	}
	return s.otp.Send(ctx, user.Name, user.Email)
}

// VerifyOTP confirms a reset code.
func (s *AuthService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid OTP payload")
	}
	return s.otp.Verify(ctx, req.Email, req.OTP)
}

// ResetPassword sets a new password after OTP verification and revokes all
// live sessions for the account.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset password payload")
	}

	if !s.otp.IsVerified(ctx, req.Email) {
		if s.otp.HasPending(ctx, req.Email) {
			return appErrors.Clone(appErrors.ErrBadRequest, "you have not yet verified your OTP, check your email and verify")
		}
		return appErrors.Clone(appErrors.ErrBadRequest, "you must request and verify an OTP before resetting your password")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)) == nil {
		return appErrors.Clone(appErrors.ErrBadRequest, "new password must be different from the old password")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(newHash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	if err := s.sessions.LogoutAll(ctx, user.ID); err != nil {
		s.logger.Warn("failed to revoke sessions after password reset", zap.String("user_id", user.ID), zap.Error(err))
	}
	s.otp.ClearVerified(ctx, user.Email)

	return nil
}
