package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service  *service.AuthService
	sessions *service.SessionService

	// exposeTokens echoes the token pair in the response body alongside
	// the cookies. Enabled outside production so API clients without a
	// cookie jar can still authenticate.
	exposeTokens bool
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, sessions *service.SessionService, exposeTokens bool) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, exposeTokens: exposeTokens}
}

type loginResponse struct {
	User         models.UserInfo `json:"user"`
	AccessToken  string          `json:"accessToken,omitempty"`
	RefreshToken string          `json:"refreshToken,omitempty"`
}

func (h *AuthHandler) sessionPayload(user *models.User, pair *models.TokenPair) loginResponse {
	payload := loginResponse{User: user.Info()}
	if h.exposeTokens {
		payload.AccessToken = pair.AccessToken
		payload.RefreshToken = pair.RefreshToken
	}
	return payload
}

// Login godoc
// @Summary Authenticate admin
// @Description Authenticate by email and password, set session cookies
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	user, pair, err := h.service.Login(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sessions.SetAuthCookies(c, pair)
	response.Message(c, http.StatusOK, "login successful", h.sessionPayload(user, pair))
}

// Refresh godoc
// @Summary Refresh the session
// @Description Exchange the refresh token cookie for a new session
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(service.RefreshTokenCookie)
	if presented == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			presented = body.RefreshToken
		}
	}

	user, pair, err := h.service.Refresh(c.Request.Context(), presented, requestMeta(c))
	if err != nil {
		h.sessions.ClearAuthCookies(c)
		response.Error(c, err)
		return
	}

	h.sessions.SetAuthCookies(c, pair)
	response.Message(c, http.StatusOK, "token refreshed", h.sessionPayload(user, pair))
}

// Logout godoc
// @Summary Logout current session
// @Description Revoke the active session and clear cookies
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims.SessionID()); err != nil {
		response.Error(c, err)
		return
	}

	h.sessions.ClearAuthCookies(c)
	response.Message(c, http.StatusOK, "logged out", nil)
}

// LogoutAll godoc
// @Summary Logout everywhere
// @Description Revoke every session of the current user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.LogoutAll(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}

	h.sessions.ClearAuthCookies(c)
	response.Message(c, http.StatusOK, "logged out from all devices", nil)
}

// Profile godoc
// @Summary Current user profile
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	info, err := h.service.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update name, email or profile image (multipart)
// @Tags Authentication
// @Accept mpfd
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	file, _ := c.FormFile("profileImage")

	info, err := h.service.UpdateProfile(c.Request.Context(), claims.UserID, req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "profile updated", info)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordRequest true "Change password payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid change password payload"))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "password changed", nil)
}

// ForgotPassword godoc
// @Summary Request a password reset OTP
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ForgotPasswordRequest true "Forgot password payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid forgot password payload"))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "an OTP has been sent to your email", nil)
}

// VerifyOTP godoc
// @Summary Verify a password reset OTP
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.VerifyOTPRequest true "Verify OTP payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid OTP payload"))
		return
	}

	if err := h.service.VerifyOTP(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "OTP verified", nil)
}

// ResetPassword godoc
// @Summary Reset password after OTP verification
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ResetPasswordRequest true "Reset password payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reset password payload"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "password reset successful, please login", nil)
}
