package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"

	// AccessTokenCookie and RefreshTokenCookie are the cookie names the
	// frontend relies on.
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// SessionConfig defines the token and cookie parameters of the session layer.
type SessionConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	CookieDomain  string
	SecureCookies bool
}

// SessionService is the token issuer and session store. Every login mints a
// fresh session id (the jti claim of both tokens) and records the session in
// the key-value store; a token is only honored while that record exists, so
// logout revokes immediately even though the signature stays valid.
type SessionService struct {
	store  store.Store
	logger *zap.Logger
	config SessionConfig
}

// NewSessionService constructs a SessionService.
func NewSessionService(st store.Store, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.AccessExpiry <= 0 {
		config.AccessExpiry = 15 * time.Minute
	}
	if config.RefreshExpiry <= 0 {
		config.RefreshExpiry = 7 * 24 * time.Hour
	}
	return &SessionService{store: st, logger: logger, config: config}
}

// Issue mints a new session for the user: a fresh session id, an access and
// a refresh token carrying it, a session record with the refresh TTL, and an
// entry in the user's session index. A store failure aborts the login: an
// unrecorded session could never be revoked, so it must not exist.
func (s *SessionService) Issue(ctx context.Context, user *models.User, meta models.RequestMeta) (*models.TokenPair, error) {
	sessionID := uuid.NewString()

	accessToken, err := s.sign(user, sessionID, s.config.AccessExpiry)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}
	refreshToken, err := s.sign(user, sessionID, s.config.RefreshExpiry)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign refresh token")
	}

	session := models.Session{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		CreatedAt:    time.Now().UTC().UnixMilli(),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode session")
	}

	if err := s.store.Set(ctx, sessionKeyPrefix+sessionID, string(payload), s.config.RefreshExpiry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "session storage failed, cannot log in")
	}
	if _, err := s.store.SAdd(ctx, userSessionsKeyPrefix+user.ID, sessionID); err != nil {
		s.logger.Warn("failed to index session for user",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return &models.TokenPair{
		SessionID:    sessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Verify checks signature and expiry and returns the claims. All
// cryptographic failure reasons collapse into one unauthorized error.
func (s *SessionService) Verify(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.SessionID() == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

// Authenticate runs both gates in series: the signature/expiry check, then
// the live-session check. A well-formed token whose session was logged out
// is rejected here.
func (s *SessionService) Authenticate(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session invalid or expired")
	}
	return claims, nil
}

// Refresh validates a presented refresh token against the stored session:
// the record must exist, its stored refresh token must string-equal the
// presented one, and the user must match. On success the old session is
// deleted and its claims returned so the caller can issue a replacement.
// Refresh always rotates the session id, never extends in place.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*models.SessionClaims, error) {
	claims, err := s.Verify(presented)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired refresh token")
	}

	session, err := s.GetSession(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if session == nil || session.RefreshToken != presented || session.UserID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired refresh token")
	}

	if err := s.Logout(ctx, claims.SessionID()); err != nil {
		return nil, err
	}
	return claims, nil
}

// GetSession loads a session record; nil means absent (logged out or
// expired).
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := s.store.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode session")
	}
	return &session, nil
}

// Logout deletes one session record and removes it from the owner's index.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if _, err := s.store.Del(ctx, sessionKeyPrefix+sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	if session != nil && session.UserID != "" {
		if _, err := s.store.SRem(ctx, userSessionsKeyPrefix+session.UserID, sessionID); err != nil {
			s.logger.Warn("failed to unindex session",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// LogoutAll revokes every session of a user: the index set names all live
// session ids, each record is deleted, then the index itself. Partial
// failures are logged and skipped, this is best-effort bulk revocation.
func (s *SessionService) LogoutAll(ctx context.Context, userID string) error {
	indexKey := userSessionsKeyPrefix + userID

	sessionIDs, err := s.store.SMembers(ctx, indexKey)
	if err != nil {
		s.logger.Warn("failed to list sessions for user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		sessionIDs = nil
	}

	if len(sessionIDs) > 0 {
		keys := make([]string, len(sessionIDs))
		for i, id := range sessionIDs {
			keys[i] = sessionKeyPrefix + id
		}
		if _, err := s.store.Del(ctx, keys...); err != nil {
			s.logger.Warn("failed to bulk delete sessions",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	if _, err := s.store.Del(ctx, indexKey); err != nil {
		s.logger.Warn("failed to delete session index",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *SessionService) sign(user *models.User, sessionID string, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// SetAuthCookies writes both tokens as http-only cookies with max-ages
// matching the token expiries. In production cookies are Secure with
// SameSite=None so the admin frontend can live on another origin.
func (s *SessionService) SetAuthCookies(c *gin.Context, pair *models.TokenPair) {
	s.applySameSite(c)
	c.SetCookie(AccessTokenCookie, pair.AccessToken, int(s.config.AccessExpiry.Seconds()), "/", s.config.CookieDomain, s.config.SecureCookies, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, int(s.config.RefreshExpiry.Seconds()), "/", s.config.CookieDomain, s.config.SecureCookies, true)
}

// ClearAuthCookies expires both cookies.
func (s *SessionService) ClearAuthCookies(c *gin.Context) {
	s.applySameSite(c)
	c.SetCookie(AccessTokenCookie, "", -1, "/", s.config.CookieDomain, s.config.SecureCookies, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", s.config.CookieDomain, s.config.SecureCookies, true)
}

func (s *SessionService) applySameSite(c *gin.Context) {
	if s.config.SecureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}
