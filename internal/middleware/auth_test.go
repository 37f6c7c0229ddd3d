package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
)

func newAuthTestRig(t *testing.T) (*service.SessionService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := service.NewSessionService(store.NewMemoryStore(0), nil, service.SessionConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	router := gin.New()
	router.GET("/protected", Auth(sessions), func(c *gin.Context) {
		claims := CurrentClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	router.GET("/admin-only", Auth(sessions), RequireRoles(models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return sessions, router
}

func issueTestPair(t *testing.T, sessions *service.SessionService, role models.UserRole) *models.TokenPair {
	t.Helper()
	pair, err := sessions.Issue(context.Background(), &models.User{
		ID:    "user-1",
		Email: "admin@example.com",
		Role:  role,
	}, models.RequestMeta{})
	require.NoError(t, err)
	return pair
}

func TestAuthRejectsMissingToken(t *testing.T) {
	_, router := newAuthTestRig(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	sessions, router := newAuthTestRig(t)
	pair := issueTestPair(t, sessions, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	sessions, router := newAuthTestRig(t)
	pair := issueTestPair(t, sessions, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: service.AccessTokenCookie, Value: pair.AccessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	sessions, router := newAuthTestRig(t)
	pair := issueTestPair(t, sessions, models.RoleAdmin)

	require.NoError(t, sessions.Logout(context.Background(), pair.SessionID))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	sessions, router := newAuthTestRig(t)
	pair := issueTestPair(t, sessions, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	sessions, router := newAuthTestRig(t)
	pair := issueTestPair(t, sessions, models.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
