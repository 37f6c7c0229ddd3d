package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
)

func newTestSessionService(st store.Store) *SessionService {
	return NewSessionService(st, nil, SessionConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "Admin",
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
}

func TestSessionServiceIssueAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(0)
	svc := newTestSessionService(st)

	pair, err := svc.Issue(ctx, testUser(), models.RequestMeta{IP: "1.2.3.4", UserAgent: "test"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.SessionID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, pair.SessionID, claims.SessionID())

	session, err := svc.GetSession(ctx, pair.SessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "1.2.3.4", session.IP)
	assert.Equal(t, pair.RefreshToken, session.RefreshToken)
}

func TestSessionServiceVerifyRejectsGarbage(t *testing.T) {
	svc := newTestSessionService(store.NewMemoryStore(0))

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)

	other := NewSessionService(store.NewMemoryStore(0), nil, SessionConfig{Secret: "other-secret"})
	pair, err := other.Issue(context.Background(), testUser(), models.RequestMeta{})
	require.NoError(t, err)

	// Signed with a different secret: cryptographically invalid here.
	_, err = svc.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestSessionServiceLogoutRevokesValidToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(store.NewMemoryStore(0))

	pair, err := svc.Issue(ctx, testUser(), models.RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.SessionID))

	// The signature is still valid, but the session record is gone.
	_, err = svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, pair.AccessToken)
	assert.Error(t, err)

	session, err := svc.GetSession(ctx, pair.SessionID)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionServiceRefreshRotates(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(store.NewMemoryStore(0))

	pair, err := svc.Issue(ctx, testUser(), models.RequestMeta{})
	require.NoError(t, err)

	claims, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	// The consumed session is gone, so refreshing again must fail.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Error(t, err)

	session, err := svc.GetSession(ctx, pair.SessionID)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionServiceRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(store.NewMemoryStore(0))

	pair, err := svc.Issue(ctx, testUser(), models.RequestMeta{})
	require.NoError(t, err)

	// The stored refresh token must string-equal the presented one, so an
	// access token for the same session is refused.
	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.Error(t, err)

	// The session survives a failed refresh attempt.
	session, err := svc.GetSession(ctx, pair.SessionID)
	require.NoError(t, err)
	assert.NotNil(t, session)
}

func TestSessionServiceLogoutAll(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(0)
	svc := newTestSessionService(st)
	user := testUser()

	var pairs []*models.TokenPair
	for i := 0; i < 3; i++ {
		pair, err := svc.Issue(ctx, user, models.RequestMeta{})
		require.NoError(t, err)
		pairs = append(pairs, pair)
	}

	members, err := st.SMembers(ctx, userSessionsKeyPrefix+user.ID)
	require.NoError(t, err)
	assert.Len(t, members, 3)

	require.NoError(t, svc.LogoutAll(ctx, user.ID))

	for _, pair := range pairs {
		session, err := svc.GetSession(ctx, pair.SessionID)
		require.NoError(t, err)
		assert.Nil(t, session)
	}
	members, err = st.SMembers(ctx, userSessionsKeyPrefix+user.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
