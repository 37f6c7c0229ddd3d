package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type mockSubscriberRepo struct {
	subs       map[string]*models.Subscriber
	created    *models.Subscriber
	setActive  map[string]bool
	deletedID  string
	findErr    error
	createErr  error
	listResult []models.Subscriber
	listTotal  int
}

func newMockSubscriberRepo() *mockSubscriberRepo {
	return &mockSubscriberRepo{
		subs:      make(map[string]*models.Subscriber),
		setActive: make(map[string]bool),
	}
}

func (m *mockSubscriberRepo) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	sub, ok := m.subs[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return sub, nil
}

func (m *mockSubscriberRepo) Create(ctx context.Context, sub *models.Subscriber) error {
	if m.createErr != nil {
		return m.createErr
	}
	sub.ID = "sub-1"
	sub.Active = true
	sub.CreatedAt = time.Now()
	m.created = sub
	return nil
}

func (m *mockSubscriberRepo) SetActive(ctx context.Context, id string, active bool) error {
	m.setActive[id] = active
	return nil
}

func (m *mockSubscriberRepo) List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error) {
	return m.listResult, m.listTotal, nil
}

func (m *mockSubscriberRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func TestNewsletterSubscribeCreatesNewSignup(t *testing.T) {
	repo := newMockSubscriberRepo()
	svc := NewNewsletterService(repo, nil, nil)

	sub, err := svc.Subscribe(context.Background(), models.SubscribeRequest{Email: "  Grace@Example.COM "})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "grace@example.com", sub.Email)
	assert.True(t, sub.Active)
}

func TestNewsletterSubscribeRejectsInvalidEmail(t *testing.T) {
	svc := NewNewsletterService(newMockSubscriberRepo(), nil, nil)

	_, err := svc.Subscribe(context.Background(), models.SubscribeRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNewsletterSubscribeActiveEmailConflicts(t *testing.T) {
	repo := newMockSubscriberRepo()
	repo.subs["grace@example.com"] = &models.Subscriber{ID: "sub-1", Email: "grace@example.com", Active: true}
	svc := NewNewsletterService(repo, nil, nil)

	_, err := svc.Subscribe(context.Background(), models.SubscribeRequest{Email: "grace@example.com"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "this email is already subscribed", appErr.Message)
	assert.Nil(t, repo.created)
}

func TestNewsletterSubscribeReactivatesLapsedSignup(t *testing.T) {
	then := time.Now().Add(-24 * time.Hour)
	repo := newMockSubscriberRepo()
	repo.subs["grace@example.com"] = &models.Subscriber{
		ID: "sub-1", Email: "grace@example.com", Active: false, UnsubscribedAt: &then,
	}
	svc := NewNewsletterService(repo, nil, nil)

	sub, err := svc.Subscribe(context.Background(), models.SubscribeRequest{Email: "grace@example.com"})
	require.NoError(t, err)
	assert.True(t, sub.Active)
	assert.Nil(t, sub.UnsubscribedAt)
	assert.True(t, repo.setActive["sub-1"])
	assert.Nil(t, repo.created, "reactivation must reuse the existing row")
}

func TestNewsletterUnsubscribeDeactivates(t *testing.T) {
	repo := newMockSubscriberRepo()
	repo.subs["grace@example.com"] = &models.Subscriber{ID: "sub-1", Email: "grace@example.com", Active: true}
	svc := NewNewsletterService(repo, nil, nil)

	err := svc.Unsubscribe(context.Background(), "Grace@Example.com")
	require.NoError(t, err)
	active, ok := repo.setActive["sub-1"]
	require.True(t, ok)
	assert.False(t, active)
}

func TestNewsletterUnsubscribeRequiresEmail(t *testing.T) {
	svc := NewNewsletterService(newMockSubscriberRepo(), nil, nil)

	err := svc.Unsubscribe(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBadRequest.Code, appErrors.FromError(err).Code)
}

func TestNewsletterUnsubscribeUnknownEmail(t *testing.T) {
	svc := NewNewsletterService(newMockSubscriberRepo(), nil, nil)

	err := svc.Unsubscribe(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNewsletterUnsubscribeAlreadyInactive(t *testing.T) {
	repo := newMockSubscriberRepo()
	repo.subs["grace@example.com"] = &models.Subscriber{ID: "sub-1", Email: "grace@example.com", Active: false}
	svc := NewNewsletterService(repo, nil, nil)

	err := svc.Unsubscribe(context.Background(), "grace@example.com")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBadRequest.Code, appErr.Code)
	assert.Equal(t, "this email is already unsubscribed", appErr.Message)
	_, touched := repo.setActive["sub-1"]
	assert.False(t, touched)
}

func TestNewsletterDeleteForwardsID(t *testing.T) {
	repo := newMockSubscriberRepo()
	svc := NewNewsletterService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "sub-1"))
	assert.Equal(t, "sub-1", repo.deletedID)
}

func TestNewsletterListReturnsPagination(t *testing.T) {
	repo := newMockSubscriberRepo()
	repo.listResult = []models.Subscriber{{ID: "sub-1", Email: "grace@example.com", Active: true}}
	repo.listTotal = 41
	svc := NewNewsletterService(repo, nil, nil)

	subs, page, err := svc.List(context.Background(), models.SubscriberFilter{})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.NotNil(t, page)
	assert.Equal(t, 41, page.TotalCount)
	assert.Equal(t, 1, page.Page)
}
