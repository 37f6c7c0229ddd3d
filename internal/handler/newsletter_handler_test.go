package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
)

type fakeSubscriberRepo struct {
	existing *models.Subscriber
}

func (f *fakeSubscriberRepo) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	if f.existing != nil && f.existing.Email == email {
		return f.existing, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, sub *models.Subscriber) error {
	sub.ID = "sub-1"
	sub.Active = true
	return nil
}

func (f *fakeSubscriberRepo) SetActive(ctx context.Context, id string, active bool) error {
	if f.existing != nil && f.existing.ID == id {
		f.existing.Active = active
	}
	return nil
}

func (f *fakeSubscriberRepo) List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error) {
	return nil, 0, nil
}

func (f *fakeSubscriberRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func newNewsletterTestHandler(repo *fakeSubscriberRepo) *NewsletterHandler {
	return NewNewsletterHandler(service.NewNewsletterService(repo, nil, nil))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNewsletterHandlerSubscribe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNewsletterTestHandler(&fakeSubscriberRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/newsletter/subscribe", `{"email":"grace@example.com"}`)

	handler.Subscribe(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Contains(t, string(envelope.Data), "grace@example.com")
}

func TestNewsletterHandlerSubscribeConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNewsletterTestHandler(&fakeSubscriberRepo{
		existing: &models.Subscriber{ID: "sub-1", Email: "grace@example.com", Active: true},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/newsletter/subscribe", `{"email":"grace@example.com"}`)

	handler.Subscribe(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestNewsletterHandlerSubscribeRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNewsletterTestHandler(&fakeSubscriberRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/newsletter/subscribe", `{`)

	handler.Subscribe(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsletterHandlerUnsubscribeUnknownEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNewsletterTestHandler(&fakeSubscriberRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/newsletter/unsubscribe", `{"email":"nobody@example.com"}`)

	handler.Unsubscribe(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
