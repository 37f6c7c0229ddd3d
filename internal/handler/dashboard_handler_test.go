package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	"github.com/Nshuti7/wholesome-ug-bn/internal/service"
)

type fakeDashboardRepo struct{}

func (fakeDashboardRepo) Counts(ctx context.Context) (models.DashboardCounts, error) {
	return models.DashboardCounts{
		Blogs:    models.EntityCount{Total: 3, Marked: 2},
		Contacts: models.EntityCount{Total: 8, Marked: 1},
	}, nil
}

func (fakeDashboardRepo) MonthlyCounts(ctx context.Context, entity string, months int) ([]models.MonthlyCount, error) {
	return []models.MonthlyCount{{Year: 2026, Month: 8, Count: 2}}, nil
}

func (fakeDashboardRepo) RecentContacts(ctx context.Context, limit int) ([]models.Contact, error) {
	return nil, nil
}

func (fakeDashboardRepo) RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error) {
	return nil, nil
}

type fakeContactExport struct{}

func (fakeContactExport) ListAll(ctx context.Context) ([]models.Contact, error) {
	return []models.Contact{{
		Name: "Grace", Email: "grace@example.com", Message: "Hello",
		Status: models.ContactUnread, CreatedAt: time.Now(),
	}}, nil
}

type fakeSubscriberExport struct{}

func (fakeSubscriberExport) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	return nil, nil
}

func newDashboardTestHandler() *DashboardHandler {
	svc := service.NewDashboardService(fakeDashboardRepo{}, fakeContactExport{}, fakeSubscriberExport{}, nil)
	return NewDashboardHandler(svc)
}

func TestDashboardHandlerStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Success bool                  `json:"success"`
		Data    models.DashboardStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, 3, envelope.Data.Counts.Blogs.Total)
	require.Len(t, envelope.Data.Monthly.Contacts, 1)
}

func TestDashboardHandlerExportContactsCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/export/contacts?format=csv", nil)

	handler.ExportContacts(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "contacts-")
	assert.Contains(t, rec.Body.String(), "grace@example.com")
}

func TestDashboardHandlerExportRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/export/contacts?format=xlsx", nil)

	handler.ExportContacts(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
