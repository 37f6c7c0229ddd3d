package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

type mockDashboardRepo struct {
	counts    models.DashboardCounts
	countsErr error
	monthly   map[string][]models.MonthlyCount
	contacts  []models.Contact
	blogs     []models.Blog
}

func (m *mockDashboardRepo) Counts(ctx context.Context) (models.DashboardCounts, error) {
	return m.counts, m.countsErr
}

func (m *mockDashboardRepo) MonthlyCounts(ctx context.Context, entity string, months int) ([]models.MonthlyCount, error) {
	return m.monthly[entity], nil
}

func (m *mockDashboardRepo) RecentContacts(ctx context.Context, limit int) ([]models.Contact, error) {
	return m.contacts, nil
}

func (m *mockDashboardRepo) RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error) {
	return m.blogs, nil
}

type mockExportContacts struct {
	contacts []models.Contact
	err      error
}

func (m *mockExportContacts) ListAll(ctx context.Context) ([]models.Contact, error) {
	return m.contacts, m.err
}

type mockExportSubscribers struct {
	subs []models.Subscriber
}

func (m *mockExportSubscribers) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	return m.subs, nil
}

func TestDashboardStatsAssemblesPayload(t *testing.T) {
	repo := &mockDashboardRepo{
		counts: models.DashboardCounts{
			Blogs:    models.EntityCount{Total: 12, Marked: 9},
			Contacts: models.EntityCount{Total: 30, Marked: 4},
		},
		monthly: map[string][]models.MonthlyCount{
			"contacts":    {{Year: 2026, Month: 8, Count: 7}},
			"subscribers": {{Year: 2026, Month: 8, Count: 3}},
		},
		contacts: []models.Contact{{ID: "c-1", Name: "Grace", Status: models.ContactUnread}},
		blogs:    []models.Blog{{ID: "b-1", Title: "Harvest update"}},
	}
	svc := NewDashboardService(repo, nil, nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Counts.Blogs.Total)
	assert.Equal(t, 4, stats.Counts.Contacts.Marked)
	require.Len(t, stats.Monthly.Contacts, 1)
	assert.Equal(t, 7, stats.Monthly.Contacts[0].Count)
	require.Len(t, stats.Monthly.Subscribers, 1)
	require.Len(t, stats.Recent.Contacts, 1)
	assert.Equal(t, "Grace", stats.Recent.Contacts[0].Name)
	require.Len(t, stats.Recent.Blogs, 1)
}

func TestDashboardStatsPropagatesCountError(t *testing.T) {
	repo := &mockDashboardRepo{countsErr: errors.New("db down")}
	svc := NewDashboardService(repo, nil, nil, nil)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestDashboardExportContactsCSV(t *testing.T) {
	contacts := &mockExportContacts{contacts: []models.Contact{
		{
			Name: "Grace", Email: "grace@example.com", Subject: "Volunteering",
			Message: "How can I help?", Status: models.ContactRead,
			CreatedAt: time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC),
		},
	}}
	svc := NewDashboardService(&mockDashboardRepo{}, contacts, nil, nil)

	file, err := svc.ExportContacts(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, fmt.Sprintf("contacts-%s.csv", time.Now().Format("2006-01-02")), file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, "grace@example.com", records[1][1])
	assert.Equal(t, "read", records[1][5])
}

func TestDashboardExportContactsDefaultsToCSV(t *testing.T) {
	svc := NewDashboardService(&mockDashboardRepo{}, &mockExportContacts{}, nil, nil)

	file, err := svc.ExportContacts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestDashboardExportSubscribersPDF(t *testing.T) {
	then := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	subs := &mockExportSubscribers{subs: []models.Subscriber{
		{Email: "grace@example.com", Active: true, CreatedAt: then},
		{Email: "old@example.com", Active: false, UnsubscribedAt: &then, CreatedAt: then},
	}}
	svc := NewDashboardService(&mockDashboardRepo{}, nil, subs, nil)

	file, err := svc.ExportSubscribers(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, fmt.Sprintf("subscribers-%s.pdf", time.Now().Format("2006-01-02")), file.Filename)
	require.True(t, len(file.Data) > 4)
	assert.Equal(t, "%PDF", string(file.Data[:4]))
}

func TestDashboardExportRejectsUnknownFormat(t *testing.T) {
	svc := NewDashboardService(&mockDashboardRepo{}, &mockExportContacts{}, nil, nil)

	_, err := svc.ExportContacts(context.Background(), "xlsx")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBadRequest.Code, appErr.Code)
	assert.Equal(t, "unsupported export format, use csv or pdf", appErr.Message)
}

func TestDashboardExportPropagatesRepoError(t *testing.T) {
	contacts := &mockExportContacts{err: errors.New("db down")}
	svc := NewDashboardService(&mockDashboardRepo{}, contacts, nil, nil)

	_, err := svc.ExportContacts(context.Background(), "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
