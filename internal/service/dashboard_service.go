package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/export"
)

const (
	dashboardTrendMonths = 6
	dashboardRecentLimit = 5
)

type dashboardRepository interface {
	Counts(ctx context.Context) (models.DashboardCounts, error)
	MonthlyCounts(ctx context.Context, entity string, months int) ([]models.MonthlyCount, error)
	RecentContacts(ctx context.Context, limit int) ([]models.Contact, error)
	RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error)
}

type exportContactRepository interface {
	ListAll(ctx context.Context) ([]models.Contact, error)
}

type exportSubscriberRepository interface {
	ListAll(ctx context.Context) ([]models.Subscriber, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DashboardService aggregates the stats behind the admin landing page and
// renders contact/subscriber exports.
type DashboardService struct {
	repo        dashboardRepository
	contacts    exportContactRepository
	subscribers exportSubscriberRepository
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, contacts exportContactRepository, subscribers exportSubscriberRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:        repo,
		contacts:    contacts,
		subscribers: subscribers,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// Stats builds the dashboard payload: per-entity counts, six months of
// submission trends and the latest activity.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count content")
	}

	contactTrend, err := s.repo.MonthlyCounts(ctx, "contacts", dashboardTrendMonths)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load contact trend")
	}
	subscriberTrend, err := s.repo.MonthlyCounts(ctx, "subscribers", dashboardTrendMonths)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subscriber trend")
	}

	recentContacts, err := s.repo.RecentContacts(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent contacts")
	}
	recentBlogs, err := s.repo.RecentBlogs(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent blogs")
	}

	return &models.DashboardStats{
		Counts: counts,
		Monthly: models.DashboardMonthly{
			Contacts:    contactTrend,
			Subscribers: subscriberTrend,
		},
		Recent: models.DashboardRecent{
			Contacts: recentContacts,
			Blogs:    recentBlogs,
		},
	}, nil
}

// ExportContacts renders every contact submission as CSV or PDF.
func (s *DashboardService) ExportContacts(ctx context.Context, format string) (*ExportFile, error) {
	contacts, err := s.contacts.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load contacts")
	}

	table := export.Table{
		Title:   "Contact Messages",
		Headers: []string{"Name", "Email", "Phone", "Subject", "Message", "Status", "Received"},
	}
	for _, c := range contacts {
		table.Rows = append(table.Rows, []string{
			c.Name, c.Email, c.Phone, c.Subject, c.Message,
			string(c.Status), c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return s.render(table, "contacts", format)
}

// ExportSubscribers renders every newsletter signup as CSV or PDF.
func (s *DashboardService) ExportSubscribers(ctx context.Context, format string) (*ExportFile, error) {
	subs, err := s.subscribers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subscribers")
	}

	table := export.Table{
		Title:   "Newsletter Subscribers",
		Headers: []string{"Email", "Status", "Subscribed", "Unsubscribed"},
	}
	for _, sub := range subs {
		status := "active"
		unsubscribed := ""
		if !sub.Active {
			status = "unsubscribed"
			if sub.UnsubscribedAt != nil {
				unsubscribed = sub.UnsubscribedAt.Format("2006-01-02")
			}
		}
		table.Rows = append(table.Rows, []string{
			sub.Email, status, sub.CreatedAt.Format("2006-01-02"), unsubscribed,
		})
	}

	return s.render(table, "subscribers", format)
}

func (s *DashboardService) render(table export.Table, name, format string) (*ExportFile, error) {
	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "", "csv":
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s-%s.csv", name, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s-%s.pdf", name, stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "unsupported export format, use csv or pdf")
	}
}
