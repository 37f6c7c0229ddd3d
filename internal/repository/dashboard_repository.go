package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

// DashboardRepository runs the aggregate queries behind the admin landing
// page.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// entityCountSpec maps one dashboard tile to its table and the condition
// that marks the interesting subset.
type entityCountSpec struct {
	table  string
	marked string
}

var countSpecs = map[string]entityCountSpec{
	"blogs":       {table: "blogs", marked: "published = TRUE"},
	"gallery":     {table: "gallery", marked: "published = TRUE"},
	"services":    {table: "services", marked: "published = TRUE"},
	"team":        {table: "team_members", marked: "published = TRUE"},
	"heroes":      {table: "heroes", marked: "active = TRUE"},
	"contacts":    {table: "contacts", marked: "status = 'unread'"},
	"subscribers": {table: "subscribers", marked: "active = TRUE"},
}

// Counts returns total and marked counts per entity in one pass per table.
func (r *DashboardRepository) Counts(ctx context.Context) (models.DashboardCounts, error) {
	var counts models.DashboardCounts

	out := map[string]*models.EntityCount{
		"blogs":       &counts.Blogs,
		"gallery":     &counts.Gallery,
		"services":    &counts.Services,
		"team":        &counts.Team,
		"heroes":      &counts.Heroes,
		"contacts":    &counts.Contacts,
		"subscribers": &counts.Subscribers,
	}

	for name, spec := range countSpecs {
		query := fmt.Sprintf(`SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE %s) AS marked FROM %s`, spec.marked, spec.table)
		var row struct {
			Total  int `db:"total"`
			Marked int `db:"marked"`
		}
		if err := r.db.GetContext(ctx, &row, query); err != nil {
			return counts, fmt.Errorf("count %s: %w", name, err)
		}
		out[name].Total = row.Total
		out[name].Marked = row.Marked
	}

	return counts, nil
}

// MonthlyCounts buckets rows of a table by creation month over the last n
// months. The table name comes from the fixed spec map, never from input.
func (r *DashboardRepository) MonthlyCounts(ctx context.Context, entity string, months int) ([]models.MonthlyCount, error) {
	spec, ok := countSpecs[entity]
	if !ok {
		return nil, fmt.Errorf("monthly counts: unknown entity %q", entity)
	}
	if months < 1 {
		months = 6
	}

	query := fmt.Sprintf(`SELECT
		EXTRACT(YEAR FROM created_at)::int AS year,
		EXTRACT(MONTH FROM created_at)::int AS month,
		COUNT(*)::int AS count
	FROM %s
	WHERE created_at >= date_trunc('month', NOW()) - ($1 || ' months')::interval
	GROUP BY 1, 2
	ORDER BY 1, 2`, spec.table)

	var buckets []models.MonthlyCount
	if err := r.db.SelectContext(ctx, &buckets, query, months-1); err != nil {
		return nil, fmt.Errorf("monthly counts for %s: %w", entity, err)
	}
	return buckets, nil
}

// RecentContacts returns the latest submissions for the activity feed.
func (r *DashboardRepository) RecentContacts(ctx context.Context, limit int) ([]models.Contact, error) {
	if limit < 1 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s FROM contacts ORDER BY created_at DESC LIMIT %d`, contactColumns, limit)

	var contacts []models.Contact
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("recent contacts: %w", err)
	}
	return contacts, nil
}

// RecentBlogs returns the latest posts for the activity feed.
func (r *DashboardRepository) RecentBlogs(ctx context.Context, limit int) ([]models.Blog, error) {
	if limit < 1 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s FROM blogs ORDER BY created_at DESC LIMIT %d`, blogColumns, limit)

	var blogs []models.Blog
	if err := r.db.SelectContext(ctx, &blogs, query); err != nil {
		return nil, fmt.Errorf("recent blogs: %w", err)
	}
	return blogs, nil
}
