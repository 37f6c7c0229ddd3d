package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

// NewsletterRepository provides database access for newsletter subscribers.
type NewsletterRepository struct {
	db *sqlx.DB
}

// NewNewsletterRepository creates a new instance of NewsletterRepository.
func NewNewsletterRepository(db *sqlx.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

const subscriberColumns = `id, email, active, unsubscribed_at, created_at, updated_at`

// FindByEmail returns a subscriber by email, active or not.
func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscribers WHERE LOWER(email) = LOWER($1) LIMIT 1`, subscriberColumns)
	var sub models.Subscriber
	if err := r.db.GetContext(ctx, &sub, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subscriber by email: %w", err)
	}
	return &sub, nil
}

// Create inserts a new active subscriber.
func (r *NewsletterRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	sub.Active = true

	const query = `INSERT INTO subscribers (id, email, active, created_at, updated_at) VALUES (:id, :email, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

// SetActive flips the subscription state. Unsubscribing stamps the time so
// a later resubscribe reactivates the same row.
func (r *NewsletterRepository) SetActive(ctx context.Context, id string, active bool) error {
	now := time.Now().UTC()
	var unsubscribedAt *time.Time
	if !active {
		unsubscribedAt = &now
	}

	const query = `UPDATE subscribers SET active = $2, unsubscribed_at = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active, unsubscribedAt, now)
	if err != nil {
		return fmt.Errorf("set subscriber active: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns subscribers with total count, newest first.
func (r *NewsletterRepository) List(ctx context.Context, filter models.SubscriberFilter) ([]models.Subscriber, int, error) {
	filter.Normalize()

	baseQuery := `FROM subscribers WHERE 1=1`
	var args []interface{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		baseQuery += fmt.Sprintf(" AND active = $%d", len(args))
	}

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", subscriberColumns, baseQuery, filter.PageSize, filter.Offset())

	var subs []models.Subscriber
	if err := r.db.SelectContext(ctx, &subs, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count subscribers: %w", err)
	}

	return subs, total, nil
}

// ListAll returns every subscriber, newest first, for exports.
func (r *NewsletterRepository) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscribers ORDER BY created_at DESC`, subscriberColumns)
	var subs []models.Subscriber
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("list all subscribers: %w", err)
	}
	return subs, nil
}

// Delete removes a subscriber permanently.
func (r *NewsletterRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM subscribers WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
