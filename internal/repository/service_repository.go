package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

// ServiceRepository provides database access for service offerings.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `id, title, description, icon, image, long_description, features, sort_order, published, created_at, updated_at`

// Create inserts a new service offering.
func (r *ServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = now
	}
	svc.UpdatedAt = now
	if svc.Features == nil {
		svc.Features = pq.StringArray{}
	}

	const query = `INSERT INTO services (id, title, description, icon, image, long_description, features, sort_order, published, created_at, updated_at) VALUES (:id, :title, :description, :icon, :image, :long_description, :features, :sort_order, :published, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, svc); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// FindByID returns a service offering by identifier.
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE id = $1 LIMIT 1`, serviceColumns)
	var svc models.Service
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find service by id: %w", err)
	}
	return &svc, nil
}

// List returns service offerings in display order.
func (r *ServiceRepository) List(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services`, serviceColumns)
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// Update sets the provided fields, leaving nil ones untouched, and returns
// the updated row. Features are replaced wholesale when present.
func (r *ServiceRepository) Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	var features interface{}
	if req.Features != nil {
		features = pq.StringArray(req.Features)
	}

	query := fmt.Sprintf(`UPDATE services SET
		title = COALESCE($2, title),
		description = COALESCE($3, description),
		icon = COALESCE($4, icon),
		image = COALESCE($5, image),
		long_description = COALESCE($6, long_description),
		features = COALESCE($7, features),
		sort_order = COALESCE($8, sort_order),
		published = COALESCE($9, published),
		updated_at = $10
	WHERE id = $1
	RETURNING %s`, serviceColumns)

	var svc models.Service
	err := r.db.GetContext(ctx, &svc, query, id,
		req.Title, req.Description, req.Icon, req.Image, req.LongDescription,
		features, req.SortOrder, req.Published, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return &svc, nil
}

// Delete removes a service offering permanently.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM services WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
