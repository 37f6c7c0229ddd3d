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

// GalleryRepository provides database access for gallery images.
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository creates a new instance of GalleryRepository.
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

const galleryColumns = `id, title, image, category, description, sort_order, published, created_at, updated_at`

// Create inserts a new gallery image.
func (r *GalleryRepository) Create(ctx context.Context, item *models.Gallery) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO gallery (id, title, image, category, description, sort_order, published, created_at, updated_at) VALUES (:id, :title, :image, :category, :description, :sort_order, :published, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create gallery item: %w", err)
	}
	return nil
}

// FindByID returns a gallery image by identifier.
func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*models.Gallery, error) {
	query := fmt.Sprintf(`SELECT %s FROM gallery WHERE id = $1 LIMIT 1`, galleryColumns)
	var item models.Gallery
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find gallery item by id: %w", err)
	}
	return &item, nil
}

// List returns gallery images in display order. When category is set only
// that category is returned; when publishedOnly is set drafts are hidden.
func (r *GalleryRepository) List(ctx context.Context, category string, publishedOnly bool) ([]models.Gallery, error) {
	query := fmt.Sprintf(`SELECT %s FROM gallery WHERE 1=1`, galleryColumns)
	var args []interface{}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if publishedOnly {
		query += " AND published = TRUE"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	var items []models.Gallery
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return items, nil
}

// Update sets the provided fields, leaving nil ones untouched, and returns
// the updated row.
func (r *GalleryRepository) Update(ctx context.Context, id string, req models.UpdateGalleryRequest) (*models.Gallery, error) {
	query := fmt.Sprintf(`UPDATE gallery SET
		title = COALESCE($2, title),
		image = COALESCE($3, image),
		category = COALESCE($4, category),
		description = COALESCE($5, description),
		sort_order = COALESCE($6, sort_order),
		published = COALESCE($7, published),
		updated_at = $8
	WHERE id = $1
	RETURNING %s`, galleryColumns)

	var item models.Gallery
	err := r.db.GetContext(ctx, &item, query, id,
		req.Title, req.Image, req.Category, req.Description, req.SortOrder, req.Published, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update gallery item: %w", err)
	}
	return &item, nil
}

// Delete removes a gallery image permanently.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM gallery WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
