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

// HeroRepository provides database access for landing-page hero images.
type HeroRepository struct {
	db *sqlx.DB
}

// NewHeroRepository creates a new instance of HeroRepository.
func NewHeroRepository(db *sqlx.DB) *HeroRepository {
	return &HeroRepository{db: db}
}

const heroColumns = `id, title, subtitle, image, display_type, alt, sort_order, active, created_at, updated_at`

// Create inserts a new hero image.
func (r *HeroRepository) Create(ctx context.Context, hero *models.Hero) error {
	if hero.ID == "" {
		hero.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if hero.CreatedAt.IsZero() {
		hero.CreatedAt = now
	}
	hero.UpdatedAt = now

	const query = `INSERT INTO heroes (id, title, subtitle, image, display_type, alt, sort_order, active, created_at, updated_at) VALUES (:id, :title, :subtitle, :image, :display_type, :alt, :sort_order, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, hero); err != nil {
		return fmt.Errorf("create hero: %w", err)
	}
	return nil
}

// FindByID returns a hero image by identifier.
func (r *HeroRepository) FindByID(ctx context.Context, id string) (*models.Hero, error) {
	query := fmt.Sprintf(`SELECT %s FROM heroes WHERE id = $1 LIMIT 1`, heroColumns)
	var hero models.Hero
	if err := r.db.GetContext(ctx, &hero, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find hero by id: %w", err)
	}
	return &hero, nil
}

// List returns hero images in display order. When displayType is set only
// that slot is returned; when activeOnly is set disabled ones are hidden.
func (r *HeroRepository) List(ctx context.Context, displayType string, activeOnly bool) ([]models.Hero, error) {
	query := fmt.Sprintf(`SELECT %s FROM heroes WHERE 1=1`, heroColumns)
	var args []interface{}

	if displayType != "" {
		args = append(args, displayType)
		query += fmt.Sprintf(" AND display_type = $%d", len(args))
	}
	if activeOnly {
		query += " AND active = TRUE"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	var heroes []models.Hero
	if err := r.db.SelectContext(ctx, &heroes, query, args...); err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}
	return heroes, nil
}

// Update sets the provided fields, leaving nil ones untouched, and returns
// the updated row.
func (r *HeroRepository) Update(ctx context.Context, id string, req models.UpdateHeroRequest) (*models.Hero, error) {
	query := fmt.Sprintf(`UPDATE heroes SET
		title = COALESCE($2, title),
		subtitle = COALESCE($3, subtitle),
		image = COALESCE($4, image),
		display_type = COALESCE($5, display_type),
		alt = COALESCE($6, alt),
		sort_order = COALESCE($7, sort_order),
		active = COALESCE($8, active),
		updated_at = $9
	WHERE id = $1
	RETURNING %s`, heroColumns)

	var hero models.Hero
	err := r.db.GetContext(ctx, &hero, query, id,
		req.Title, req.Subtitle, req.Image, req.DisplayType, req.Alt, req.SortOrder, req.Active, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update hero: %w", err)
	}
	return &hero, nil
}

// Delete removes a hero image permanently.
func (r *HeroRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM heroes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete hero: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
