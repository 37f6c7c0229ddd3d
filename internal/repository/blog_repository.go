package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

// BlogRepository provides database access for blog posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new instance of BlogRepository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, slug, title, excerpt, content, author, date, category, image, read_time, published, tags, created_at, updated_at`

// Create inserts a new blog post.
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	blog.UpdatedAt = now
	if blog.Date.IsZero() {
		blog.Date = now
	}
	if blog.Tags == nil {
		blog.Tags = pq.StringArray{}
	}

	const query = `INSERT INTO blogs (id, slug, title, excerpt, content, author, date, category, image, read_time, published, tags, created_at, updated_at) VALUES (:id, :slug, :title, :excerpt, :content, :author, :date, :category, :image, :read_time, :published, :tags, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, blog); err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

// FindByID returns a blog post by identifier.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE id = $1 LIMIT 1`, blogColumns)
	var blog models.Blog
	if err := r.db.GetContext(ctx, &blog, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return &blog, nil
}

// FindBySlug returns a blog post by its slug.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE slug = $1 LIMIT 1`, blogColumns)
	var blog models.Blog
	if err := r.db.GetContext(ctx, &blog, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return &blog, nil
}

// List returns blog posts based on filters with total count, newest first.
func (r *BlogRepository) List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, int, error) {
	filter.Normalize()

	baseQuery := `FROM blogs WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Published != nil {
		conditions = append(conditions, fmt.Sprintf("published = $%d", len(args)+1))
		args = append(args, *filter.Published)
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY date DESC LIMIT %d OFFSET %d", blogColumns, baseQuery, filter.PageSize, filter.Offset())

	var blogs []models.Blog
	if err := r.db.SelectContext(ctx, &blogs, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	return blogs, total, nil
}

// Update sets the provided fields, leaving nil ones untouched, and returns
// the updated row. Tags are replaced wholesale when present.
func (r *BlogRepository) Update(ctx context.Context, id string, req models.UpdateBlogRequest, date *time.Time) (*models.Blog, error) {
	var tags interface{}
	if req.Tags != nil {
		tags = pq.StringArray(req.Tags)
	}

	query := fmt.Sprintf(`UPDATE blogs SET
		slug = COALESCE($2, slug),
		title = COALESCE($3, title),
		excerpt = COALESCE($4, excerpt),
		content = COALESCE($5, content),
		author = COALESCE($6, author),
		date = COALESCE($7, date),
		category = COALESCE($8, category),
		image = COALESCE($9, image),
		read_time = COALESCE($10, read_time),
		published = COALESCE($11, published),
		tags = COALESCE($12, tags),
		updated_at = $13
	WHERE id = $1
	RETURNING %s`, blogColumns)

	var blog models.Blog
	err := r.db.GetContext(ctx, &blog, query, id,
		req.Slug, req.Title, req.Excerpt, req.Content, req.Author, date,
		req.Category, req.Image, req.ReadTime, req.Published, tags, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return &blog, nil
}

// Delete removes a blog post permanently.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM blogs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
