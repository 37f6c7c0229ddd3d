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

// TeamRepository provides database access for team members.
type TeamRepository struct {
	db *sqlx.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `id, name, role, image, bio, social_links, sort_order, published, created_at, updated_at`

// Create inserts a new team member.
func (r *TeamRepository) Create(ctx context.Context, member *models.TeamMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	if member.SocialLinks == nil {
		member.SocialLinks = pq.StringArray{}
	}

	const query = `INSERT INTO team_members (id, name, role, image, bio, social_links, sort_order, published, created_at, updated_at) VALUES (:id, :name, :role, :image, :bio, :social_links, :sort_order, :published, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

// FindByID returns a team member by identifier.
func (r *TeamRepository) FindByID(ctx context.Context, id string) (*models.TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members WHERE id = $1 LIMIT 1`, teamColumns)
	var member models.TeamMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find team member by id: %w", err)
	}
	return &member, nil
}

// List returns team members in display order.
func (r *TeamRepository) List(ctx context.Context, publishedOnly bool) ([]models.TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members`, teamColumns)
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	var members []models.TeamMember
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// Update sets the provided fields, leaving nil ones untouched, and returns
// the updated row.
func (r *TeamRepository) Update(ctx context.Context, id string, req models.UpdateTeamMemberRequest) (*models.TeamMember, error) {
	var links interface{}
	if req.SocialLinks != nil {
		links = pq.StringArray(req.SocialLinks)
	}

	query := fmt.Sprintf(`UPDATE team_members SET
		name = COALESCE($2, name),
		role = COALESCE($3, role),
		image = COALESCE($4, image),
		bio = COALESCE($5, bio),
		social_links = COALESCE($6, social_links),
		sort_order = COALESCE($7, sort_order),
		published = COALESCE($8, published),
		updated_at = $9
	WHERE id = $1
	RETURNING %s`, teamColumns)

	var member models.TeamMember
	err := r.db.GetContext(ctx, &member, query, id,
		req.Name, req.Role, req.Image, req.Bio, links, req.SortOrder, req.Published, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return &member, nil
}

// Delete removes a team member permanently.
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM team_members WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
