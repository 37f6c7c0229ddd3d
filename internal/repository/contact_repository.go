package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

// ContactRepository provides database access for contact submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, status, notes, created_at, updated_at`

// Create inserts a new contact submission. New submissions start unread.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now
	if contact.Status == "" {
		contact.Status = models.ContactUnread
	}

	const query = `INSERT INTO contacts (id, name, email, phone, subject, message, status, notes, created_at, updated_at) VALUES (:id, :name, :email, :phone, :subject, :message, :status, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// FindByID returns a contact submission by identifier.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE id = $1 LIMIT 1`, contactColumns)
	var contact models.Contact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find contact by id: %w", err)
	}
	return &contact, nil
}

// List returns contact submissions with total count, newest first.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int, error) {
	filter.Normalize()

	baseQuery := `FROM contacts WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", contactColumns, baseQuery, filter.PageSize, filter.Offset())

	var contacts []models.Contact
	if err := r.db.SelectContext(ctx, &contacts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	return contacts, total, nil
}

// ListAll returns every contact submission, newest first, for exports.
func (r *ContactRepository) ListAll(ctx context.Context) ([]models.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts ORDER BY created_at DESC`, contactColumns)
	var contacts []models.Contact
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("list all contacts: %w", err)
	}
	return contacts, nil
}

// Update applies triage changes and returns the updated row.
func (r *ContactRepository) Update(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
	query := fmt.Sprintf(`UPDATE contacts SET
		status = COALESCE($2, status),
		notes = COALESCE($3, notes),
		updated_at = $4
	WHERE id = $1
	RETURNING %s`, contactColumns)

	var contact models.Contact
	if err := r.db.GetContext(ctx, &contact, query, id, req.Status, req.Notes, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return &contact, nil
}

// Delete removes a contact submission permanently.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contacts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
