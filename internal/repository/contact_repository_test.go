package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

func contactRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "subject", "message", "status", "notes", "created_at", "updated_at"}).
		AddRow("contact-1", "Jane", "jane@example.com", "", "Hi", "A question", "unread", "", time.Now(), time.Now())
}

func TestContactRepositoryCreateDefaultsUnread(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	mock.ExpectExec("INSERT INTO contacts").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	contact := &models.Contact{Name: "Jane", Email: "jane@example.com", Message: "A question"}
	require.NoError(t, repo.Create(context.Background(), contact))
	assert.Equal(t, models.ContactUnread, contact.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	mock.ExpectQuery("SELECT .* FROM contacts WHERE 1=1 AND status = \\$1 ORDER BY created_at DESC LIMIT 20 OFFSET 0").
		WithArgs("unread").
		WillReturnRows(contactRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts WHERE 1=1 AND status = \\$1").
		WithArgs("unread").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	contacts, total, err := repo.List(context.Background(), models.ContactFilter{Status: "unread"})
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepositoryUpdateTriage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	status := "read"
	mock.ExpectQuery("UPDATE contacts SET").
		WithArgs("contact-1", "read", nil, sqlmock.AnyArg()).
		WillReturnRows(contactRows())

	contact, err := repo.Update(context.Background(), "contact-1", models.UpdateContactRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "contact-1", contact.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
