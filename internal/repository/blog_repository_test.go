package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

func blogRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "slug", "title", "excerpt", "content", "author", "date", "category", "image", "read_time", "published", "tags", "created_at", "updated_at"}).
		AddRow("blog-1", "hello-world", "Hello", "An excerpt", "Body", "Admin", time.Now(), "news", "", "3 min", true, pq.StringArray{"intro"}, time.Now(), time.Now())
}

func TestBlogRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlogRepository(db)

	published := true
	mock.ExpectQuery("SELECT .* FROM blogs WHERE 1=1 AND category = \\$1 AND published = \\$2 ORDER BY date DESC LIMIT 20 OFFSET 0").
		WithArgs("news", true).
		WillReturnRows(blogRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM blogs WHERE 1=1 AND category = \\$1 AND published = \\$2").
		WithArgs("news", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	blogs, total, err := repo.List(context.Background(), models.BlogFilter{Category: "news", Published: &published})
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "hello-world", blogs[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlogRepository(db)

	mock.ExpectExec("INSERT INTO blogs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	blog := &models.Blog{Slug: "hello-world", Title: "Hello", Excerpt: "An excerpt", Content: "Body", Author: "Admin", Category: "news"}
	require.NoError(t, repo.Create(context.Background(), blog))
	assert.NotEmpty(t, blog.ID)
	assert.False(t, blog.Date.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepositoryFindBySlugNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlogRepository(db)

	mock.ExpectQuery("SELECT .* FROM blogs WHERE slug").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBlogRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBlogRepository(db)

	mock.ExpectExec("DELETE FROM blogs").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
