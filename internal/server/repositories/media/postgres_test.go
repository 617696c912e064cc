package media

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQuery = `(?s)INSERT\s+INTO\s+blog_media\s*\(blog_id,\s*storage_key,\s*uploaded_by\).*assigned_editor\s*=\s*\$3::uuid\)\s*RETURNING\s+id,\s*created_at`
	listQuery   = `(?s)SELECT\s+id,\s*blog_id,\s*storage_key,\s*uploaded_by,\s*created_at\s+FROM\s+blog_media\s+WHERE\s+blog_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id`
)

func TestCreate_AssignedEditor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQuery).WithArgs("b-1", "blogs/b-1/k", "e-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-1", now))

	got, err := repo.Create(context.Background(), &models.Media{BlogID: "b-1", StorageKey: "blogs/b-1/k", UploadedBy: "e-1"})
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.ID)
	assert.True(t, got.CreatedAt.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NotAssigned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	_, err := repo.Create(context.Background(), &models.Media{BlogID: "b-1", StorageKey: "k", UploadedBy: "e-2"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Media{BlogID: "b-1", StorageKey: "k", UploadedBy: "e-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestListByBlog(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(listQuery).WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "blog_id", "storage_key", "uploaded_by", "created_at"}).
			AddRow("m-1", "b-1", "k1", "e-1", now).
			AddRow("m-2", "b-1", "k2", "e-1", now))

	got, err := repo.ListByBlog(context.Background(), "b-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "k1", got[0].StorageKey)
	assert.Equal(t, "k2", got[1].StorageKey)
}

func TestListByBlog_Errors(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("boom"))

	_, err := repo.ListByBlog(context.Background(), "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select media")

	mock.ExpectQuery(listQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "blog_id", "storage_key", "uploaded_by", "created_at"}).
			AddRow("m-1", "b-1", "k1", "e-1", time.Now()).
			RowError(0, errors.New("row err")))

	_, err = repo.ListByBlog(context.Background(), "b-1")
	require.Error(t, err)
}
