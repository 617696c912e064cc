package blogs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/google/go-cmp/cmp"
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

var (
	blogCols    = []string{"id", "title", "content", "created_at", "updated_at", "id", "username", "email"}
	commentCols = []string{"id", "blog_id", "user_id", "content", "created_at"}
)

const (
	insertBlog     = `(?s)^INSERT\s+INTO\s+blogs\s*\(title,\s*content\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	selectOne      = `(?s)^SELECT\s+b\.id,.*FROM\s+blogs\s+b\s+LEFT\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*b\.assigned_editor\s+WHERE\s+b\.id\s*=\s*\$1$`
	selectAll      = `(?s)^SELECT\s+b\.id,.*FROM\s+blogs\s+b\s+LEFT\s+JOIN\s+users.*ORDER\s+BY\s+b\.seq$`
	selectComments = `(?s)^SELECT\s+id,\s*blog_id,\s*user_id,\s*content,\s*created_at\s+FROM\s+comments\s+WHERE\s+blog_id\s*=\s*\$1\s+ORDER\s+BY\s+seq$`
	selectAllComms = `(?s)^SELECT\s+id,\s*blog_id,\s*user_id,\s*content,\s*created_at\s+FROM\s+comments\s+ORDER\s+BY\s+blog_id,\s*seq$`
	assignQuery    = `(?s)UPDATE\s+blogs\s+SET\s+assigned_editor\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+assigned_editor\s+IS\s+NULL`
	existsQuery    = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+blogs\s+WHERE\s+id\s*=\s*\$1\)$`
	updateQuery    = `(?s)UPDATE\s+blogs\s+SET\s+title\s*=\s*COALESCE\(NULLIF\(\$3,\s*''\),\s*title\),\s*content\s*=\s*COALESCE\(NULLIF\(\$4,\s*''\),\s*content\),\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+assigned_editor\s*=\s*\$2`
)

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertBlog).WithArgs("T", "C").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("b-1", now, now))

	got, err := repo.Create(context.Background(), &models.Blog{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID)
	assert.Nil(t, got.AssignedEditor)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Comments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertBlog).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Blog{Title: "T", Content: "C"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestGet_WithEditorAndComments(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(selectOne).WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow("b-1", "T", "C", now, now, "e-1", "ed", "ed@example.com"))
	mock.ExpectQuery(selectComments).WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(commentCols).
			AddRow("c-1", "b-1", "u-1", "first", now).
			AddRow("c-2", "b-1", "u-2", "second", now))
	mock.ExpectCommit()

	got, err := repo.Get(context.Background(), "b-1")
	require.NoError(t, err)

	want := &models.Blog{
		ID: "b-1", Title: "T", Content: "C", CreatedAt: now, UpdatedAt: now,
		AssignedEditor: &models.EditorRef{ID: "e-1", Username: "ed", Email: "ed@example.com"},
		Comments: []models.Comment{
			{ID: "c-1", BlogID: "b-1", UserID: "u-1", Content: "first", CreatedAt: now},
			{ID: "c-2", BlogID: "b-1", UserID: "u-2", Content: "second", CreatedAt: now},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Get mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NoEditor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(selectOne).WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow("b-1", "T", "C", now, now, nil, nil, nil))
	mock.ExpectQuery(selectComments).WithArgs("b-1").WillReturnRows(sqlmock.NewRows(commentCols))
	mock.ExpectCommit()

	got, err := repo.Get(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Nil(t, got.AssignedEditor)
	assert.NotNil(t, got.Comments)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectOne).WithArgs("missing").WillReturnRows(sqlmock.NewRows(blogCols))
	mock.ExpectRollback()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_GroupsCommentsInOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(selectAll).
		WillReturnRows(sqlmock.NewRows(blogCols).
			AddRow("b-1", "T1", "C1", now, now, nil, nil, nil).
			AddRow("b-2", "T2", "C2", now, now, "e-1", "ed", "ed@example.com"))
	mock.ExpectQuery(selectAllComms).
		WillReturnRows(sqlmock.NewRows(commentCols).
			AddRow("c-1", "b-2", "u-1", "x", now).
			AddRow("c-2", "b-2", "u-1", "y", now))
	mock.ExpectCommit()

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-1", got[0].ID)
	assert.Empty(t, got[0].Comments)
	assert.Equal(t, "ed", got[1].AssignedEditor.Username)
	require.Len(t, got[1].Comments, 2)
	assert.Equal(t, "c-1", got[1].Comments[0].ID)
	assert.Equal(t, "c-2", got[1].Comments[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectAll).WillReturnRows(sqlmock.NewRows(blogCols))
	mock.ExpectQuery(selectAllComms).WillReturnRows(sqlmock.NewRows(commentCols))
	mock.ExpectCommit()

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectAll).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestAssignEditor(t *testing.T) {
	t.Run("assigned", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(assignQuery).WithArgs("b-1", "e-1").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AssignEditor(context.Background(), "b-1", "e-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already assigned", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(assignQuery).WithArgs("b-1", "e-2").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsQuery).WithArgs("b-1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.AssignEditor(context.Background(), "b-1", "e-2")
		assert.ErrorIs(t, err, common.ErrAlreadyAssigned)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blog missing", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(assignQuery).WithArgs("b-9", "e-1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsQuery).WithArgs("b-9").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.AssignEditor(context.Background(), "b-9", "e-1")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(assignQuery).WillReturnError(errors.New("boom"))

		err := repo.AssignEditor(context.Background(), "b-1", "e-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error: boom")
	})

	t.Run("unexpected rows", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(assignQuery).WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.AssignEditor(context.Background(), "b-1", "e-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected rows affected: 2")
	})
}

func TestUpdateAssigned(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQuery).WithArgs("b-1", "e-1", "", "new").WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateAssigned(context.Background(), "b-1", "e-1", models.BlogPatch{Content: "new"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not assigned or missing", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQuery).WithArgs("b-1", "e-2", "T", "").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAssigned(context.Background(), "b-1", "e-2", models.BlogPatch{Title: "T"})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewErrorResult(errors.New("ra")))

		err := repo.UpdateAssigned(context.Background(), "b-1", "e-1", models.BlogPatch{Title: "T"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rows affected error: ra")
	})
}

func TestExists_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQuery).WithArgs("b-1").WillReturnError(errors.New("boom"))

	_, err := repo.Exists(context.Background(), "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}
