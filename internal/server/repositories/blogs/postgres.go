// Package blogs provides the PostgreSQL-backed blog repository.
package blogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// PostgresRepository implements Repository. Reads that combine a blog with
// its comments run in a read-only snapshot transaction, so it needs the
// *sql.DB rather than a DBTX.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a blog without an editor and fills in id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	query :=
		`INSERT INTO blogs (title, content)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at
		 `
	err := r.db.QueryRowContext(ctx, query, blog.Title, blog.Content).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	blog.AssignedEditor = nil
	blog.Comments = []models.Comment{}
	return blog, nil
}

const selectBlog = `SELECT b.id, b.title, b.content, b.created_at, b.updated_at, u.id, u.username, u.email
	FROM blogs b LEFT JOIN users u ON u.id = b.assigned_editor
	`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*models.Blog, error) {
	b := &models.Blog{Comments: []models.Comment{}}
	var editorID, editorName, editorEmail sql.NullString
	if err := row.Scan(&b.ID, &b.Title, &b.Content, &b.CreatedAt, &b.UpdatedAt, &editorID, &editorName, &editorEmail); err != nil {
		return nil, err
	}
	if editorID.Valid {
		b.AssignedEditor = &models.EditorRef{ID: editorID.String, Username: editorName.String, Email: editorEmail.String}
	}
	return b, nil
}

// Get returns the blog with its comments, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Blog, error) {
	var blog *models.Blog

	err := dbx.WithTx(ctx, r.db, dbx.Snapshot, func(ctx context.Context, tx dbx.DBTX) error {
		b, err := scanBlog(tx.QueryRowContext(ctx, selectBlog+`WHERE b.id = $1`, id))
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, blog_id, user_id, content, created_at FROM comments
			 WHERE blog_id = $1 ORDER BY seq`, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c models.Comment
			if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
				return err
			}
			b.Comments = append(b.Comments, c)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		blog = b
		return nil
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return blog, nil
}

// List returns every blog in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Blog, error) {
	result := []*models.Blog{}

	err := dbx.WithTx(ctx, r.db, dbx.Snapshot, func(ctx context.Context, tx dbx.DBTX) error {
		rows, err := tx.QueryContext(ctx, selectBlog+`ORDER BY b.seq`)
		if err != nil {
			return err
		}
		defer rows.Close()

		byID := make(map[string]*models.Blog)
		for rows.Next() {
			b, err := scanBlog(rows)
			if err != nil {
				return err
			}
			byID[b.ID] = b
			result = append(result, b)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		crows, err := tx.QueryContext(ctx,
			`SELECT id, blog_id, user_id, content, created_at FROM comments
			 ORDER BY blog_id, seq`)
		if err != nil {
			return err
		}
		defer crows.Close()

		for crows.Next() {
			var c models.Comment
			if err := crows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
				return err
			}
			if b, ok := byID[c.BlogID]; ok {
				b.Comments = append(b.Comments, c)
			}
		}
		return crows.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Exists reports whether a blog with id is stored.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// AssignEditor is a single conditional update; the follow-up existence
// check only classifies a miss.
func (r *PostgresRepository) AssignEditor(ctx context.Context, blogID, editorID string) error {
	query := `
		UPDATE blogs SET assigned_editor = $2, updated_at = now()
		WHERE id = $1 AND assigned_editor IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, blogID, editorID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		exists, err := r.Exists(ctx, blogID)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrorNotFound
		}
		return common.ErrAlreadyAssigned
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// UpdateAssigned keeps the stored title or content when the patch field is empty.
func (r *PostgresRepository) UpdateAssigned(ctx context.Context, blogID, editorID string, patch models.BlogPatch) error {
	query := `
		UPDATE blogs SET
			title = COALESCE(NULLIF($3, ''), title),
			content = COALESCE(NULLIF($4, ''), content),
			updated_at = now()
		WHERE id = $1 AND assigned_editor = $2
	`
	res, err := r.db.ExecContext(ctx, query, blogID, editorID, patch.Title, patch.Content)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
