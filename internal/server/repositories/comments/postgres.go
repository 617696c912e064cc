// Package comments provides the PostgreSQL-backed comment repository.
package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts comment iff its blog exists, otherwise common.ErrorNotFound.
// ID and CreatedAt are assigned by the caller.
func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, blog_id, user_id, content, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::timestamptz
		WHERE EXISTS (SELECT 1 FROM blogs WHERE id = $2::uuid)
	`
	res, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.BlogID, comment.UserID, comment.Content, comment.CreatedAt)
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

// Get returns the comment with commentID inside blogID.
func (r *PostgresRepository) Get(ctx context.Context, blogID, commentID string) (*models.Comment, error) {
	query := ` SELECT id, blog_id, user_id, content, created_at FROM comments
		WHERE id = $1 AND blog_id = $2
		`
	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, commentID, blogID).Scan(&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Delete removes the comment only when userID authored it.
func (r *PostgresRepository) Delete(ctx context.Context, blogID, commentID, userID string) error {
	query := `
		DELETE FROM comments
		WHERE id = $1 AND blog_id = $2 AND user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, commentID, blogID, userID)
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
