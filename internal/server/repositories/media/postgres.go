// Package media provides the PostgreSQL-backed repository for blog media metadata.
package media

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

// Create records m when m.UploadedBy is assigned to m.BlogID. Any miss,
// missing blog or foreign editor, is common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	query := `
		INSERT INTO blog_media (blog_id, storage_key, uploaded_by)
		SELECT $1::uuid, $2::text, $3::uuid
		WHERE EXISTS (SELECT 1 FROM blogs WHERE id = $1::uuid AND assigned_editor = $3::uuid)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, m.BlogID, m.StorageKey, m.UploadedBy).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

// ListByBlog returns the media of blogID, oldest first.
func (r *PostgresRepository) ListByBlog(ctx context.Context, blogID string) ([]*models.Media, error) {
	query := ` SELECT id, blog_id, storage_key, uploaded_by, created_at FROM blog_media
		WHERE blog_id = $1 ORDER BY created_at, id
		`
	rows, err := r.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to select media: %w", err)
	}
	defer rows.Close()

	result := []*models.Media{}
	for rows.Next() {
		var item models.Media
		if err := rows.Scan(&item.ID, &item.BlogID, &item.StorageKey, &item.UploadedBy, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
