// Package users provides the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user and fills in the generated id, verification flag and
// creation time.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password_hash, role)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, is_verified, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, string(user.Role)).Scan(&user.ID, &user.IsVerified, &user.CreatedAt)

	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			return nil, duplicateError(constraint)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func duplicateError(constraint string) error {
	switch constraint {
	case usernameConstraint:
		return fmt.Errorf("username %w", common.ErrDuplicateCredential)
	case emailConstraint:
		return fmt.Errorf("email %w", common.ErrDuplicateCredential)
	default:
		return fmt.Errorf("user %w", common.ErrDuplicateCredential)
	}
}

// GetByEmail returns common.ErrorNotFound when no user has that email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, role, is_verified, created_at FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

// GetByID returns common.ErrorNotFound when no user has that id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, role, is_verified, created_at FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &role, &user.IsVerified, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Role = models.Role(role)
	return user, nil
}
