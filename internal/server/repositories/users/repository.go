package users

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository is the credential store. Create enforces uniqueness of
// username and email and reports violations as common.ErrDuplicateCredential.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
