package comments

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository stores comments owned by blogs. Create and Delete are single
// conditional statements, so a missing blog or a foreign comment never
// produces a partial write.
type Repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Get(ctx context.Context, blogID, commentID string) (*models.Comment, error)
	Delete(ctx context.Context, blogID, commentID, userID string) error
}
