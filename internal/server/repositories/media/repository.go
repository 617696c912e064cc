package media

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository stores object metadata for blog media. Create succeeds only
// when the uploader is the blog's assigned editor.
type Repository interface {
	Create(ctx context.Context, m *models.Media) (*models.Media, error)
	ListByBlog(ctx context.Context, blogID string) ([]*models.Media, error)
}
