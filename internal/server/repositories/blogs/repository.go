package blogs

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository persists blog posts. Get and List return blogs with the
// assigned editor expanded and comments in creation order.
type Repository interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context) ([]*models.Blog, error)
	Exists(ctx context.Context, id string) (bool, error)
	// AssignEditor sets the editor only if none is set yet. It returns
	// common.ErrorNotFound or common.ErrAlreadyAssigned when nothing changed.
	AssignEditor(ctx context.Context, blogID, editorID string) error
	// UpdateAssigned applies patch only when editorID is the assigned editor.
	// A miss is reported as common.ErrorNotFound either way.
	UpdateAssigned(ctx context.Context, blogID, editorID string, patch models.BlogPatch) error
}
