package memory

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// MediaRepository implements media.Repository.
type MediaRepository struct{ s *Store }

func (r *MediaRepository) Create(_ context.Context, m *models.Media) (*models.Media, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.blogs[m.BlogID]
	if !ok || d.editorID == "" || d.editorID != m.UploadedBy {
		return nil, common.ErrorNotFound
	}

	item := *m
	item.ID = common.NewID()
	item.CreatedAt = s.now()
	s.media[m.BlogID] = append(s.media[m.BlogID], &item)

	out := item
	return &out, nil
}

func (r *MediaRepository) ListByBlog(_ context.Context, blogID string) ([]*models.Media, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.media[blogID]
	result := make([]*models.Media, 0, len(items))
	for _, m := range items {
		out := *m
		result = append(result, &out)
	}
	return result, nil
}
