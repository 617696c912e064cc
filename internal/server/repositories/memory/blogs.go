package memory

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// BlogRepository implements blogs.Repository.
type BlogRepository struct{ s *Store }

// view must be called with the store lock held.
func (s *Store) view(d *blogDoc) *models.Blog {
	b := d.blog
	b.AssignedEditor = nil
	if d.editorID != "" {
		if u, ok := s.users[d.editorID]; ok {
			b.AssignedEditor = &models.EditorRef{ID: u.ID, Username: u.Username, Email: u.Email}
		} else {
			b.AssignedEditor = &models.EditorRef{ID: d.editorID}
		}
	}
	b.Comments = make([]models.Comment, len(d.comments))
	copy(b.Comments, d.comments)
	return &b
}

func (r *BlogRepository) Create(_ context.Context, blog *models.Blog) (*models.Blog, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	d := &blogDoc{blog: models.Blog{
		ID:        common.NewID(),
		Title:     blog.Title,
		Content:   blog.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	s.blogs[d.blog.ID] = d
	s.blogOrder = append(s.blogOrder, d.blog.ID)

	return s.view(d), nil
}

func (r *BlogRepository) Get(_ context.Context, id string) (*models.Blog, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.blogs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s.view(d), nil
}

func (r *BlogRepository) List(_ context.Context) ([]*models.Blog, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Blog, 0, len(s.blogOrder))
	for _, id := range s.blogOrder {
		result = append(result, s.view(s.blogs[id]))
	}
	return result, nil
}

func (r *BlogRepository) Exists(_ context.Context, id string) (bool, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.blogs[id]
	return ok, nil
}

func (r *BlogRepository) AssignEditor(_ context.Context, blogID, editorID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.blogs[blogID]
	if !ok {
		return common.ErrorNotFound
	}
	if d.editorID != "" {
		return common.ErrAlreadyAssigned
	}
	d.editorID = editorID
	d.blog.UpdatedAt = s.now()
	return nil
}

func (r *BlogRepository) UpdateAssigned(_ context.Context, blogID, editorID string, patch models.BlogPatch) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.blogs[blogID]
	if !ok || d.editorID == "" || d.editorID != editorID {
		return common.ErrorNotFound
	}
	d.blog.Title, d.blog.Content = patch.Apply(d.blog.Title, d.blog.Content)
	d.blog.UpdatedAt = s.now()
	return nil
}
