package memory

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// CommentRepository implements comments.Repository.
type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.blogs[comment.BlogID]
	if !ok {
		return common.ErrorNotFound
	}
	d.comments = append(d.comments, *comment)
	return nil
}

func (r *CommentRepository) Get(_ context.Context, blogID, commentID string) (*models.Comment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.blogs[blogID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for _, c := range d.comments {
		if c.ID == commentID {
			out := c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *CommentRepository) Delete(_ context.Context, blogID, commentID, userID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.blogs[blogID]
	if !ok {
		return common.ErrorNotFound
	}
	for i, c := range d.comments {
		if c.ID == commentID && c.UserID == userID {
			d.comments = append(d.comments[:i:i], d.comments[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
