package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// CommentService adds comments to blogs and lets authors delete them.
type CommentService struct {
	repomanager repomanager.RepositoryManager
	blogs       *BlogService
	log         logging.Logger
	now         func() time.Time
}

func NewCommentService(m repomanager.RepositoryManager, blogs *BlogService, log logging.Logger) *CommentService {
	return &CommentService{repomanager: m, blogs: blogs, log: log, now: time.Now}
}

// Add appends a comment by userID and returns the updated blog.
func (s *CommentService) Add(ctx context.Context, userID, blogID, content string) (*models.Blog, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFound
	}

	comment := &models.Comment{
		ID:        common.NewID(),
		BlogID:    blogID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repomanager.Comments().Create(ctx, comment); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errBlogNotFound
		}
		return nil, fmt.Errorf("error adding comment: %w", err)
	}

	return s.blogs.Get(ctx, blogID)
}

// Delete removes commentID from blogID if userID wrote it and returns the
// updated blog. Someone else's comment is common.ErrForbidden.
func (s *CommentService) Delete(ctx context.Context, userID, blogID, commentID string) (*models.Blog, error) {
	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFound
	}

	exists, err := s.repomanager.Blogs().Exists(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("error searching blog: %w", err)
	}
	if !exists {
		return nil, errBlogNotFound
	}

	commentID, ok = common.CanonicalID(commentID)
	if !ok {
		return nil, errCommentNotFound
	}

	repo := s.repomanager.Comments()

	comment, err := repo.Get(ctx, blogID, commentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errCommentNotFound
		}
		return nil, fmt.Errorf("error searching comment: %w", err)
	}

	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: you can only delete your own comments", common.ErrForbidden)
	}

	if err := repo.Delete(ctx, blogID, commentID, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errCommentNotFound
		}
		return nil, fmt.Errorf("error deleting comment: %w", err)
	}

	s.log.Info(ctx, "comment deleted", "blog_id", blogID, "comment_id", commentID)
	return s.blogs.Get(ctx, blogID)
}
