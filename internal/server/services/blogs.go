package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

var (
	errBlogNotFound           = fmt.Errorf("blog %w", common.ErrorNotFound)
	errBlogNotFoundOrNotYours = fmt.Errorf("blog %w or not assigned to you", common.ErrorNotFound)
	errCommentNotFound        = fmt.Errorf("comment %w", common.ErrorNotFound)
)

// BlogService implements the blog lifecycle: create, assign once, edit by
// the assigned editor, and read.
type BlogService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewBlogService(m repomanager.RepositoryManager, log logging.Logger) *BlogService {
	return &BlogService{repomanager: m, log: log}
}

func (s *BlogService) Create(ctx context.Context, title, content string) (*models.Blog, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrValidation)
	}

	blog, err := s.repomanager.Blogs().Create(ctx, &models.Blog{Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("error creating blog: %w", err)
	}

	s.log.Info(ctx, "blog created", "blog_id", blog.ID)
	return blog, nil
}

// Assign sets the blog's editor. editorID must name an existing Editor.
// Assignment happens at most once; later calls fail with
// common.ErrAlreadyAssigned and keep the first editor.
func (s *BlogService) Assign(ctx context.Context, blogID, editorID string) (*models.Blog, error) {
	if editorID == "" {
		return nil, fmt.Errorf("%w: editorId is required", common.ErrValidation)
	}

	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFound
	}

	blogs := s.repomanager.Blogs()

	exists, err := blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("error searching blog: %w", err)
	}
	if !exists {
		return nil, errBlogNotFound
	}

	editorID, err = s.editor(ctx, editorID)
	if err != nil {
		return nil, err
	}

	if err := blogs.AssignEditor(ctx, blogID, editorID); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, errBlogNotFound
		case errors.Is(err, common.ErrAlreadyAssigned):
			return nil, err
		default:
			return nil, fmt.Errorf("error assigning blog: %w", err)
		}
	}

	s.log.Info(ctx, "blog assigned", "blog_id", blogID, "editor_id", editorID)
	return s.Get(ctx, blogID)
}

func (s *BlogService) editor(ctx context.Context, editorID string) (string, error) {
	id, ok := common.CanonicalID(editorID)
	if !ok {
		return "", fmt.Errorf("%w: editor not found", common.ErrValidation)
	}

	user, err := s.repomanager.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("%w: editor not found", common.ErrValidation)
		}
		return "", fmt.Errorf("error searching editor: %w", err)
	}
	if user.Role != models.RoleEditor {
		return "", fmt.Errorf("%w: user %s is not an Editor", common.ErrValidation, user.Username)
	}
	return user.ID, nil
}

// Edit applies patch as editorID. Absent blogs and blogs assigned to someone
// else are indistinguishable to the caller.
func (s *BlogService) Edit(ctx context.Context, editorID, blogID string, patch models.BlogPatch) (*models.Blog, error) {
	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFoundOrNotYours
	}

	if err := s.repomanager.Blogs().UpdateAssigned(ctx, blogID, editorID, patch); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errBlogNotFoundOrNotYours
		}
		return nil, fmt.Errorf("error updating blog: %w", err)
	}

	return s.Get(ctx, blogID)
}

func (s *BlogService) List(ctx context.Context) ([]*models.Blog, error) {
	blogs, err := s.repomanager.Blogs().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing blogs: %w", err)
	}
	return blogs, nil
}

func (s *BlogService) Get(ctx context.Context, blogID string) (*models.Blog, error) {
	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFound
	}

	blog, err := s.repomanager.Blogs().Get(ctx, blogID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errBlogNotFound
		}
		return nil, fmt.Errorf("error reading blog: %w", err)
	}
	return blog, nil
}
