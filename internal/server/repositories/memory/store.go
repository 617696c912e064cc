// Package memory provides in-process implementations of the repository
// interfaces. One Store holds all collections behind a single RWMutex, which
// gives every write the same all-or-nothing behavior as the conditional SQL
// statements of the Postgres backend.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type blogDoc struct {
	blog     models.Blog
	editorID string
	comments []models.Comment
}

// Store is the shared state of the memory backend.
type Store struct {
	mu sync.RWMutex

	users      map[string]*models.User
	byEmail    map[string]string
	byUsername map[string]string

	blogs     map[string]*blogDoc
	blogOrder []string

	media map[string][]*models.Media

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*models.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		blogs:      make(map[string]*blogDoc),
		media:      make(map[string][]*models.Media),
		now:        time.Now,
	}
}

// Users returns the credential store view.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Blogs returns the blog repository view.
func (s *Store) Blogs() *BlogRepository { return &BlogRepository{s: s} }

// Comments returns the comment repository view.
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

// Media returns the media repository view.
func (s *Store) Media() *MediaRepository { return &MediaRepository{s: s} }

// UserRepository implements users.Repository.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[user.Username]; ok {
		return nil, fmt.Errorf("username %w", common.ErrDuplicateCredential)
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return nil, fmt.Errorf("email %w", common.ErrDuplicateCredential)
	}

	u := *user
	u.ID = common.NewID()
	u.IsVerified = false
	u.CreatedAt = s.now()

	s.users[u.ID] = &u
	s.byUsername[u.Username] = u.ID
	s.byEmail[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}
