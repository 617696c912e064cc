package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/media"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errDB = errors.New("db error: connection refused")

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            4,
		S3Region:              "us-east-1",
		S3RootUser:            "minioadmin",
		S3RootPassword:        "minioadmin",
		S3BaseEndpoint:        "http://127.0.0.1:9000",
		S3Bucket:              "blog-media",
	}
}

type fixture struct {
	rm       repomanager.RepositoryManager
	users    *UserService
	blogs    *BlogService
	comments *CommentService
	media    *MediaService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, repomanager.NewMemoryRepositoryManager())
}

func newFixtureWith(t *testing.T, rm repomanager.RepositoryManager) *fixture {
	t.Helper()
	log := logging.Nop{}
	cfg := testConfig()
	b := NewBlogService(rm, log)
	return &fixture{
		rm:       rm,
		users:    NewUserService(rm, cfg, log),
		blogs:    b,
		comments: NewCommentService(rm, b, log),
		media:    NewMediaService(rm, cfg, log),
	}
}

func (f *fixture) register(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		Username: name, Email: name + "@example.com", Password: "pw-" + name, Role: role,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) blog(t *testing.T) *models.Blog {
	t.Helper()
	b, err := f.blogs.Create(context.Background(), "T", "C")
	require.NoError(t, err)
	return b
}

// brokenManager wraps a working manager and fails the repositories whose
// flag is set.
type brokenManager struct {
	repomanager.RepositoryManager
	users, blogs, comments, media bool
}

func (m *brokenManager) Users() users.Repository {
	if m.users {
		return brokenUsers{}
	}
	return m.RepositoryManager.Users()
}

func (m *brokenManager) Blogs() blogs.Repository {
	if m.blogs {
		return brokenBlogs{}
	}
	return m.RepositoryManager.Blogs()
}

func (m *brokenManager) Comments() comments.Repository {
	if m.comments {
		return brokenComments{}
	}
	return m.RepositoryManager.Comments()
}

func (m *brokenManager) Media() media.Repository {
	if m.media {
		return brokenMedia{}
	}
	return m.RepositoryManager.Media()
}

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errDB }
func (brokenUsers) GetByEmail(context.Context, string) (*models.User, error)   { return nil, errDB }
func (brokenUsers) GetByID(context.Context, string) (*models.User, error)      { return nil, errDB }

type brokenBlogs struct{}

func (brokenBlogs) Create(context.Context, *models.Blog) (*models.Blog, error) { return nil, errDB }
func (brokenBlogs) Get(context.Context, string) (*models.Blog, error)          { return nil, errDB }
func (brokenBlogs) List(context.Context) ([]*models.Blog, error)               { return nil, errDB }
func (brokenBlogs) Exists(context.Context, string) (bool, error)               { return false, errDB }
func (brokenBlogs) AssignEditor(context.Context, string, string) error         { return errDB }
func (brokenBlogs) UpdateAssigned(context.Context, string, string, models.BlogPatch) error {
	return errDB
}

type brokenComments struct{}

func (brokenComments) Create(context.Context, *models.Comment) error { return errDB }
func (brokenComments) Get(context.Context, string, string) (*models.Comment, error) {
	return nil, errDB
}
func (brokenComments) Delete(context.Context, string, string, string) error { return errDB }

type brokenMedia struct{}

func (brokenMedia) Create(context.Context, *models.Media) (*models.Media, error) { return nil, errDB }
func (brokenMedia) ListByBlog(context.Context, string) ([]*models.Media, error)  { return nil, errDB }
