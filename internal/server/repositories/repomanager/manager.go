// Package repomanager selects a storage backend and vends the repositories
// built on it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/media"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Users() users.Repository
	Blogs() blogs.Repository
	Comments() comments.Repository
	Media() media.Repository
	Close() error
}

// New opens the backend named by backend. dsn is only used by postgres.
func New(ctx context.Context, backend, dsn string) (RepositoryManager, error) {
	switch backend {
	case BackendPostgres:
		return OpenPostgres(ctx, dsn)
	case BackendMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
