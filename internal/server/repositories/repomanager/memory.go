package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/media"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process. Data is lost on exit.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users() users.Repository       { return m.store.Users() }
func (m *MemoryRepositoryManager) Blogs() blogs.Repository       { return m.store.Blogs() }
func (m *MemoryRepositoryManager) Comments() comments.Repository { return m.store.Comments() }
func (m *MemoryRepositoryManager) Media() media.Repository       { return m.store.Media() }

// RunMigrations is a no-op: the memory store has no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
