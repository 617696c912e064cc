// Package server wires configuration, storage, services and the network
// listeners of the blog server, and runs them until a signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/health"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/rest"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	services rest.Services
}

// NewApp opens the configured backend, applies migrations and builds the
// services. The caller owns the App and must call Run to release storage.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := repomanager.New(ctx, c.StorageBackend, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	blogs := services.NewBlogService(rm, logger.With("module", "blogs"))

	svc := rest.Services{
		Users:    services.NewUserService(rm, c, logger.With("module", "users")),
		Blogs:    blogs,
		Comments: services.NewCommentService(rm, blogs, logger.With("module", "comments")),
		Media:    services.NewMediaService(rm, c, logger.With("module", "media")),
		Health:   rm,
	}

	logger.Info(ctx, "storage ready", "backend", c.StorageBackend)

	return &App{config: c, logger: logger, repos: rm, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.HTTPAddress, app.services, app.logger, app.config.SecretKey, app.config.Debug)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := health.NewServer(app.config.GRPCAddress, app.repos, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
