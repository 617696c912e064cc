// Package rest exposes the blog services over HTTP with gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type BlogService interface {
	Create(ctx context.Context, title, content string) (*models.Blog, error)
	Assign(ctx context.Context, blogID, editorID string) (*models.Blog, error)
	Edit(ctx context.Context, editorID, blogID string, patch models.BlogPatch) (*models.Blog, error)
	List(ctx context.Context) ([]*models.Blog, error)
	Get(ctx context.Context, blogID string) (*models.Blog, error)
}

type CommentService interface {
	Add(ctx context.Context, userID, blogID, content string) (*models.Blog, error)
	Delete(ctx context.Context, userID, blogID, commentID string) (*models.Blog, error)
}

type MediaService interface {
	RequestUpload(ctx context.Context, editorID, blogID string) (*services.MediaUpload, error)
	List(ctx context.Context, blogID string) ([]services.MediaItem, error)
}

// Pinger reports storage health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Users    UserService
	Blogs    BlogService
	Comments CommentService
	Media    MediaService
	Health   Pinger
}

type Server struct {
	address   string
	svc       Services
	logger    logging.Logger
	jwtSecret []byte
	debug     bool
	engine    *gin.Engine
}

func NewServer(address string, svc Services, l logging.Logger, secretKey string, debug bool) *Server {
	s := &Server{
		address:   address,
		svc:       svc,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		debug:     debug,
	}
	s.engine = s.initRouter()
	return s
}

// Handler returns the configured gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) initRouter() *gin.Engine {
	if s.debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.POST("/register", s.register)
	engine.POST("/login", s.login)
	engine.GET("/healthz", s.healthz)

	blogs := engine.Group("/blogs", s.authenticate())
	{
		blogs.GET("", s.listBlogs)
		blogs.POST("", s.authorize(models.OpCreateBlog), s.createBlog)
		blogs.GET("/:id", s.getBlog)
		blogs.PUT("/:id", s.authorize(models.OpEditBlog), s.editBlog)
		blogs.PUT("/:id/assign", s.authorize(models.OpAssignBlog), s.assignBlog)

		blogs.POST("/:id/comments", s.addComment)
		blogs.DELETE("/:id/comments/:commentId", s.deleteComment)

		blogs.POST("/:id/media", s.authorize(models.OpUploadMedia), s.requestUpload)
		blogs.GET("/:id/media", s.listMedia)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	return engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
