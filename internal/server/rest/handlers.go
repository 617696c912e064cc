package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type assignRequest struct {
	EditorID string `json:"editorId"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// bindJSON decodes the body into dst. An empty body leaves dst zeroed so the
// service reports the missing fields.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}
	return nil
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	_, err := s.svc.Users.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	token, err := s.svc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

func (s *Server) createBlog(c *gin.Context) {
	var req blogRequest
	if err := bindJSON(c, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	blog, err := s.svc.Blogs.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Blog created successfully", "blog": blog})
}

func (s *Server) assignBlog(c *gin.Context) {
	var req assignRequest
	if err := bindJSON(c, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	blog, err := s.svc.Blogs.Assign(c.Request.Context(), c.Param("id"), req.EditorID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog assigned successfully", "blog": blog})
}

func (s *Server) editBlog(c *gin.Context) {
	var req blogRequest
	if err := bindJSON(c, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	patch := models.BlogPatch{Title: req.Title, Content: req.Content}
	blog, err := s.svc.Blogs.Edit(c.Request.Context(), identity(c).UserID, c.Param("id"), patch)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog updated successfully", "blog": blog})
}

func (s *Server) listBlogs(c *gin.Context) {
	blogs, err := s.svc.Blogs.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

func (s *Server) getBlog(c *gin.Context) {
	blog, err := s.svc.Blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

func (s *Server) addComment(c *gin.Context) {
	var req commentRequest
	if err := bindJSON(c, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	blog, err := s.svc.Comments.Add(c.Request.Context(), identity(c).UserID, c.Param("id"), req.Content)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment added successfully", "blog": blog})
}

func (s *Server) deleteComment(c *gin.Context) {
	blog, err := s.svc.Comments.Delete(c.Request.Context(), identity(c).UserID, c.Param("id"), c.Param("commentId"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully", "blog": blog})
}

func (s *Server) requestUpload(c *gin.Context) {
	up, err := s.svc.Media.RequestUpload(c.Request.Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Upload URL created", "media": up.Media, "uploadUrl": up.UploadURL})
}

func (s *Server) listMedia(c *gin.Context) {
	items, err := s.svc.Media.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": items})
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.svc.Health.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
