package rest

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/gin-gonic/gin"
)

// authenticate requires "Authorization: Bearer <token>" and stores the
// caller's identity in the request context.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, found := strings.CutPrefix(header, common.BearerScheme+" ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			s.abortWithError(c, common.ErrUnauthenticated)
			return
		}

		id, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// authorize admits the caller only if op allows their role. It must run
// after authenticate.
func (s *Server) authorize(op models.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok {
			s.abortWithError(c, common.ErrUnauthenticated)
			return
		}
		if !op.Allows(id.Role) {
			s.abortWithError(c, common.ErrForbidden)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// identity returns the authenticated caller. Handlers behind authenticate
// always have one.
func identity(c *gin.Context) *auth.Identity {
	id, _ := auth.IdentityFromContext(c.Request.Context())
	return id
}
