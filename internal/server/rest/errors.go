package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gin-gonic/gin"
)

// statusTable maps sentinel errors to HTTP statuses. Anything not listed is
// an internal error.
var statusTable = []struct {
	err    error
	status int
}{
	{common.ErrValidation, http.StatusBadRequest},
	{common.ErrDuplicateCredential, http.StatusBadRequest},
	{common.ErrInvalidCredentials, http.StatusBadRequest},
	{common.ErrAlreadyAssigned, http.StatusBadRequest},
	{common.ErrInvalidToken, http.StatusBadRequest},
	{common.ErrTokenExpired, http.StatusBadRequest},
	{common.ErrUnauthenticated, http.StatusUnauthorized},
	{common.ErrForbidden, http.StatusForbidden},
	{common.ErrorNotFound, http.StatusNotFound},
}

func statusOf(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageOf is the client-facing text for a non-internal error.
func messageOf(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return "Access Denied"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return "Invalid Token"
	default:
		return err.Error()
	}
}

// abortWithError writes {"message": ...} with the mapped status. Internal
// causes are logged and only echoed in debug mode.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	if status != http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"message": messageOf(err)})
		return
	}

	s.logger.Error(c.Request.Context(), "request failed",
		"method", c.Request.Method, "path", c.FullPath(), "error", err)

	body := gin.H{"message": common.ErrorInternal.Error()}
	if s.debug {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
