package server

import (
	"strings"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

// authorize enforces the role policy for object and action. It must run
// after AuthRequired.
func (s *Server) authorize(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if s.authzSvc == nil {
			AbortWithError(c, ErrForbidden)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), actor, strings.TrimSpace(object), strings.TrimSpace(action)); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func actorFromContext(c *gin.Context) (authdomain.Actor, bool) {
	user, ok := currentUser(c)
	if !ok {
		return authdomain.Actor{}, false
	}
	return authdomain.Actor{Role: user.Role, UserID: user.ID}, true
}
