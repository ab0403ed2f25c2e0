package server

import (
	"strings"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	obscontext "github.com/UknowEdy/chefetoile-backend/internal/observability/context"
	"github.com/gin-gonic/gin"
)

const contextUserKey = "auth_user"

// AuthRequired accepts the access token from "Authorization: Bearer" or the
// session cookie, in that order.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := s.tokenFromRequest(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserKey, user)
		ctx := obscontext.WithActor(c.Request.Context(), string(user.Role), user.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) tokenFromRequest(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		if token := strings.TrimSpace(header[7:]); token != "" {
			return token, true
		}
	}
	if s.sessions == nil {
		return "", false
	}
	return s.sessions.ReadToken(c)
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok && user != nil
}
