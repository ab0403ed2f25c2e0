package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.Token, result.ExpiresAt)
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.audit(c, string(auditdomain.ActorTypeUser), nil, auditdomain.ActionUserLoginFailed, "user", nil, map[string]any{
			"email": email,
		})
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.Token, result.ExpiresAt)

	userID := result.User.ID.String()
	s.audit(c, string(result.User.Role), &userID, auditdomain.ActionUserLogin, "user", &userID, map[string]any{
		"email": email,
	})

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"loggedOut": true}})
}

func (s *Server) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	me, err := s.authsvc.Me(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": me})
}

func (s *Server) UpdatePickupPoint(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req authdomain.UpdatePickupPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.authsvc.UpdatePickupPoint(c.Request.Context(), user.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// ForgotPassword answers success for unknown addresses so the endpoint
// cannot be used to enumerate accounts.
func (s *Server) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		AbortWithError(c, newValidationError("email", "required", "email is required"))
		return
	}

	if err := s.authsvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"sent": true}})
}

func (s *Server) ResetPassword(c *gin.Context) {
	var req authdomain.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authsvc.ResetPassword(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"reset": true}})
}

func (s *Server) audit(c *gin.Context, actorType string, actorID *string, action, targetType string, targetID *string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.AuditLog(c.Request.Context(), actorType, actorID, action, targetType, targetID, metadata); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}
