package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/gin-gonic/gin"
)

type createChefRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Quartier string `json:"quartier"`
}

func (s *Server) ListChefs(c *gin.Context) {
	var query struct {
		Search   string `form:"search"`
		Quartier string `form:"quartier"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	chefs, err := s.chefSvc.List(c.Request.Context(), chefdomain.ListRequest{
		Search:   strings.TrimSpace(query.Search),
		Quartier: strings.TrimSpace(query.Quartier),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chefs, "count": len(chefs)})
}

// GetChefBySlug returns the public profile with the chef's active menus.
func (s *Server) GetChefBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		AbortWithError(c, newValidationError("slug", "invalid_slug", "invalid slug"))
		return
	}

	chef, err := s.chefSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	menus, err := s.menuSvc.ListByChef(c.Request.Context(), chef.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"chef": chef, "menus": menus}})
}

func (s *Server) CreateChef(c *gin.Context) {
	var req createChefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.CreateAccount(c.Request.Context(), authdomain.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     string(authdomain.RoleChef),
		Quartier: req.Quartier,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	chef, err := s.chefSvc.GetByUserID(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if actor, ok := actorFromContext(c); ok {
		actorID := actor.UserID.String()
		targetID := chef.ID.String()
		s.audit(c, string(actor.Role), &actorID, auditdomain.ActionChefCreated, "chef", &targetID, map[string]any{
			"slug":      chef.Slug,
			"matricule": user.Matricule,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"chef": chef, "user": user}})
}

func (s *Server) MyChefProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	chef, err := s.chefSvc.GetByUserID(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chef})
}

// UpdateMyChefSettings applies a partial profile and settings update.
func (s *Server) UpdateMyChefSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req chefdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	chef, err := s.chefSvc.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chef})
}
