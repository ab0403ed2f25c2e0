package server

import (
	"net/http"
	"strings"

	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/gin-gonic/gin"
)

type suspendChefRequest struct {
	IsSuspended *bool `json:"isSuspended"`
}

func (s *Server) AdminStats(c *gin.Context) {
	stats, err := s.adminSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) AdminListChefs(c *gin.Context) {
	chefs, err := s.adminSvc.ListChefs(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chefs, "count": len(chefs)})
}

func (s *Server) AdminListClients(c *gin.Context) {
	clients, err := s.adminSvc.ListClients(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clients, "count": len(clients)})
}

func (s *Server) AdminListOrders(c *gin.Context) {
	var query orderdomain.AdminListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	orders, err := s.adminSvc.ListOrders(c.Request.Context(), orderdomain.AdminListRequest{
		ChefID: strings.TrimSpace(query.ChefID),
		UserID: strings.TrimSpace(query.UserID),
		Statut: strings.ToUpper(strings.TrimSpace(query.Statut)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
}

func (s *Server) AdminListMenus(c *gin.Context) {
	menus, err := s.adminSvc.ListMenus(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": menus, "count": len(menus)})
}

func (s *Server) AdminSuspendChef(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req suspendChefRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsSuspended == nil {
		AbortWithError(c, newValidationError("isSuspended", "required", "isSuspended is required"))
		return
	}

	chef, err := s.adminSvc.SetChefSuspended(c.Request.Context(), admindomain.SuspendRequest{
		Actor:     actor,
		ChefID:    id,
		Suspended: *req.IsSuspended,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": chef})
}

// AdminRecomputeChefRating heals a stale aggregate left by a failed
// post-commit recompute.
func (s *Server) AdminRecomputeChefRating(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	agg, err := s.adminSvc.RecomputeChefRating(c.Request.Context(), actor, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": agg})
}
