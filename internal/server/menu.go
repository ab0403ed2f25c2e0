package server

import (
	"net/http"

	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateMenu(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req menudomain.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	menu, err := s.menuSvc.CreateWeekly(c.Request.Context(), user.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": menu})
}

func (s *Server) ListMyMenus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	menus, err := s.menuSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": menus})
}

func (s *Server) ListChefMenus(c *gin.Context) {
	chefID, ok := pathID(c, "chefId")
	if !ok {
		return
	}

	menus, err := s.menuSvc.ListByChef(c.Request.Context(), chefID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": menus})
}

func (s *Server) GetMenu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	menu, err := s.menuSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": menu})
}

func (s *Server) UpdateMenu(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req menudomain.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	menu, err := s.menuSvc.Update(c.Request.Context(), user.ID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": menu})
}

// DeleteMenu deactivates instead of deleting when subscriptions still
// reference the menu.
func (s *Server) DeleteMenu(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := s.menuSvc.Delete(c.Request.Context(), user.ID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
