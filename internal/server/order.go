package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListMyOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	orders, err := s.orderSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) ListChefOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query orderdomain.ChefListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	orders, err := s.orderSvc.ListForChef(c.Request.Context(), user.ID, orderdomain.ChefListRequest{
		Date:   strings.TrimSpace(query.Date),
		Moment: strings.ToUpper(strings.TrimSpace(query.Moment)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
}

func (s *Server) DeliverySheet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	doc, err := s.orderSvc.DeliverySheet(c.Request.Context(), user.ID, date)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := "livraisons.pdf"
	if date != "" {
		name = fmt.Sprintf("livraisons-%s.pdf", date)
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", body)
}

func (s *Server) ChefOrderStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	stats, err := s.orderSvc.ChefStats(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req orderdomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Statut = strings.ToUpper(strings.TrimSpace(req.Statut))

	order, err := s.orderSvc.UpdateStatus(c.Request.Context(), user.ID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}
