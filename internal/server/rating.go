package server

import (
	"encoding/json"
	"net/http"

	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/gin-gonic/gin"
)

type submitRatingRequest struct {
	OrderID     string         `json:"orderId"`
	Notes       map[string]any `json:"notes"`
	Commentaire string         `json:"commentaire"`
}

// SubmitRating decodes scores with UseNumber so integers reach the rating
// engine unrounded; non-numeric entries are dropped there.
func (s *Server) SubmitRating(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req submitRatingRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	orderID, ok := parseSnowflakeID(req.OrderID)
	if !ok {
		AbortWithError(c, newValidationError("orderId", "invalid_order_id", "invalid orderId"))
		return
	}

	rating, err := s.ratingSvc.Submit(c.Request.Context(), ratingdomain.SubmitRequest{
		ClientID: user.ID,
		OrderID:  orderID,
		Scores:   req.Notes,
		Comment:  req.Commentaire,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": rating})
}

func (s *Server) ListChefRatings(c *gin.Context) {
	chefID, ok := pathID(c, "chefId")
	if !ok {
		return
	}

	ratings, err := s.ratingSvc.ListByChef(c.Request.Context(), chefID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ratings, "count": len(ratings)})
}

func (s *Server) ListMyRatings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	ratings, err := s.ratingSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ratings})
}
