package server

import (
	"net/http"
	"strings"

	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/gin-gonic/gin"
)

type validateSubscriptionRequest struct {
	Action string `json:"action"`
}

func (s *Server) CreateSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req subscriptiondomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sub, err := s.subscriptionSvc.Create(c.Request.Context(), user.ID, subscriptiondomain.CreateRequest{
		MenuID:    strings.TrimSpace(req.MenuID),
		Formule:   strings.ToUpper(strings.TrimSpace(req.Formule)),
		PrixTotal: req.PrixTotal,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": sub})
}

func (s *Server) ListMySubscriptions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	subs, err := s.subscriptionSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": subs})
}

func (s *Server) ListChefSubscribers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	subscribers, err := s.subscriptionSvc.ListChefSubscribers(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": subscribers, "count": len(subscribers)})
}

// ValidateSubscription runs the activation engine: VALIDATE expands the menu
// into orders, REJECT cancels the subscription without creating any.
func (s *Server) ValidateSubscription(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req validateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	action, ok := subscriptiondomain.ParseAction(strings.ToUpper(strings.TrimSpace(req.Action)))
	if !ok {
		AbortWithError(c, subscriptiondomain.ErrInvalidAction)
		return
	}

	result, err := s.subscriptionSvc.Activate(c.Request.Context(), subscriptiondomain.ActivateRequest{
		SubscriptionID: id,
		Actor:          actor,
		Action:         action,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CancelSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sub, err := s.subscriptionSvc.Cancel(c.Request.Context(), user.ID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}
