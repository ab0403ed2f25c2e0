package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Moment string

const (
	MomentMidi Moment = "MIDI"
	MomentSoir Moment = "SOIR"
)

func ParseMoment(raw string) (Moment, bool) {
	switch Moment(raw) {
	case MomentMidi, MomentSoir:
		return Moment(raw), true
	default:
		return "", false
	}
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusPreparing  Status = "PREPARING"
	StatusReady      Status = "READY"
	StatusDelivering Status = "DELIVERING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var forward = map[Status]Status{
	StatusPending:    StatusPreparing,
	StatusPreparing:  StatusReady,
	StatusReady:      StatusDelivering,
	StatusDelivering: StatusDelivered,
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivering, StatusDelivered, StatusCancelled:
		return s, true
	default:
		return "", false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition allows one step forward, or cancellation of any
// non-terminal order.
func (s Status) CanTransition(to Status) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return forward[s] == to
}

// DeliveryPoint is a snapshot of the client's pickup point at generation time.
type DeliveryPoint struct {
	Latitude  *float64 `gorm:"column:delivery_latitude" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"column:delivery_longitude" json:"longitude,omitempty"`
	Address   string   `gorm:"column:delivery_address;type:text" json:"address,omitempty"`
}

// Order is one meal delivery. (subscription_id, date, moment) is unique so
// a subscription can never yield the same slot twice.
type Order struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	SubscriptionID snowflake.ID  `gorm:"not null;uniqueIndex:idx_orders_subscription_slot,priority:1" json:"subscriptionId"`
	UserID         snowflake.ID  `gorm:"not null;index" json:"userId"`
	ChefID         snowflake.ID  `gorm:"not null;index:idx_orders_chef_date" json:"chefId"`
	Date           time.Time     `gorm:"not null;uniqueIndex:idx_orders_subscription_slot,priority:2;index:idx_orders_chef_date" json:"date"`
	Moment         Moment        `gorm:"type:text;not null;uniqueIndex:idx_orders_subscription_slot,priority:3" json:"moment"`
	Repas          string        `gorm:"type:text;not null" json:"repas"`
	DeliveryPoint  DeliveryPoint `gorm:"embedded" json:"deliveryPoint"`
	Statut         Status        `gorm:"type:text;not null;index" json:"statut"`
	LivreurID      *snowflake.ID `json:"livreurId,omitempty"`
	DateLivraison  *time.Time    `json:"dateLivraison,omitempty"`
	RatingID       *snowflake.ID `gorm:"uniqueIndex" json:"ratingId,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dateCreation"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }
