package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Criteria are the score keys shown to clients. Other numeric keys are
// accepted and averaged too.
var Criteria = []string{"qualiteNourriture", "ponctualite", "diversiteMenu", "communication", "presentation"}

// Rating is immutable once created. One per order.
type Rating struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID         snowflake.ID      `gorm:"not null;index" json:"clientId"`
	ChefID         snowflake.ID      `gorm:"not null;index" json:"chefId"`
	OrderID        snowflake.ID      `gorm:"not null;uniqueIndex" json:"orderId"`
	Notes          datatypes.JSONMap `gorm:"type:json;not null" json:"notes"`
	Commentaire    string            `gorm:"type:text" json:"commentaire"`
	MoyenneGlobale float64           `gorm:"not null" json:"moyenneGlobale"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dateCreation"`
}

func (Rating) TableName() string { return "ratings" }

// Aggregate is the chef-level summary derived from every rating.
type Aggregate struct {
	ChefID       snowflake.ID `json:"chefId"`
	Rating       float64      `json:"rating"`
	TotalRatings int64        `json:"totalRatings"`
}
