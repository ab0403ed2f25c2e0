package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ActorType string

const (
	ActorTypeSystem ActorType = "SYSTEM"
	ActorTypeUser   ActorType = "USER"
)

// Well-known actions.
const (
	ActionSubscriptionValidated = "subscription.validated"
	ActionSubscriptionRejected  = "subscription.rejected"
	ActionRatingSubmitted       = "rating.submitted"
	ActionChefSuspended         = "chef.suspended"
	ActionChefReactivated       = "chef.reactivated"
	ActionAccessDenied          = "authorization.denied"
	ActionUserLogin             = "user.login"
	ActionUserLoginFailed       = "user.login_failed"
	ActionChefCreated           = "chef.created"
)

type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorType  string            `gorm:"type:text;not null" json:"actor_type"`
	ActorID    *string           `gorm:"type:text" json:"actor_id,omitempty"`
	Action     string            `gorm:"type:text;not null;index" json:"action"`
	TargetType string            `gorm:"type:text;not null" json:"target_type"`
	TargetID   *string           `gorm:"type:text;index" json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	IPAddress  *string           `gorm:"type:text" json:"ip_address,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type AuditCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	ActorType  string
	StartAt    *time.Time
	EndAt      *time.Time
	Cursor     *AuditCursor
	Limit      int
}
