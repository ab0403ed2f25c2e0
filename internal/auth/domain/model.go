// Package domain contains core types for accounts and authentication.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleChef       Role = "CHEF"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ParseRole normalizes a role string. Unknown roles are rejected.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleClient:
		return RoleClient, true
	case RoleChef:
		return RoleChef, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// PickupPoint is where a client's meals are delivered.
type PickupPoint struct {
	Latitude  *float64   `gorm:"column:pickup_latitude" json:"latitude,omitempty"`
	Longitude *float64   `gorm:"column:pickup_longitude" json:"longitude,omitempty"`
	Address   string     `gorm:"column:pickup_address;type:text" json:"address,omitempty"`
	UpdatedAt *time.Time `gorm:"column:pickup_updated_at" json:"updatedAt,omitempty"`
}

// IsZero reports whether no location or address was ever recorded.
func (p PickupPoint) IsZero() bool {
	return p.Latitude == nil && p.Longitude == nil && strings.TrimSpace(p.Address) == ""
}

// User represents an account of any role.
type User struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	Nom               string       `gorm:"type:text;not null" json:"nom"`
	Prenom            string       `gorm:"type:text" json:"prenom"`
	Email             string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Telephone         string       `gorm:"type:text" json:"telephone"`
	PasswordHash      *string      `gorm:"type:text" json:"-"`
	Role              Role         `gorm:"type:text;not null;index" json:"role"`
	Matricule         string       `gorm:"type:text;not null;uniqueIndex" json:"matricule"`
	Statut            UserStatus   `gorm:"type:text;not null;default:'ACTIVE'" json:"statut"`
	PickupPoint       PickupPoint  `gorm:"embedded" json:"pickupPoint"`
	ResetTokenHash    *string      `gorm:"type:text;index" json:"-"`
	ResetTokenExpires *time.Time   `json:"-"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dateCreation"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Actor is the authenticated caller of a domain operation.
type Actor struct {
	Role   Role
	UserID snowflake.ID
}

// DisplayName joins prenom and nom, collapsing them when identical.
func (u User) DisplayName() string {
	if u.Prenom == "" || u.Prenom == u.Nom {
		return u.Nom
	}
	return strings.TrimSpace(u.Prenom + " " + u.Nom)
}
