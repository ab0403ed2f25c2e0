package domain

import (
	"time"

	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/bwmarrin/snowflake"
)

type Formule string

const (
	FormuleMidi    Formule = "MIDI"
	FormuleSoir    Formule = "SOIR"
	FormuleComplet Formule = "COMPLET"
)

func ParseFormule(raw string) (Formule, bool) {
	switch f := Formule(raw); f {
	case FormuleMidi, FormuleSoir, FormuleComplet:
		return f, true
	default:
		return "", false
	}
}

// Moments lists the meal moments a formule covers, midday first.
func (f Formule) Moments() []orderdomain.Moment {
	switch f {
	case FormuleMidi:
		return []orderdomain.Moment{orderdomain.MomentMidi}
	case FormuleSoir:
		return []orderdomain.Moment{orderdomain.MomentSoir}
	case FormuleComplet:
		return []orderdomain.Moment{orderdomain.MomentMidi, orderdomain.MomentSoir}
	default:
		return nil
	}
}

type Status string

const (
	StatusPendingValidation Status = "PENDING_VALIDATION"
	StatusActive            Status = "ACTIVE"
	StatusRejected          Status = "REJECTED"
	StatusCompleted         Status = "COMPLETED"
	StatusExpired           Status = "EXPIRED"
	StatusCancelled         Status = "CANCELLED"
)

type Action string

const (
	ActionValidate Action = "VALIDATE"
	ActionReject   Action = "REJECT"
)

func ParseAction(raw string) (Action, bool) {
	switch a := Action(raw); a {
	case ActionValidate, ActionReject:
		return a, true
	default:
		return "", false
	}
}

type Subscription struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID  `gorm:"not null;index" json:"userId"`
	ChefID      snowflake.ID  `gorm:"not null;index" json:"chefId"`
	MenuID      snowflake.ID  `gorm:"not null;index" json:"menuId"`
	Formule     Formule       `gorm:"type:text;not null" json:"formule"`
	PrixTotal   int64         `gorm:"not null" json:"prixTotal"`
	DateDebut   time.Time     `gorm:"not null" json:"dateDebut"`
	DateFin     time.Time     `gorm:"not null;index" json:"dateFin"`
	Statut      Status        `gorm:"type:text;not null;index" json:"statut"`
	ValidatedAt *time.Time    `json:"dateValidation,omitempty"`
	ValidatedBy *snowflake.ID `json:"validatedBy,omitempty"`
	CancelledAt *time.Time    `json:"dateAnnulation,omitempty"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dateCreation"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Subscription) TableName() string { return "subscriptions" }
