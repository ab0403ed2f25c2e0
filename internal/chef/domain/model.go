package domain

import (
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// JoursService lists the weekdays the chef cooks.
type JoursService struct {
	Lundi    bool `json:"lundi"`
	Mardi    bool `json:"mardi"`
	Mercredi bool `json:"mercredi"`
	Jeudi    bool `json:"jeudi"`
	Vendredi bool `json:"vendredi"`
	Samedi   bool `json:"samedi"`
	Dimanche bool `json:"dimanche"`
}

// Settings holds prices (FCFA) and delivery preferences.
type Settings struct {
	PrixMidi           int64        `json:"prixMidi"`
	PrixSoir           int64        `json:"prixSoir"`
	PrixComplet        int64        `json:"prixComplet"`
	PreparationAddress string       `json:"preparationAddress"`
	JoursService       JoursService `json:"joursService"`
	RayonLivraison     int          `json:"rayonLivraison"`
	HorairesLivraison  string       `json:"horairesLivraison"`
}

func DefaultSettings(d config.ChefDefaults) Settings {
	return Settings{
		PrixMidi:    d.PrixMidi,
		PrixSoir:    d.PrixSoir,
		PrixComplet: d.PrixComplet,
		JoursService: JoursService{
			Lundi: true, Mardi: true, Mercredi: true, Jeudi: true, Vendredi: true, Samedi: true,
		},
		RayonLivraison:    d.RayonLivraison,
		HorairesLivraison: d.HorairesLivraison,
	}
}

type Chef struct {
	ID               snowflake.ID                 `gorm:"primaryKey" json:"id"`
	UserID           snowflake.ID                 `gorm:"not null;uniqueIndex" json:"userId"`
	Name             string                       `gorm:"type:text;not null" json:"name"`
	Slug             string                       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Phone            string                       `gorm:"type:text;not null" json:"phone"`
	Email            string                       `gorm:"type:text" json:"email"`
	Bio              string                       `gorm:"type:text" json:"bio"`
	CuisineType      string                       `gorm:"type:text" json:"cuisineType"`
	Address          string                       `gorm:"type:text" json:"address"`
	Quartier         string                       `gorm:"type:text;index" json:"quartier"`
	Latitude         *float64                     `json:"latitude,omitempty"`
	Longitude        *float64                     `json:"longitude,omitempty"`
	Settings         datatypes.JSONType[Settings] `gorm:"type:json;not null" json:"settings"`
	IsSuspended      bool                         `gorm:"not null;default:false" json:"isSuspended"`
	Statut           Status                       `gorm:"type:text;not null;default:'ACTIVE'" json:"statut"`
	Rating           float64                      `gorm:"not null;default:0" json:"rating"`
	TotalRatings     int64                        `gorm:"not null;default:0" json:"totalRatings"`
	SubscribersCount int64                        `gorm:"not null;default:0" json:"subscribersCount"`
	CreatedAt        time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dateCreation"`
	UpdatedAt        time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Matricule is filled by listing queries joined on users.
	Matricule string `gorm:"->;-:migration" json:"matricule,omitempty"`
}

func (Chef) TableName() string { return "chefs" }
