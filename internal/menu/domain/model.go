package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// MaxItems is one entry per day of the week.
const MaxItems = 7

type Menu struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ChefID    snowflake.ID `gorm:"not null;index" json:"chefId"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	StartDate time.Time    `gorm:"not null" json:"startDate"`
	EndDate   time.Time    `gorm:"not null" json:"endDate"`
	IsActive  bool         `gorm:"not null;index" json:"isActive"`
	Items     []MenuItem   `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"menu"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dateCreation"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"lastUpdated"`
}

func (Menu) TableName() string { return "menus" }

// MenuItem is one dated day of a menu. An empty Midi or Soir means the
// moment is not served that day.
type MenuItem struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	MenuID   snowflake.ID `gorm:"not null;uniqueIndex:idx_menu_items_position" json:"-"`
	Position int          `gorm:"not null;uniqueIndex:idx_menu_items_position" json:"position"`
	Date     time.Time    `gorm:"not null" json:"date"`
	Midi     string       `gorm:"type:text" json:"midi"`
	Soir     string       `gorm:"type:text" json:"soir"`
}

func (MenuItem) TableName() string { return "menu_items" }

// Dish returns the trimmed dish for moment, "" when not served.
func (i MenuItem) Dish(midi bool) string {
	if midi {
		return strings.TrimSpace(i.Midi)
	}
	return strings.TrimSpace(i.Soir)
}

// ServedDays counts the items with at least one dish.
func (m Menu) ServedDays() int {
	n := 0
	for _, item := range m.Items {
		if item.Dish(true) != "" || item.Dish(false) != "" {
			n++
		}
	}
	return n
}
