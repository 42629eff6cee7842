package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MenuItem is the GORM model for a sellable item. Items are soft-deactivated
// via Active so historical order items keep a valid reference; rows are never
// hard-deleted.
type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"not null;check:price_cents >= 0" json:"price_cents"`
	Category    string    `gorm:"type:varchar(128)" json:"category"`
	ImageURL    string    `gorm:"type:varchar(1024)" json:"image_url"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Price returns the item price in currency units. Money is stored in integer
// cents; conversion to a two-decimal amount happens only at presentation.
func (m *MenuItem) Price() float64 {
	return float64(m.PriceCents) / 100
}

// CentsFromPrice converts a decimal price into integer cents.
func CentsFromPrice(price float64) int64 {
	return int64(math.Round(price * 100))
}

// MenuItemView is the client-facing shape of a menu item.
type MenuItemView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
}

// View converts a MenuItem into its client-facing shape.
func (m *MenuItem) View() MenuItemView {
	return MenuItemView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price(),
		Category:    m.Category,
		ImageURL:    m.ImageURL,
	}
}
