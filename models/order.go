package models

import (
	"time"

	"github.com/google/uuid"
)

// Order aggregates the line items placed by one table during a dining cycle.
// At most one order per table may be open (status outside the terminal set);
// a partial unique index on table_number enforces that in Postgres.
type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TableNumber   int        `gorm:"not null;index" json:"table_number"`
	OrderTime     time.Time  `gorm:"not null" json:"order_time"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BillRequested bool       `gorm:"not null;default:false" json:"bill_requested"`
	BillTime      *time.Time `json:"bill_time,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// IsOpen reports whether the order can still accept items and transitions.
func (o *Order) IsOpen() bool {
	return !IsTerminalStatus(o.Status)
}

// OrderItem is one ordered quantity of one menu item within an order. Items
// carry their own lifecycle status and are never deleted.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID      uuid.UUID `gorm:"type:uuid;not null" json:"menu_item_id"`
	Quantity        int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PlaceOrderRequest is the payload for placing one line item for a table.
type PlaceOrderRequest struct {
	TableNumber     int       `json:"table_number" binding:"required,gt=0"`
	MenuItemID      uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity        int       `json:"quantity" binding:"required,gt=0"`
	SpecialRequests string    `json:"special_requests"`
}

// UpdateItemStatusRequest is the payload for progressing a line item.
type UpdateItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MenuItemRef is the denormalized menu snapshot nested inside line-item
// views, so clients never issue a second request per item.
type MenuItemRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	ImageURL string    `json:"image_url"`
}

// OrderItemView is the client-facing shape of a line item.
type OrderItemView struct {
	ID              uuid.UUID   `json:"id"`
	Quantity        int         `json:"quantity"`
	SpecialRequests string      `json:"special_requests"`
	Status          string      `json:"status"`
	MenuItem        MenuItemRef `json:"menu_item"`
}

// OrderView is the staff-facing shape of an open order with nested items.
type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	TableNumber   int             `json:"table_number"`
	OrderTime     time.Time       `json:"order_time"`
	Status        string          `json:"status"`
	BillRequested bool            `json:"bill_requested"`
	Items         []OrderItemView `json:"items"`
}
