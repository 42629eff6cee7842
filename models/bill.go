package models

import (
	"time"

	"github.com/google/uuid"
)

// Bill request statuses.
const (
	BillStatusPending   = "pending"
	BillStatusCompleted = "completed"
)

// IsValidBillStatus reports whether s is a recognized bill request status.
func IsValidBillStatus(s string) bool {
	return s == BillStatusPending || s == BillStatusCompleted
}

// BillRequest records a table asking to close out. The table number is
// denormalized at request time; a table may accumulate several requests over
// a dining session.
type BillRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	TableNumber int       `gorm:"not null" json:"table_number"`
	RequestTime time.Time `gorm:"not null" json:"request_time"`
	Note        string    `gorm:"type:text" json:"note"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RequestBillRequest is the payload for a table asking to close out.
type RequestBillRequest struct {
	TableNumber int    `json:"table_number" binding:"required,gt=0"`
	Note        string `json:"note"`
}

// ProcessBillRequest is the payload for staff resolving a bill request.
type ProcessBillRequest struct {
	Status string `json:"status" binding:"required"`
}

// BillRequestView is a bill request joined with the projected total of its
// order. The total reflects the order's current items, not a snapshot taken
// at request time, so it moves if the table keeps ordering.
type BillRequestView struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	TableNumber int       `json:"table_number"`
	RequestTime time.Time `json:"request_time"`
	Note        string    `json:"note"`
	Status      string    `json:"status"`
	OrderTotal  float64   `json:"order_total"`
}
