package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slaviors/simenu/models"
)

// BillRow is a bill request with its order total aggregated in cents.
type BillRow struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	TableNumber int
	RequestTime time.Time
	Note        string
	Status      string
	TotalCents  int64
}

// View converts a row into the client-facing bill shape, rounding money to
// currency units only here.
func (row *BillRow) View() models.BillRequestView {
	return models.BillRequestView{
		ID:          row.ID,
		OrderID:     row.OrderID,
		TableNumber: row.TableNumber,
		RequestTime: row.RequestTime,
		Note:        row.Note,
		Status:      row.Status,
		OrderTotal:  float64(row.TotalCents) / 100,
	}
}

// BillRepository defines the interface for bill request data access.
type BillRepository interface {
	CreateForTable(ctx context.Context, tableNumber int, note string) (*models.BillRequest, error)
	ListWithTotals(ctx context.Context) ([]BillRow, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
}

// GormBillRepository implements BillRepository using GORM.
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new instance of GormBillRepository.
func NewGormBillRepository(db *gorm.DB) BillRepository {
	return &GormBillRepository{db: db}
}

// CreateForTable records a bill request against the table's open order,
// marking the order's bill-requested flag in the same transaction. Returns
// ErrNoActiveOrder when the table has nothing open.
func (r *GormBillRepository) CreateForTable(ctx context.Context, tableNumber int, note string) (*models.BillRequest, error) {
	var bill models.BillRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("table_number = ? AND status NOT IN ?", tableNumber, terminalStatuses).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveOrder
		}
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{"bill_requested": true, "bill_time": now}).Error; err != nil {
			return err
		}

		bill = models.BillRequest{
			OrderID:     order.ID,
			TableNumber: tableNumber,
			RequestTime: now,
			Note:        note,
			Status:      models.BillStatusPending,
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListWithTotals retrieves every bill request joined with the current total
// of its order: pending requests first regardless of age, then most recent
// first within each bucket. The total is a correlated aggregate over the
// order's current items, not a snapshot from request time.
func (r *GormBillRepository) ListWithTotals(ctx context.Context) ([]BillRow, error) {
	var rows []BillRow
	err := r.db.WithContext(ctx).
		Table("bill_requests").
		Select(`bill_requests.id, bill_requests.order_id, bill_requests.table_number,
			bill_requests.request_time, bill_requests.note, bill_requests.status,
			(SELECT COALESCE(SUM(order_items.quantity * menu_items.price_cents), 0)
			 FROM order_items
			 JOIN menu_items ON menu_items.id = order_items.menu_item_id
			 WHERE order_items.order_id = bill_requests.order_id) AS total_cents`).
		Order("CASE WHEN bill_requests.status = 'pending' THEN 0 ELSE 1 END, bill_requests.request_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets a bill request's status. Returns the number of rows
// affected so a missing id surfaces instead of silently doing nothing.
func (r *GormBillRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BillRequest{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}
