package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slaviors/simenu/models"
)

// terminalStatuses is the set of statuses that close an order.
var terminalStatuses = []string{models.StatusCompleted, models.StatusCancelled}

// LineItemRow is the flattened result of joining an order item with its menu
// item, scanned straight out of the projection queries.
type LineItemRow struct {
	ID              uuid.UUID
	Quantity        int
	SpecialRequests string
	Status          string
	MenuItemID      uuid.UUID
	Name            string
	PriceCents      int64
	ImageURL        string
}

// View converts a row into the client-facing line-item shape.
func (row *LineItemRow) View() models.OrderItemView {
	return models.OrderItemView{
		ID:              row.ID,
		Quantity:        row.Quantity,
		SpecialRequests: row.SpecialRequests,
		Status:          row.Status,
		MenuItem: models.MenuItemRef{
			ID:       row.MenuItemID,
			Name:     row.Name,
			Price:    float64(row.PriceCents) / 100,
			ImageURL: row.ImageURL,
		},
	}
}

// OrderRepository defines the interface for order aggregate data access.
type OrderRepository interface {
	PlaceItem(ctx context.Context, tableNumber int, item *models.OrderItem) (*models.Order, error)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, newStatus string) (*models.OrderItem, string, error)
	ItemsForTable(ctx context.Context, tableNumber int) ([]LineItemRow, error)
	FindActiveOrders(ctx context.Context) ([]models.Order, error)
	ItemsForOrder(ctx context.Context, orderID uuid.UUID) ([]LineItemRow, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// PlaceItem resolves the table's open order, creating one if none exists, and
// appends the item to it — all inside one transaction. The open-order lookup
// takes a row lock so concurrent placements for the same table serialize; the
// partial unique index on (table_number) backs that up, and a unique
// violation means another placement created the order first, so the whole
// transaction is retried once to attach to the winner's order.
func (r *GormOrderRepository) PlaceItem(ctx context.Context, tableNumber int, item *models.OrderItem) (*models.Order, error) {
	order, err := r.placeItemTx(ctx, tableNumber, item)
	if IsUniqueViolation(err) {
		order, err = r.placeItemTx(ctx, tableNumber, item)
	}
	return order, err
}

func (r *GormOrderRepository) placeItemTx(ctx context.Context, tableNumber int, item *models.OrderItem) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("table_number = ? AND status NOT IN ?", tableNumber, terminalStatuses).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			order = models.Order{
				TableNumber: tableNumber,
				OrderTime:   time.Now(),
				Status:      models.StatusPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		item.ID = uuid.Nil
		item.OrderID = order.ID
		item.Status = models.StatusPending
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateItemStatus transitions one line item through the lifecycle engine and
// rewrites the owning order's derived status in the same transaction, so an
// item update and its order recomputation are never observable apart. The
// owning order row is locked before the sibling read: concurrent updates to
// different items of the same order serialize on it, so neither derives the
// order status from a snapshot missing the other's write.
// Returns the updated item and the order's new status.
func (r *GormOrderRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, newStatus string) (*models.OrderItem, string, error) {
	var item models.OrderItem
	var orderStatus string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}

		if !models.CanTransition(item.Status, newStatus) {
			return ErrInvalidTransition
		}

		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", item.OrderID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.OrderItem{}).
			Where("id = ?", itemID).
			Update("status", newStatus).Error; err != nil {
			return err
		}
		item.Status = newStatus

		var siblings []models.OrderItem
		if err := tx.Where("order_id = ?", item.OrderID).Find(&siblings).Error; err != nil {
			return err
		}
		orderStatus = models.DeriveOrderStatus(siblings)

		return tx.Model(&models.Order{}).
			Where("id = ?", item.OrderID).
			Update("status", orderStatus).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &item, orderStatus, nil
}

// ItemsForTable retrieves the line items of the table's open order joined
// with their menu snapshots, newest first.
func (r *GormOrderRepository) ItemsForTable(ctx context.Context, tableNumber int) ([]LineItemRow, error) {
	var rows []LineItemRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.id, order_items.quantity, order_items.special_requests, order_items.status,
			menu_items.id AS menu_item_id, menu_items.name, menu_items.price_cents, menu_items.image_url`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.table_number = ? AND orders.status NOT IN ?", tableNumber, terminalStatuses).
		Order("order_items.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActiveOrders retrieves all open orders, newest first.
func (r *GormOrderRepository) FindActiveOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("status NOT IN ?", terminalStatuses).
		Order("order_time DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ItemsForOrder retrieves one order's line items joined with their menu
// snapshots. The staff view assembles nested items with one query per order.
func (r *GormOrderRepository) ItemsForOrder(ctx context.Context, orderID uuid.UUID) ([]LineItemRow, error) {
	var rows []LineItemRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.id, order_items.quantity, order_items.special_requests, order_items.status,
			menu_items.id AS menu_item_id, menu_items.name, menu_items.price_cents, menu_items.image_url`).
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
