package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/repository"
)

// OrderService defines the business logic for the order aggregate and its
// read projections.
type OrderService interface {
	PlaceItem(ctx context.Context, req *models.PlaceOrderRequest) (uuid.UUID, *ServiceError)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status string) *ServiceError
	ListForTable(ctx context.Context, tableNumber int) ([]models.OrderItemView, *ServiceError)
	ListAllActive(ctx context.Context) ([]models.OrderView, *ServiceError)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repository.OrderRepository, menuRepo repository.MenuRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		logger:    logger,
	}
}

// PlaceItem appends a line item to the table's open order, creating the order
// first when the table has none. Returns the owning order's id.
func (s *orderServiceImpl) PlaceItem(ctx context.Context, req *models.PlaceOrderRequest) (uuid.UUID, *ServiceError) {
	if req.TableNumber <= 0 {
		return uuid.Nil, validationError("Table number must be a positive integer")
	}
	if req.Quantity <= 0 {
		return uuid.Nil, validationError("Quantity must be a positive integer")
	}
	if req.MenuItemID == uuid.Nil {
		return uuid.Nil, validationError("Menu item id is required")
	}

	if _, err := s.menuRepo.FindByID(ctx, req.MenuItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, notFoundError("Menu item not found")
		}
		s.logger.Error("Failed to resolve menu item", zap.Error(err))
		return uuid.Nil, storageError("Failed to place order item")
	}

	item := &models.OrderItem{
		MenuItemID:      req.MenuItemID,
		Quantity:        req.Quantity,
		SpecialRequests: req.SpecialRequests,
	}

	order, err := s.orderRepo.PlaceItem(ctx, req.TableNumber, item)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return uuid.Nil, notFoundError("Menu item not found")
		}
		s.logger.Error("Failed to place order item",
			zap.Int("table_number", req.TableNumber),
			zap.Error(err),
		)
		return uuid.Nil, storageError("Failed to place order item")
	}

	s.logger.Info("Order item placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("table_number", req.TableNumber),
		zap.Int("quantity", req.Quantity),
	)
	return order.ID, nil
}

// UpdateItemStatus progresses one line item through the lifecycle. The status
// value is validated against the enumeration before any write; edge legality
// and the order's derived status are handled transactionally by the repository.
func (s *orderServiceImpl) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status string) *ServiceError {
	if !models.IsValidStatus(status) {
		return validationError("Invalid status. Must be one of: pending, preparing, ready, delivered, completed, cancelled")
	}

	item, orderStatus, err := s.orderRepo.UpdateItemStatus(ctx, itemID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Order item not found")
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			return invalidTransitionError("Status change not permitted from current state")
		}
		s.logger.Error("Failed to update item status",
			zap.String("order_item_id", itemID.String()),
			zap.Error(err),
		)
		return storageError("Failed to update order status")
	}

	s.logger.Info("Order item status updated",
		zap.String("order_item_id", item.ID.String()),
		zap.String("item_status", item.Status),
		zap.String("order_status", orderStatus),
	)
	return nil
}

// ListForTable retrieves the table's open line items with nested menu
// snapshots, for the diner polling view.
func (s *orderServiceImpl) ListForTable(ctx context.Context, tableNumber int) ([]models.OrderItemView, *ServiceError) {
	rows, err := s.orderRepo.ItemsForTable(ctx, tableNumber)
	if err != nil {
		s.logger.Error("Failed to fetch table orders", zap.Int("table_number", tableNumber), zap.Error(err))
		return nil, storageError("Failed to fetch orders")
	}

	views := make([]models.OrderItemView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	return views, nil
}

// ListAllActive retrieves every open order with nested items, for the staff
// polling view. Items are assembled per order.
func (s *orderServiceImpl) ListAllActive(ctx context.Context) ([]models.OrderView, *ServiceError) {
	orders, err := s.orderRepo.FindActiveOrders(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch active orders", zap.Error(err))
		return nil, storageError("Failed to fetch orders")
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		rows, err := s.orderRepo.ItemsForOrder(ctx, orders[i].ID)
		if err != nil {
			s.logger.Error("Failed to fetch order items",
				zap.String("order_id", orders[i].ID.String()),
				zap.Error(err),
			)
			return nil, storageError("Failed to fetch orders")
		}

		items := make([]models.OrderItemView, 0, len(rows))
		for j := range rows {
			items = append(items, rows[j].View())
		}

		views = append(views, models.OrderView{
			ID:            orders[i].ID,
			TableNumber:   orders[i].TableNumber,
			OrderTime:     orders[i].OrderTime,
			Status:        orders[i].Status,
			BillRequested: orders[i].BillRequested,
			Items:         items,
		})
	}
	return views, nil
}
