package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/repository"
)

// BillService defines the business logic for the bill request ledger.
type BillService interface {
	RequestBill(ctx context.Context, req *models.RequestBillRequest) (uuid.UUID, *ServiceError)
	ListBillRequests(ctx context.Context) ([]models.BillRequestView, *ServiceError)
	ProcessBill(ctx context.Context, billID uuid.UUID, status string) *ServiceError
}

type billServiceImpl struct {
	billRepo repository.BillRepository
	logger   *zap.Logger
}

// NewBillService creates a new BillService.
func NewBillService(billRepo repository.BillRepository, logger *zap.Logger) BillService {
	return &billServiceImpl{billRepo: billRepo, logger: logger}
}

// RequestBill records the table asking to close out against its open order.
func (s *billServiceImpl) RequestBill(ctx context.Context, req *models.RequestBillRequest) (uuid.UUID, *ServiceError) {
	if req.TableNumber <= 0 {
		return uuid.Nil, validationError("Table number must be a positive integer")
	}

	bill, err := s.billRepo.CreateForTable(ctx, req.TableNumber, req.Note)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveOrder) {
			return uuid.Nil, noActiveOrderError("No active order found for this table")
		}
		s.logger.Error("Failed to create bill request",
			zap.Int("table_number", req.TableNumber),
			zap.Error(err),
		)
		return uuid.Nil, storageError("Failed to create bill request")
	}

	s.logger.Info("Bill requested",
		zap.String("bill_request_id", bill.ID.String()),
		zap.String("order_id", bill.OrderID.String()),
		zap.Int("table_number", req.TableNumber),
	)
	return bill.ID, nil
}

// ListBillRequests retrieves all bill requests with projected order totals,
// pending first so staff attend to open tabs before history.
func (s *billServiceImpl) ListBillRequests(ctx context.Context) ([]models.BillRequestView, *ServiceError) {
	rows, err := s.billRepo.ListWithTotals(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch bill requests", zap.Error(err))
		return nil, storageError("Failed to fetch bill requests")
	}

	views := make([]models.BillRequestView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	return views, nil
}

// ProcessBill resolves a bill request. Closing the bill and closing the
// order stay independent staff actions; the referenced order is untouched.
func (s *billServiceImpl) ProcessBill(ctx context.Context, billID uuid.UUID, status string) *ServiceError {
	if !models.IsValidBillStatus(status) {
		return validationError("Invalid status. Must be one of: pending, completed")
	}

	affected, err := s.billRepo.UpdateStatus(ctx, billID, status)
	if err != nil {
		s.logger.Error("Failed to update bill request",
			zap.String("bill_request_id", billID.String()),
			zap.Error(err),
		)
		return storageError("Failed to update bill request")
	}
	if affected == 0 {
		return notFoundError("Bill request not found")
	}

	s.logger.Info("Bill request processed",
		zap.String("bill_request_id", billID.String()),
		zap.String("status", status),
	)
	return nil
}
