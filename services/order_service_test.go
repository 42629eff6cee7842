package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/repository"
	"github.com/slaviors/simenu/services"
)

// ---- mock order repository ----

type mockOrderRepo struct {
	placeOrder        *models.Order
	placeErr          error
	placeCalls        int
	lastPlacedTable   int
	lastPlacedItem    *models.OrderItem
	updateItem        *models.OrderItem
	updateOrderStatus string
	updateErr         error
	updateCalls       int
	tableRows         []repository.LineItemRow
	tableErr          error
	activeOrders      []models.Order
	orderRows         map[uuid.UUID][]repository.LineItemRow
}

func (m *mockOrderRepo) PlaceItem(_ context.Context, tableNumber int, item *models.OrderItem) (*models.Order, error) {
	m.placeCalls++
	m.lastPlacedTable = tableNumber
	m.lastPlacedItem = item
	return m.placeOrder, m.placeErr
}

func (m *mockOrderRepo) UpdateItemStatus(_ context.Context, itemID uuid.UUID, newStatus string) (*models.OrderItem, string, error) {
	m.updateCalls++
	return m.updateItem, m.updateOrderStatus, m.updateErr
}

func (m *mockOrderRepo) ItemsForTable(_ context.Context, tableNumber int) ([]repository.LineItemRow, error) {
	return m.tableRows, m.tableErr
}

func (m *mockOrderRepo) FindActiveOrders(_ context.Context) ([]models.Order, error) {
	return m.activeOrders, nil
}

func (m *mockOrderRepo) ItemsForOrder(_ context.Context, orderID uuid.UUID) ([]repository.LineItemRow, error) {
	return m.orderRows[orderID], nil
}

// ---- mock menu repository ----

type mockMenuRepo struct {
	item       *models.MenuItem
	findErr    error
	created    *models.MenuItem
	updated    *models.MenuItem
	updateErr  error
	deactRows  int64
	deactErr   error
	activeList []models.MenuItem
}

func (m *mockMenuRepo) FindActive(_ context.Context) ([]models.MenuItem, error) {
	return m.activeList, nil
}

func (m *mockMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return m.item, m.findErr
}

func (m *mockMenuRepo) Create(_ context.Context, item *models.MenuItem) error {
	m.created = item
	return nil
}

func (m *mockMenuRepo) Update(_ context.Context, item *models.MenuItem) error {
	m.updated = item
	return m.updateErr
}

func (m *mockMenuRepo) Deactivate(_ context.Context, id uuid.UUID) (int64, error) {
	return m.deactRows, m.deactErr
}

func newOrderService(orderRepo *mockOrderRepo, menuRepo *mockMenuRepo) services.OrderService {
	logger, _ := zap.NewDevelopment()
	return services.NewOrderService(orderRepo, menuRepo, logger)
}

// ---- tests ----

func TestPlaceItem_Success(t *testing.T) {
	orderID := uuid.New()
	menuItemID := uuid.New()
	orderRepo := &mockOrderRepo{placeOrder: &models.Order{ID: orderID, TableNumber: 7}}
	menuRepo := &mockMenuRepo{item: &models.MenuItem{ID: menuItemID, Name: "Nasi Goreng", PriceCents: 4500}}
	svc := newOrderService(orderRepo, menuRepo)

	got, svcErr := svc.PlaceItem(context.Background(), &models.PlaceOrderRequest{
		TableNumber: 7,
		MenuItemID:  menuItemID,
		Quantity:    2,
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, orderID, got)
	assert.Equal(t, 1, orderRepo.placeCalls)
	assert.Equal(t, 7, orderRepo.lastPlacedTable)
	assert.Equal(t, 2, orderRepo.lastPlacedItem.Quantity)
	assert.Equal(t, menuItemID, orderRepo.lastPlacedItem.MenuItemID)
}

func TestPlaceItem_ZeroQuantityRejectedBeforeWrite(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	menuRepo := &mockMenuRepo{item: &models.MenuItem{ID: uuid.New()}}
	svc := newOrderService(orderRepo, menuRepo)

	_, svcErr := svc.PlaceItem(context.Background(), &models.PlaceOrderRequest{
		TableNumber: 3,
		MenuItemID:  uuid.New(),
		Quantity:    0,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeValidation, svcErr.Code)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, 0, orderRepo.placeCalls)
}

func TestPlaceItem_InvalidTableRejected(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	_, svcErr := svc.PlaceItem(context.Background(), &models.PlaceOrderRequest{
		TableNumber: 0,
		MenuItemID:  uuid.New(),
		Quantity:    1,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeValidation, svcErr.Code)
	assert.Equal(t, 0, orderRepo.placeCalls)
}

func TestPlaceItem_UnknownMenuItem(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	menuRepo := &mockMenuRepo{findErr: gorm.ErrRecordNotFound}
	svc := newOrderService(orderRepo, menuRepo)

	_, svcErr := svc.PlaceItem(context.Background(), &models.PlaceOrderRequest{
		TableNumber: 3,
		MenuItemID:  uuid.New(),
		Quantity:    1,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeNotFound, svcErr.Code)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, 0, orderRepo.placeCalls)
}

func TestUpdateItemStatus_UnknownValueRejectedBeforeWrite(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	svcErr := svc.UpdateItemStatus(context.Background(), uuid.New(), "shipped")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeValidation, svcErr.Code)
	assert.Equal(t, 0, orderRepo.updateCalls)
}

func TestUpdateItemStatus_IllegalEdge(t *testing.T) {
	orderRepo := &mockOrderRepo{updateErr: repository.ErrInvalidTransition}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	svcErr := svc.UpdateItemStatus(context.Background(), uuid.New(), models.StatusPending)

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeInvalidTransition, svcErr.Code)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestUpdateItemStatus_ItemNotFound(t *testing.T) {
	orderRepo := &mockOrderRepo{updateErr: gorm.ErrRecordNotFound}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	svcErr := svc.UpdateItemStatus(context.Background(), uuid.New(), models.StatusPreparing)

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeNotFound, svcErr.Code)
}

func TestUpdateItemStatus_Success(t *testing.T) {
	itemID := uuid.New()
	orderRepo := &mockOrderRepo{
		updateItem:        &models.OrderItem{ID: itemID, Status: models.StatusReady},
		updateOrderStatus: models.StatusReady,
	}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	svcErr := svc.UpdateItemStatus(context.Background(), itemID, models.StatusReady)

	assert.Nil(t, svcErr)
	assert.Equal(t, 1, orderRepo.updateCalls)
}

func TestListForTable_MapsNestedMenuSnapshot(t *testing.T) {
	itemID := uuid.New()
	menuItemID := uuid.New()
	orderRepo := &mockOrderRepo{
		tableRows: []repository.LineItemRow{
			{
				ID:         itemID,
				Quantity:   2,
				Status:     models.StatusPending,
				MenuItemID: menuItemID,
				Name:       "Es Teh",
				PriceCents: 550,
				ImageURL:   "https://img.example/es-teh.png",
			},
		},
	}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	views, svcErr := svc.ListForTable(context.Background(), 4)

	assert.Nil(t, svcErr)
	assert.Len(t, views, 1)
	assert.Equal(t, itemID, views[0].ID)
	assert.Equal(t, menuItemID, views[0].MenuItem.ID)
	assert.Equal(t, "Es Teh", views[0].MenuItem.Name)
	assert.InDelta(t, 5.50, views[0].MenuItem.Price, 0.0001)
}

func TestListForTable_RepeatedReadsIdentical(t *testing.T) {
	orderRepo := &mockOrderRepo{
		tableRows: []repository.LineItemRow{
			{ID: uuid.New(), Quantity: 1, Status: models.StatusPending, Name: "Sate", PriceCents: 3000},
			{ID: uuid.New(), Quantity: 3, Status: models.StatusReady, Name: "Soto", PriceCents: 2500},
		},
	}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	first, err1 := svc.ListForTable(context.Background(), 9)
	second, err2 := svc.ListForTable(context.Background(), 9)

	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first, second)
}

func TestListAllActive_NestsItemsPerOrder(t *testing.T) {
	orderA := uuid.New()
	orderB := uuid.New()
	orderRepo := &mockOrderRepo{
		activeOrders: []models.Order{
			{ID: orderA, TableNumber: 1, Status: models.StatusPending},
			{ID: orderB, TableNumber: 2, Status: models.StatusReady, BillRequested: true},
		},
		orderRows: map[uuid.UUID][]repository.LineItemRow{
			orderA: {{ID: uuid.New(), Quantity: 1, Status: models.StatusPending, Name: "Bakso", PriceCents: 2000}},
			orderB: {
				{ID: uuid.New(), Quantity: 2, Status: models.StatusReady, Name: "Mie Ayam", PriceCents: 1800},
				{ID: uuid.New(), Quantity: 1, Status: models.StatusReady, Name: "Jus Alpukat", PriceCents: 1200},
			},
		},
	}
	svc := newOrderService(orderRepo, &mockMenuRepo{})

	views, svcErr := svc.ListAllActive(context.Background())

	assert.Nil(t, svcErr)
	assert.Len(t, views, 2)
	assert.Len(t, views[0].Items, 1)
	assert.Len(t, views[1].Items, 2)
	assert.True(t, views[1].BillRequested)
}
