package logistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockShipmentRepository is a mock implementation of ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByNumber(ctx context.Context, shipmentNumber string) (*logistics.Shipment, error) {
	args := m.Called(ctx, shipmentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Shipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByPONumber(ctx context.Context, poNumber string) ([]logistics.Shipment, error) {
	args := m.Called(ctx, poNumber)
	return args.Get(0).([]logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *logistics.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) CountByStatus(ctx context.Context, status logistics.ShipmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) GenerateShipmentNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByNumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, poNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountByStatus(ctx context.Context, status procurement.ApprovalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) GeneratePONumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockInventoryUnitRepository is a mock implementation of InventoryUnitRepository
type MockInventoryUnitRepository struct {
	mock.Mock
}

func (m *MockInventoryUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryUnit), args.Error(1)
}

func (m *MockInventoryUnitRepository) FindByIMEI(ctx context.Context, imei string) (*inventory.InventoryUnit, error) {
	args := m.Called(ctx, imei)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryUnit), args.Error(1)
}

func (m *MockInventoryUnitRepository) ExistsByIMEI(ctx context.Context, imei string) (bool, error) {
	args := m.Called(ctx, imei)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryUnit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.InventoryUnit), args.Error(1)
}

func (m *MockInventoryUnitRepository) FindByPONumber(ctx context.Context, poNumber string) ([]inventory.InventoryUnit, error) {
	args := m.Called(ctx, poNumber)
	return args.Get(0).([]inventory.InventoryUnit), args.Error(1)
}

func (m *MockInventoryUnitRepository) Save(ctx context.Context, unit *inventory.InventoryUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockInventoryUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryUnitRepository) CountByStatus(ctx context.Context, status inventory.UnitStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

var errTestSave = errors.New("save failed")

func newService(
	shipmentRepo *MockShipmentRepository,
	orderRepo *MockPurchaseOrderRepository,
	unitRepo *MockInventoryUnitRepository,
) *LogisticsService {
	return NewLogisticsService(shipmentRepo, orderRepo, unitRepo,
		locking.NewKeyedMutex(time.Second), logistics.ShipmentStatusInTransit)
}

func approvedOrder(t *testing.T) *procurement.PurchaseOrder {
	t.Helper()

	order, err := procurement.NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
	require.NoError(t, err)
	_, err = order.AddItem(procurement.NewPOItemInput{
		Vendor:  "Acme Traders",
		Brand:   "Samsung",
		Model:   "Galaxy S24",
		Qty:     5,
		Rate:    decimal.NewFromInt(159900),
		POValue: decimal.NewFromInt(799500),
	})
	require.NoError(t, err)
	require.NoError(t, order.Decide("approve"))
	order.ClearDomainEvents()
	return order
}

func TestLogisticsService_CreateShipment(t *testing.T) {
	ctx := context.Background()

	request := CreateShipmentRequest{
		PONumber:        "PO-2026-00001",
		TransporterName: "BlueDart Logistics",
		FromLocation:    "Chennai Store",
		ToLocation:      "Mumbai Hub",
		Brand:           "Samsung",
		Model:           "Galaxy S24",
		PickupQuantity:  5,
	}

	t.Run("claims quantity from the matching PO line", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		unitRepo := new(MockInventoryUnitRepository)
		service := newService(shipmentRepo, orderRepo, unitRepo)

		order := approvedOrder(t)
		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(order, nil)
		shipmentRepo.On("GenerateShipmentNumber", ctx).Return("SH-2026-00001", nil)
		shipmentRepo.On("Save", ctx, mock.AnythingOfType("*logistics.Shipment")).Return(nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		response, err := service.CreateShipment(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "SH-2026-00001", response.ShipmentNumber)
		assert.Equal(t, "In Transit", response.Status)
		assert.Equal(t, "Samsung", response.Brand)
		assert.Equal(t, "Galaxy S24", response.Model)
		assert.Equal(t, 5, response.PickupQuantity)
		assert.Equal(t, 5, order.Items[0].ShippedQty)
		shipmentRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("quantity beyond the unshipped remainder is rejected", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		unitRepo := new(MockInventoryUnitRepository)
		service := newService(shipmentRepo, orderRepo, unitRepo)

		order := approvedOrder(t)
		require.NoError(t, order.Items[0].AddShipped(3))
		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(order, nil)

		_, err := service.CreateShipment(ctx, request)

		assert.Equal(t, "CAPACITY_EXCEEDED", shared.ErrorCode(err))
		shipmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("claim is persisted before the shipment row", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		unitRepo := new(MockInventoryUnitRepository)
		service := newService(shipmentRepo, orderRepo, unitRepo)

		order := approvedOrder(t)
		orderSaved := false
		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(order, nil)
		shipmentRepo.On("GenerateShipmentNumber", ctx).Return("SH-2026-00001", nil)
		orderRepo.On("Save", ctx, order).Run(func(args mock.Arguments) {
			orderSaved = true
		}).Return(nil)
		shipmentRepo.On("Save", ctx, mock.AnythingOfType("*logistics.Shipment")).Run(func(args mock.Arguments) {
			assert.True(t, orderSaved, "shipped counter must be persisted before the shipment row")
		}).Return(errTestSave)

		_, err := service.CreateShipment(ctx, request)

		assert.ErrorIs(t, err, errTestSave)
		orderRepo.AssertCalled(t, "Save", ctx, order)
	})

	t.Run("unknown brand and model yields not found", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		unitRepo := new(MockInventoryUnitRepository)
		service := newService(shipmentRepo, orderRepo, unitRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(approvedOrder(t), nil)

		mismatched := request
		mismatched.Model = "Galaxy S23"

		_, err := service.CreateShipment(ctx, mismatched)

		assert.Equal(t, "NOT_FOUND", shared.ErrorCode(err))
	})

	t.Run("listed IMEIs are attached to the shipment", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		unitRepo := new(MockInventoryUnitRepository)
		service := newService(shipmentRepo, orderRepo, unitRepo)

		order := approvedOrder(t)
		unit, err := inventory.NewInventoryUnit(inventory.NewUnitInput{
			IMEI:          "356938035643809",
			DeviceModel:   "Galaxy S24",
			Brand:         "Samsung",
			PONumber:      "PO-2026-00001",
			PurchasePrice: decimal.NewFromInt(159900),
			StoreLocation: "Chennai Store",
			Organization:  inventory.OrganizationNova,
		})
		require.NoError(t, err)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(order, nil)
		unitRepo.On("FindByIMEI", ctx, "356938035643809").Return(unit, nil)
		shipmentRepo.On("GenerateShipmentNumber", ctx).Return("SH-2026-00001", nil)
		shipmentRepo.On("Save", ctx, mock.AnythingOfType("*logistics.Shipment")).Return(nil)
		orderRepo.On("Save", ctx, order).Return(nil)
		unitRepo.On("Save", ctx, unit).Return(nil)

		withIMEI := request
		withIMEI.IMEIList = []string{"356938035643809"}

		response, err := service.CreateShipment(ctx, withIMEI)

		require.NoError(t, err)
		assert.Equal(t, []string{"356938035643809"}, response.IMEIList)
		assert.NotNil(t, unit.ShipmentID)
		unitRepo.AssertExpectations(t)
	})
}

func TestLogisticsService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	newShipment := func(t *testing.T) *logistics.Shipment {
		t.Helper()
		shipment, err := logistics.NewShipment(logistics.NewShipmentInput{
			ShipmentNumber:  "SH-2026-00001",
			PONumber:        "PO-2026-00001",
			TransporterName: "BlueDart Logistics",
			FromLocation:    "Chennai Store",
			ToLocation:      "Mumbai Hub",
			PickupDate:      time.Now(),
			Brand:           "Samsung",
			Model:           "Galaxy S24",
			PickupQuantity:  5,
			InitialStatus:   logistics.ShipmentStatusInTransit,
		})
		require.NoError(t, err)
		shipment.ClearDomainEvents()
		return shipment
	}

	t.Run("delivered stamps the actual delivery time", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := newService(shipmentRepo, new(MockPurchaseOrderRepository), new(MockInventoryUnitRepository))

		shipment := newShipment(t)
		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
		shipmentRepo.On("Save", ctx, shipment).Return(nil)

		response, err := service.UpdateStatus(ctx, shipment.ID, "Delivered")

		require.NoError(t, err)
		assert.Equal(t, "Delivered", response.Status)
		assert.NotNil(t, response.ActualDelivery)
	})

	t.Run("unknown shipment yields not found", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := newService(shipmentRepo, new(MockPurchaseOrderRepository), new(MockInventoryUnitRepository))

		id := uuid.New()
		shipmentRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.UpdateStatus(ctx, id, "Delivered")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown status is rejected without saving", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := newService(shipmentRepo, new(MockPurchaseOrderRepository), new(MockInventoryUnitRepository))

		shipment := newShipment(t)
		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

		_, err := service.UpdateStatus(ctx, shipment.ID, "Teleported")

		assert.Equal(t, "VALIDATION_ERROR", shared.ErrorCode(err))
		shipmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
