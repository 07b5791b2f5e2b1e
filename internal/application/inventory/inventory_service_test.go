package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func newTestUnit(t *testing.T) *inventory.InventoryUnit {
	t.Helper()

	unit, err := inventory.NewInventoryUnit(inventory.NewUnitInput{
		IMEI:          "356938035643809",
		DeviceModel:   "iPhone 15",
		Brand:         "Apple",
		PONumber:      "PO-2026-00001",
		PurchasePrice: decimal.NewFromInt(125000),
		StoreLocation: "Chennai Store",
		Organization:  inventory.OrganizationNova,
	})
	require.NoError(t, err)
	unit.ClearDomainEvents()
	return unit
}

func TestInventoryService_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("each action yields its exact status label", func(t *testing.T) {
		cases := map[string]string{
			"available":       "Available",
			"inward_nova":     "Inward Nova",
			"inward_magnova":  "Inward Magnova",
			"outward_nova":    "Outward Nova",
			"outward_magnova": "Outward Magnova",
			"dispatch":        "Dispatched",
		}

		for action, label := range cases {
			unitRepo := new(MockInventoryUnitRepository)
			service := NewInventoryService(unitRepo, locking.NewKeyedMutex(time.Second))

			unit := newTestUnit(t)
			unitRepo.On("FindByIMEI", ctx, "356938035643809").Return(unit, nil)
			unitRepo.On("Save", ctx, unit).Return(nil)

			response, err := service.Scan(ctx, ScanRequest{
				IMEI:                 "356938035643809",
				Action:               action,
				Location:             "Mumbai Hub",
				Organization:         "Magnova",
				CustomerOrganization: "Nova",
			})

			require.NoError(t, err, action)
			assert.Equal(t, label, response.Status, action)
			assert.Equal(t, "Mumbai Hub", response.CurrentLocation)
			assert.Equal(t, "Magnova", response.CurrentOrganization)
			assert.NotNil(t, response.LastScannedAt)
		}
	})

	t.Run("unknown action is a structured rejection before lookup", func(t *testing.T) {
		unitRepo := new(MockInventoryUnitRepository)
		service := NewInventoryService(unitRepo, locking.NewKeyedMutex(time.Second))

		_, err := service.Scan(ctx, ScanRequest{
			IMEI:                 "356938035643809",
			Action:               "teleport",
			Location:             "Mumbai Hub",
			Organization:         "Magnova",
			CustomerOrganization: "Nova",
		})

		assert.Equal(t, "INVALID_ACTION", shared.ErrorCode(err))
		unitRepo.AssertNotCalled(t, "FindByIMEI", mock.Anything, mock.Anything)
	})

	t.Run("unknown IMEI yields not found", func(t *testing.T) {
		unitRepo := new(MockInventoryUnitRepository)
		service := NewInventoryService(unitRepo, locking.NewKeyedMutex(time.Second))

		unitRepo.On("FindByIMEI", ctx, "000000000000000").Return(nil, shared.ErrNotFound)

		_, err := service.Scan(ctx, ScanRequest{
			IMEI:                 "000000000000000",
			Action:               "dispatch",
			Location:             "Mumbai Hub",
			Organization:         "Magnova",
			CustomerOrganization: "Nova",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing customer organization is rejected without saving", func(t *testing.T) {
		unitRepo := new(MockInventoryUnitRepository)
		service := NewInventoryService(unitRepo, locking.NewKeyedMutex(time.Second))

		unitRepo.On("FindByIMEI", ctx, "356938035643809").Return(newTestUnit(t), nil)

		_, err := service.Scan(ctx, ScanRequest{
			IMEI:         "356938035643809",
			Action:       "dispatch",
			Location:     "Mumbai Hub",
			Organization: "Magnova",
		})

		assert.Equal(t, "VALIDATION_ERROR", shared.ErrorCode(err))
		unitRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("maps filters onto the repository query", func(t *testing.T) {
		unitRepo := new(MockInventoryUnitRepository)
		service := NewInventoryService(unitRepo, locking.NewKeyedMutex(time.Second))

		unit := newTestUnit(t)
		unitRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["status"] == "Available" && f.Filters["organization"] == "Nova"
		})).Return([]inventory.InventoryUnit{*unit}, nil)
		unitRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

		units, total, err := service.List(ctx, UnitListFilter{
			Status:       "Available",
			Organization: "Nova",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, units, 1)
		assert.Equal(t, "356938035643809", units[0].IMEI)
		assert.Equal(t, "iPhone 15", units[0].Model)
	})
}
