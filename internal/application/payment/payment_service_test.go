package payment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByPONumber(ctx context.Context, poNumber string, paymentType payment.PaymentType) ([]payment.Payment, error) {
	args := m.Called(ctx, poNumber, paymentType)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumByPONumber(ctx context.Context, poNumber string, paymentType payment.PaymentType) (decimal.Decimal, error) {
	args := m.Called(ctx, poNumber, paymentType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) ExistsByTransactionRef(ctx context.Context, transactionRef string) (bool, error) {
	args := m.Called(ctx, transactionRef)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) ExistsByUTRNumber(ctx context.Context, utrNumber string) (bool, error) {
	args := m.Called(ctx, utrNumber)
	return args.Bool(0), args.Error(1)
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

func newService(paymentRepo *MockPaymentRepository, orderRepo *MockPurchaseOrderRepository) *PaymentService {
	return NewPaymentService(paymentRepo, orderRepo, locking.NewKeyedMutex(time.Second))
}

func existingOrder(t *testing.T) *procurement.PurchaseOrder {
	t.Helper()
	order, err := procurement.NewPurchaseOrder("PO-2026-00001", time.Now(), "Magnova Chennai", "")
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestPaymentService_RecordInternal(t *testing.T) {
	ctx := context.Background()

	request := RecordInternalPaymentRequest{
		PONumber:       "PO-2026-00001",
		PayeeName:      "Acme Traders",
		PaymentMode:    "NEFT",
		Amount:         decimal.NewFromInt(500000),
		TransactionRef: "TXN-1",
	}

	t.Run("appends a vendor payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByTransactionRef", ctx, "TXN-1").Return(false, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)

		response, err := service.RecordInternal(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "internal", response.PaymentType)
		assert.True(t, response.Amount.Equal(decimal.NewFromInt(500000)))
		paymentRepo.AssertExpectations(t)
	})

	t.Run("ledger entry carries its id as payment_id", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByTransactionRef", ctx, "TXN-1").Return(false, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)

		response, err := service.RecordInternal(ctx, request)
		require.NoError(t, err)

		body, err := json.Marshal(response)
		require.NoError(t, err)

		var serialized map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &serialized))
		assert.Equal(t, response.ID.String(), serialized["payment_id"])
		assert.NotContains(t, serialized, "id")
	})

	t.Run("duplicate transaction reference is rejected", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByTransactionRef", ctx, "TXN-1").Return(true, nil)

		_, err := service.RecordInternal(ctx, request)

		assert.Equal(t, "CONFLICT", shared.ErrorCode(err))
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown PO yields not found", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(nil, shared.ErrNotFound)

		_, err := service.RecordInternal(ctx, request)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPaymentService_RecordExternal(t *testing.T) {
	ctx := context.Background()

	request := RecordExternalPaymentRequest{
		PONumber:    "PO-2026-00001",
		PayeeType:   "vendor",
		PayeeName:   "Acme Traders",
		PaymentMode: "IMPS",
		Amount:      decimal.NewFromInt(100000),
		UTRNumber:   "UTR-1",
	}

	t.Run("appends a disbursement inside the funded amount", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByUTRNumber", ctx, "UTR-1").Return(false, nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeInternal).
			Return(decimal.NewFromInt(500000), nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeExternal).
			Return(decimal.NewFromInt(300000), nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)

		response, err := service.RecordExternal(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "external", response.PaymentType)
		assert.Equal(t, "UTR-1", response.UTRNumber)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("disbursement beyond internal funding is rejected", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByUTRNumber", ctx, "UTR-1").Return(false, nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeInternal).
			Return(decimal.NewFromInt(500000), nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeExternal).
			Return(decimal.NewFromInt(450000), nil)

		_, err := service.RecordExternal(ctx, request)

		assert.Equal(t, "CONFLICT", shared.ErrorCode(err))
		assert.Contains(t, err.Error(), "Insufficient internal funding")
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cc payee without phone is rejected", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByUTRNumber", ctx, "UTR-1").Return(false, nil)

		cc := request
		cc.PayeeType = "cc"

		_, err := service.RecordExternal(ctx, cc)

		assert.Equal(t, "VALIDATION_ERROR", shared.ErrorCode(err))
	})

	t.Run("cc payee with phone echoes it back", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByUTRNumber", ctx, "UTR-1").Return(false, nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeInternal).
			Return(decimal.NewFromInt(500000), nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeExternal).
			Return(decimal.Zero, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)

		cc := request
		cc.PayeeType = "cc"
		cc.PayeePhone = "9876543210"

		response, err := service.RecordExternal(ctx, cc)

		require.NoError(t, err)
		assert.Equal(t, "9876543210", response.PayeePhone)
	})

	t.Run("duplicate UTR is rejected", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("ExistsByUTRNumber", ctx, "UTR-1").Return(true, nil)

		_, err := service.RecordExternal(ctx, request)

		assert.Equal(t, "CONFLICT", shared.ErrorCode(err))
	})
}

func TestPaymentService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the reconciliation figures", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-00001").Return(existingOrder(t), nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeInternal).
			Return(decimal.NewFromInt(500000), nil)
		paymentRepo.On("SumByPONumber", ctx, "PO-2026-00001", payment.PaymentTypeExternal).
			Return(decimal.NewFromInt(100000), nil)

		summary, err := service.Summary(ctx, "PO-2026-00001")

		require.NoError(t, err)
		assert.Equal(t, "PO-2026-00001", summary.PONumber)
		assert.True(t, summary.InternalPaid.Equal(decimal.NewFromInt(500000)))
		assert.True(t, summary.ExternalPaid.Equal(decimal.NewFromInt(100000)))
		assert.True(t, summary.ExternalRemaining.Equal(decimal.NewFromInt(400000)))
	})

	t.Run("unknown PO yields not found", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := newService(paymentRepo, orderRepo)

		orderRepo.On("FindByNumber", ctx, "PO-2026-99999").Return(nil, shared.ErrNotFound)

		_, err := service.Summary(ctx, "PO-2026-99999")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
