package payment

import (
	"context"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines persistence operations for the payment ledger.
// The ledger is append-only; there is no update or delete.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	FindByPONumber(ctx context.Context, poNumber string, paymentType PaymentType) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumByPONumber totals recorded amounts of one type for a purchase order
	SumByPONumber(ctx context.Context, poNumber string, paymentType PaymentType) (decimal.Decimal, error)
	// SumAll totals every recorded amount across both subtypes
	SumAll(ctx context.Context) (decimal.Decimal, error)
	ExistsByTransactionRef(ctx context.Context, transactionRef string) (bool, error)
	ExistsByUTRNumber(ctx context.Context, utrNumber string) (bool, error)
}
