package procurement

import (
	"context"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	// SaveWithLock saves the order with an optimistic version check
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status ApprovalStatus) (int64, error)
	// GeneratePONumber produces the next unique order number (PO-YYYY-NNNNN)
	GeneratePONumber(ctx context.Context) (string, error)
}
