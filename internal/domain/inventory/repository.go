package inventory

import (
	"context"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryUnitRepository defines persistence operations for inventory units
type InventoryUnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryUnit, error)
	FindByIMEI(ctx context.Context, imei string) (*InventoryUnit, error)
	ExistsByIMEI(ctx context.Context, imei string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryUnit, error)
	FindByPONumber(ctx context.Context, poNumber string) ([]InventoryUnit, error)
	Save(ctx context.Context, unit *InventoryUnit) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status UnitStatus) (int64, error)
}
