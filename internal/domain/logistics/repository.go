package logistics

import (
	"context"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
)

// ShipmentRepository defines persistence operations for shipments
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByNumber(ctx context.Context, shipmentNumber string) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)
	FindByPONumber(ctx context.Context, poNumber string) ([]Shipment, error)
	Save(ctx context.Context, shipment *Shipment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status ShipmentStatus) (int64, error)
	// GenerateShipmentNumber produces the next unique number (SH-YYYY-NNNNN)
	GenerateShipmentNumber(ctx context.Context) (string, error)
}
