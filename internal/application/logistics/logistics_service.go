package logistics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
	"github.com/google/uuid"
)

// LogisticsService handles shipment creation and status tracking
type LogisticsService struct {
	shipmentRepo   logistics.ShipmentRepository
	orderRepo      procurement.PurchaseOrderRepository
	unitRepo       inventory.InventoryUnitRepository
	locks          *locking.KeyedMutex
	defaultStatus  logistics.ShipmentStatus
	eventPublisher shared.EventPublisher
}

// NewLogisticsService creates a new LogisticsService. defaultStatus is the
// configured initial status for new shipments.
func NewLogisticsService(
	shipmentRepo logistics.ShipmentRepository,
	orderRepo procurement.PurchaseOrderRepository,
	unitRepo inventory.InventoryUnitRepository,
	locks *locking.KeyedMutex,
	defaultStatus logistics.ShipmentStatus,
) *LogisticsService {
	return &LogisticsService{
		shipmentRepo:  shipmentRepo,
		orderRepo:     orderRepo,
		unitRepo:      unitRepo,
		locks:         locks,
		defaultStatus: defaultStatus,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LogisticsService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LogisticsService) publishDomainEvents(ctx context.Context, root shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	root.ClearDomainEvents()
}

// CreateShipment creates a shipment claiming quantity from the matching
// brand/model line of the referenced purchase order. The claim is bounded
// by that line's still-unshipped quantity; shipments against the same PO
// are serialized so concurrent claims cannot oversubscribe a line.
func (s *LogisticsService) CreateShipment(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	release, err := s.locks.Acquire(ctx, locking.POKey(req.PONumber))
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orderRepo.FindByNumber(ctx, req.PONumber)
	if err != nil {
		return nil, err
	}

	item, err := order.FindItemByBrandModel(req.Brand, req.Model)
	if err != nil {
		return nil, err
	}
	if err := item.AddShipped(req.PickupQuantity); err != nil {
		return nil, err
	}

	units, err := s.resolveUnits(ctx, req.IMEIList)
	if err != nil {
		return nil, err
	}

	shipmentNumber, err := s.shipmentRepo.GenerateShipmentNumber(ctx)
	if err != nil {
		return nil, err
	}

	pickupDate := time.Time{}
	if req.PickupDate != nil {
		pickupDate = *req.PickupDate
	}

	shipment, err := logistics.NewShipment(logistics.NewShipmentInput{
		ShipmentNumber:   shipmentNumber,
		PONumber:         order.PONumber,
		TransporterName:  req.TransporterName,
		VehicleNumber:    req.VehicleNumber,
		FromLocation:     req.FromLocation,
		ToLocation:       req.ToLocation,
		PickupDate:       pickupDate,
		ExpectedDelivery: req.ExpectedDelivery,
		Brand:            item.Brand,
		Model:            item.Model,
		PickupQuantity:   req.PickupQuantity,
		IMEIList:         req.IMEIList,
		InitialStatus:    s.defaultStatus,
	})
	if err != nil {
		return nil, err
	}

	// The order row carries the shipped counter backing the claim, so it
	// is persisted first. A failure on a later save can only strand
	// claimed quantity, never oversubscribe the line.
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	for _, unit := range units {
		unit.AttachToShipment(shipment.ID)
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			return nil, err
		}
	}
	s.publishDomainEvents(ctx, shipment)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// resolveUnits looks up every listed IMEI so a shipment can only carry
// units that exist in the registry.
func (s *LogisticsService) resolveUnits(ctx context.Context, imeis []string) ([]*inventory.InventoryUnit, error) {
	units := make([]*inventory.InventoryUnit, 0, len(imeis))
	for _, imei := range imeis {
		unit, err := s.unitRepo.FindByIMEI(ctx, strings.TrimSpace(imei))
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, shared.NewDomainError("NOT_FOUND",
					fmt.Sprintf("IMEI %s is not in the registry", strings.TrimSpace(imei)))
			}
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

// UpdateStatus applies an operator-driven status override to a shipment.
// Updates of the same shipment are serialized.
func (s *LogisticsService) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, status string) (*ShipmentResponse, error) {
	release, err := s.locks.Acquire(ctx, locking.ShipmentKey(shipmentID.String()))
	if err != nil {
		return nil, err
	}
	defer release()

	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := shipment.UpdateStatus(status); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, shipment)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GetShipment retrieves a shipment by its ID
func (s *LogisticsService) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// ListShipments retrieves shipments with filtering and pagination
func (s *LogisticsService) ListShipments(ctx context.Context, filter ShipmentListFilter) ([]ShipmentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PONumber != "" {
		domainFilter.Filters["po_number"] = filter.PONumber
	}
	if filter.Transporter != "" {
		domainFilter.Filters["transporter_name"] = filter.Transporter
	}

	shipments, err := s.shipmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shipmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToShipmentResponses(shipments), total, nil
}
