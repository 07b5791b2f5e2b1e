package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
)

// ProcurementService handles purchase order and intake operations
type ProcurementService struct {
	orderRepo      procurement.PurchaseOrderRepository
	unitRepo       inventory.InventoryUnitRepository
	locks          *locking.KeyedMutex
	eventPublisher shared.EventPublisher
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(
	orderRepo procurement.PurchaseOrderRepository,
	unitRepo inventory.InventoryUnitRepository,
	locks *locking.KeyedMutex,
) *ProcurementService {
	return &ProcurementService{
		orderRepo: orderRepo,
		unitRepo:  unitRepo,
		locks:     locks,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProcurementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ProcurementService) publishDomainEvents(ctx context.Context, root shared.AggregateRoot) {
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

// CreatePurchaseOrder creates a purchase order draft with its line items.
// When no PO number is supplied one is generated from the yearly sequence.
func (s *ProcurementService) CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	poNumber := strings.TrimSpace(req.PONumber)
	if poNumber == "" {
		generated, err := s.orderRepo.GeneratePONumber(ctx)
		if err != nil {
			return nil, err
		}
		poNumber = generated
	} else {
		existing, err := s.orderRepo.FindByNumber(ctx, poNumber)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Purchase order %s already exists", poNumber))
		}
	}

	poDate := time.Time{}
	if req.PODate != nil {
		poDate = *req.PODate
	}

	order, err := procurement.NewPurchaseOrder(poNumber, poDate, req.PurchaseOffice, req.Notes)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := order.AddItem(procurement.NewPOItemInput{
			SlNo:     item.SlNo,
			Vendor:   item.Vendor,
			Location: item.Location,
			Brand:    item.Brand,
			Model:    item.Model,
			Storage:  item.Storage,
			Colour:   item.Colour,
			Qty:      item.Qty,
			Rate:     item.Rate,
			POValue:  item.POValue,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetPurchaseOrder retrieves a purchase order by its number
func (s *ProcurementService) GetPurchaseOrder(ctx context.Context, poNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// ListPurchaseOrders retrieves purchase orders with filtering and pagination
func (s *ProcurementService) ListPurchaseOrders(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
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
		domainFilter.Filters["approval_status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderResponses(orders), total, nil
}

// DecidePurchaseOrder applies an approval action to a purchase order.
// Decisions against the same order are serialized so a draft is decided
// exactly once.
func (s *ProcurementService) DecidePurchaseOrder(ctx context.Context, poNumber, action string) (*PurchaseOrderResponse, error) {
	release, err := s.locks.Acquire(ctx, locking.POKey(poNumber))
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orderRepo.FindByNumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}

	if err := order.Decide(action); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Intake registers one procured unit against an approved purchase order.
// The unit inherits brand, storage and colour from the matched PO line and
// its organization from the order's purchase office.
func (s *ProcurementService) Intake(ctx context.Context, req IntakeRequest) (*ProcuredUnitResponse, error) {
	imei := strings.TrimSpace(req.IMEI)
	if imei == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "IMEI cannot be empty")
	}

	releaseIMEI, err := s.locks.Acquire(ctx, locking.IMEIKey(imei))
	if err != nil {
		return nil, err
	}
	defer releaseIMEI()

	releasePO, err := s.locks.Acquire(ctx, locking.POKey(req.PONumber))
	if err != nil {
		return nil, err
	}
	defer releasePO()

	exists, err := s.unitRepo.ExistsByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("IMEI %s already exists in the registry", imei))
	}

	order, err := s.orderRepo.FindByNumber(ctx, req.PONumber)
	if err != nil {
		return nil, err
	}
	if !order.IsApproved() {
		return nil, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Purchase order %s is not approved for intake", order.PONumber))
	}

	item, err := s.resolveItem(order, req)
	if err != nil {
		return nil, err
	}
	if err := item.AddProcured(); err != nil {
		return nil, err
	}

	vendorName := req.VendorName
	if vendorName == "" {
		vendorName = item.Vendor
	}
	purchasePrice := req.PurchasePrice
	if purchasePrice.IsZero() {
		purchasePrice = item.Rate
	}

	unit, err := inventory.NewInventoryUnit(inventory.NewUnitInput{
		IMEI:          imei,
		SerialNumber:  req.SerialNumber,
		DeviceModel:   req.DeviceModel,
		Brand:         item.Brand,
		Storage:       item.Storage,
		Colour:        item.Colour,
		PONumber:      order.PONumber,
		VendorName:    vendorName,
		PurchasePrice: purchasePrice,
		StoreLocation: req.StoreLocation,
		Organization:  inventory.OrganizationFromPurchaseOffice(order.PurchaseOffice),
	})
	if err != nil {
		return nil, err
	}

	// The order row carries the procured counter, so it is persisted
	// first. If the unit save then fails the counter errs on the full
	// side instead of admitting an extra unit past the line quantity.
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, unit)
	s.publishDomainEvents(ctx, order)

	response := ToProcuredUnitResponse(unit)
	return &response, nil
}

// resolveItem finds the PO line an intake is recorded against, by serial
// number when given, by device model otherwise.
func (s *ProcurementService) resolveItem(order *procurement.PurchaseOrder, req IntakeRequest) (*procurement.POItem, error) {
	if req.SlNo > 0 {
		return order.FindItem(req.SlNo)
	}
	for idx := range order.Items {
		if strings.EqualFold(order.Items[idx].Model, req.DeviceModel) {
			return &order.Items[idx], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND",
		fmt.Sprintf("Purchase order %s has no line item for model %s", order.PONumber, req.DeviceModel))
}
