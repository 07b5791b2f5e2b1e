package inventory

import (
	"context"
	"strings"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
)

// InventoryService handles scan and registry lookup operations
type InventoryService struct {
	unitRepo       inventory.InventoryUnitRepository
	locks          *locking.KeyedMutex
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(unitRepo inventory.InventoryUnitRepository, locks *locking.KeyedMutex) *InventoryService {
	return &InventoryService{
		unitRepo: unitRepo,
		locks:    locks,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Scan applies one of the six scan actions to a unit. Concurrent scans of
// the same IMEI are serialized; scans of different IMEIs run independently.
func (s *InventoryService) Scan(ctx context.Context, req ScanRequest) (*InventoryUnitResponse, error) {
	// Reject unknown actions before touching the registry so a bad action
	// against a missing IMEI still reads as a client error.
	if _, _, err := inventory.ResolveScanAction(req.Action); err != nil {
		return nil, err
	}

	imei := strings.TrimSpace(req.IMEI)

	release, err := s.locks.Acquire(ctx, locking.IMEIKey(imei))
	if err != nil {
		return nil, err
	}
	defer release()

	unit, err := s.unitRepo.FindByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}

	if err := unit.ApplyScan(inventory.ScanInput{
		Action:               req.Action,
		Location:             req.Location,
		Organization:         req.Organization,
		CustomerOrganization: req.CustomerOrganization,
	}); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, unit.GetDomainEvents()...)
		unit.ClearDomainEvents()
	}

	response := ToInventoryUnitResponse(unit)
	return &response, nil
}

// GetByIMEI retrieves one unit from the registry
func (s *InventoryService) GetByIMEI(ctx context.Context, imei string) (*InventoryUnitResponse, error) {
	unit, err := s.unitRepo.FindByIMEI(ctx, strings.TrimSpace(imei))
	if err != nil {
		return nil, err
	}
	response := ToInventoryUnitResponse(unit)
	return &response, nil
}

// List retrieves registry units with filtering and pagination
func (s *InventoryService) List(ctx context.Context, filter UnitListFilter) ([]InventoryUnitResponse, int64, error) {
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
	if filter.Organization != "" {
		domainFilter.Filters["organization"] = filter.Organization
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}
	if filter.PONumber != "" {
		domainFilter.Filters["po_number"] = filter.PONumber
	}
	if filter.Location != "" {
		domainFilter.Filters["location"] = filter.Location
	}

	units, err := s.unitRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.unitRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInventoryUnitResponses(units), total, nil
}
