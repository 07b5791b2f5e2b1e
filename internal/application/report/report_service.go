package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/cache"
	"github.com/21501a05b6/Magnova/internal/infrastructure/export"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardCacheKey is where the serialized dashboard counters live
const DashboardCacheKey = "dashboard:counters"

// exportPageSize bounds one repository page while assembling a workbook
const exportPageSize = 500

// DashboardResponse carries the aggregate counters shown on the dashboard
type DashboardResponse struct {
	TotalPOs           int64           `json:"total_pos"`
	TotalProcurement   int64           `json:"total_procurement"`
	TotalInventory     int64           `json:"total_inventory"`
	AvailableInventory int64           `json:"available_inventory"`
	TotalSales         int64           `json:"total_sales"`
	TotalPaymentAmount decimal.Decimal `json:"total_payment_amount"`
}

// ReportService derives read-only aggregates and workbook exports
type ReportService struct {
	orderRepo    procurement.PurchaseOrderRepository
	unitRepo     inventory.InventoryUnitRepository
	shipmentRepo logistics.ShipmentRepository
	paymentRepo  payment.PaymentRepository
	exporter     *export.ExcelExporter
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewReportService creates a new ReportService. cache may be nil to
// disable dashboard caching.
func NewReportService(
	orderRepo procurement.PurchaseOrderRepository,
	unitRepo inventory.InventoryUnitRepository,
	shipmentRepo logistics.ShipmentRepository,
	paymentRepo payment.PaymentRepository,
	exporter *export.ExcelExporter,
	dashboardCache cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		orderRepo:    orderRepo,
		unitRepo:     unitRepo,
		shipmentRepo: shipmentRepo,
		paymentRepo:  paymentRepo,
		exporter:     exporter,
		cache:        dashboardCache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Dashboard returns the aggregate counters, serving from cache when fresh
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, DashboardCacheKey); err == nil && ok {
			var cached DashboardResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	response, err := s.computeDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, DashboardCacheKey, string(raw), s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache dashboard counters", zap.Error(err))
			}
		}
	}

	return response, nil
}

func (s *ReportService) computeDashboard(ctx context.Context) (*DashboardResponse, error) {
	emptyFilter := shared.Filter{Filters: map[string]interface{}{}}

	totalPOs, err := s.orderRepo.Count(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}
	totalUnits, err := s.unitRepo.Count(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}
	available, err := s.unitRepo.CountByStatus(ctx, inventory.UnitStatusAvailable)
	if err != nil {
		return nil, err
	}
	dispatched, err := s.unitRepo.CountByStatus(ctx, inventory.UnitStatusDispatched)
	if err != nil {
		return nil, err
	}
	totalPayments, err := s.paymentRepo.SumAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalPOs:           totalPOs,
		TotalProcurement:   totalUnits,
		TotalInventory:     totalUnits - dispatched,
		AvailableInventory: available,
		TotalSales:         dispatched,
		TotalPaymentAmount: totalPayments,
	}, nil
}

// ExportMaster builds the full five-section ledger workbook
func (s *ReportService) ExportMaster(ctx context.Context) ([]byte, string, error) {
	orders, err := s.collectOrders(ctx)
	if err != nil {
		return nil, "", err
	}
	units, err := s.collectUnits(ctx)
	if err != nil {
		return nil, "", err
	}
	shipments, err := s.collectShipments(ctx)
	if err != nil {
		return nil, "", err
	}
	internal, external, err := s.collectPayments(ctx)
	if err != nil {
		return nil, "", err
	}

	raw, err := s.exporter.MasterReport(export.MasterReportData{
		Orders:           orders,
		Units:            units,
		Shipments:        shipments,
		InternalPayments: internal,
		ExternalPayments: external,
	})
	if err != nil {
		return nil, "", err
	}

	return raw, export.Filename("master_report"), nil
}

// ExportInventory builds the unit registry workbook
func (s *ReportService) ExportInventory(ctx context.Context) ([]byte, string, error) {
	units, err := s.collectUnits(ctx)
	if err != nil {
		return nil, "", err
	}

	raw, err := s.exporter.InventoryReport(units)
	if err != nil {
		return nil, "", err
	}

	return raw, export.Filename("inventory_report"), nil
}

func exportFilter(page int) shared.Filter {
	return shared.Filter{
		Page:     page,
		PageSize: exportPageSize,
		OrderBy:  "created_at",
		OrderDir: "asc",
		Filters:  map[string]interface{}{},
	}
}

func (s *ReportService) collectOrders(ctx context.Context) ([]procurement.PurchaseOrder, error) {
	var all []procurement.PurchaseOrder
	for page := 1; ; page++ {
		batch, err := s.orderRepo.FindAll(ctx, exportFilter(page))
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize {
			return all, nil
		}
	}
}

func (s *ReportService) collectUnits(ctx context.Context) ([]inventory.InventoryUnit, error) {
	var all []inventory.InventoryUnit
	for page := 1; ; page++ {
		batch, err := s.unitRepo.FindAll(ctx, exportFilter(page))
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize {
			return all, nil
		}
	}
}

func (s *ReportService) collectShipments(ctx context.Context) ([]logistics.Shipment, error) {
	var all []logistics.Shipment
	for page := 1; ; page++ {
		batch, err := s.shipmentRepo.FindAll(ctx, exportFilter(page))
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportPageSize {
			return all, nil
		}
	}
}

func (s *ReportService) collectPayments(ctx context.Context) (internal, external []payment.Payment, err error) {
	for page := 1; ; page++ {
		batch, err := s.paymentRepo.FindAll(ctx, exportFilter(page))
		if err != nil {
			return nil, nil, err
		}
		for idx := range batch {
			if batch[idx].IsInternal() {
				internal = append(internal, batch[idx])
			} else {
				external = append(external, batch[idx])
			}
		}
		if len(batch) < exportPageSize {
			return internal, external, nil
		}
	}
}
