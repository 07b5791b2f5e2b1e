package procurement

import (
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POItemRequest represents one line item in a purchase order draft
type POItemRequest struct {
	SlNo     int             `json:"sl_no"`
	Vendor   string          `json:"vendor" binding:"required"`
	Location string          `json:"location"`
	Brand    string          `json:"brand" binding:"required"`
	Model    string          `json:"model" binding:"required"`
	Storage  string          `json:"storage"`
	Colour   string          `json:"colour"`
	Qty      int             `json:"qty" binding:"required"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	POValue  decimal.Decimal `json:"po_value" binding:"required"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	PONumber       string          `json:"po_number"`
	PODate         *time.Time      `json:"po_date"`
	PurchaseOffice string          `json:"purchase_office" binding:"required"`
	Notes          string          `json:"notes"`
	Items          []POItemRequest `json:"items" binding:"required,min=1,dive"`
}

// DecideRequest represents an approval decision on a purchase order
type DecideRequest struct {
	Action string `json:"action" binding:"required"`
}

// IntakeRequest represents a request to register a procured unit
type IntakeRequest struct {
	PONumber      string          `json:"po_number" binding:"required"`
	SlNo          int             `json:"sl_no"`
	IMEI          string          `json:"imei" binding:"required,imei"`
	SerialNumber  string          `json:"serial_number"`
	DeviceModel   string          `json:"device_model" binding:"required"`
	VendorName    string          `json:"vendor_name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	StoreLocation string          `json:"store_location" binding:"required"`
}

// PurchaseOrderListFilter represents filter options for the purchase order list
type PurchaseOrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// POItemResponse represents a purchase order line item in API responses
type POItemResponse struct {
	SlNo        int             `json:"sl_no"`
	Vendor      string          `json:"vendor"`
	Location    string          `json:"location"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Storage     string          `json:"storage"`
	Colour      string          `json:"colour"`
	Qty         int             `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	POValue     decimal.Decimal `json:"po_value"`
	ProcuredQty int             `json:"procured_qty"`
	ShippedQty  int             `json:"shipped_qty"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID             uuid.UUID        `json:"id"`
	PONumber       string           `json:"po_number"`
	PODate         time.Time        `json:"po_date"`
	PurchaseOffice string           `json:"purchase_office"`
	ApprovalStatus string           `json:"approval_status"`
	Notes          string           `json:"notes,omitempty"`
	DecidedAt      *time.Time       `json:"decided_at,omitempty"`
	TotalQty       int              `json:"total_qty"`
	TotalValue     decimal.Decimal  `json:"total_value"`
	Items          []POItemResponse `json:"items"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProcuredUnitResponse represents the inventory unit created by an intake
type ProcuredUnitResponse struct {
	ID                  uuid.UUID       `json:"id"`
	IMEI                string          `json:"imei"`
	SerialNumber        string          `json:"serial_number,omitempty"`
	DeviceModel         string          `json:"device_model"`
	Brand               string          `json:"brand"`
	Storage             string          `json:"storage,omitempty"`
	Colour              string          `json:"colour,omitempty"`
	PONumber            string          `json:"po_number"`
	VendorName          string          `json:"vendor_name"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	Status              string          `json:"status"`
	CurrentLocation     string          `json:"current_location"`
	CurrentOrganization string          `json:"current_organization"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]POItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		item := &order.Items[idx]
		items = append(items, POItemResponse{
			SlNo:        item.SlNo,
			Vendor:      item.Vendor,
			Location:    item.Location,
			Brand:       item.Brand,
			Model:       item.Model,
			Storage:     item.Storage,
			Colour:      item.Colour,
			Qty:         item.Qty,
			Rate:        item.Rate,
			POValue:     item.POValue,
			ProcuredQty: item.ProcuredQty,
			ShippedQty:  item.ShippedQty,
		})
	}

	return PurchaseOrderResponse{
		ID:             order.ID,
		PONumber:       order.PONumber,
		PODate:         order.PODate,
		PurchaseOffice: order.PurchaseOffice,
		ApprovalStatus: order.ApprovalStatus.String(),
		Notes:          order.Notes,
		DecidedAt:      order.DecidedAt,
		TotalQty:       order.TotalQty(),
		TotalValue:     order.TotalValue(),
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// ToPurchaseOrderResponses converts a slice of purchase orders
func ToPurchaseOrderResponses(orders []procurement.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[idx]))
	}
	return responses
}

// ToProcuredUnitResponse converts a domain inventory unit to an intake response
func ToProcuredUnitResponse(unit *inventory.InventoryUnit) ProcuredUnitResponse {
	return ProcuredUnitResponse{
		ID:                  unit.ID,
		IMEI:                unit.IMEI,
		SerialNumber:        unit.SerialNumber,
		DeviceModel:         unit.DeviceModel,
		Brand:               unit.Brand,
		Storage:             unit.Storage,
		Colour:              unit.Colour,
		PONumber:            unit.PONumber,
		VendorName:          unit.VendorName,
		PurchasePrice:       unit.PurchasePrice,
		Status:              unit.Status.String(),
		CurrentLocation:     unit.CurrentLocation,
		CurrentOrganization: unit.CurrentOrganization.String(),
		CreatedAt:           unit.CreatedAt,
	}
}
