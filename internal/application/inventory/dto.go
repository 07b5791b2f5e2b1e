package inventory

import (
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScanRequest represents a scan action against one IMEI
type ScanRequest struct {
	IMEI                 string `json:"imei" binding:"required,imei"`
	Action               string `json:"action" binding:"required"`
	Location             string `json:"location" binding:"required"`
	Organization         string `json:"organization" binding:"required"`
	CustomerOrganization string `json:"customer_organization"`
}

// UnitListFilter represents filter options for the unit registry list
type UnitListFilter struct {
	Search       string `form:"search"`
	Status       string `form:"status"`
	Organization string `form:"organization"`
	Brand        string `form:"brand"`
	PONumber     string `form:"po_number"`
	Location     string `form:"location"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InventoryUnitResponse represents an inventory unit in API responses
type InventoryUnitResponse struct {
	ID                   uuid.UUID       `json:"id"`
	IMEI                 string          `json:"imei"`
	SerialNumber         string          `json:"serial_number,omitempty"`
	Brand                string          `json:"brand"`
	Model                string          `json:"model"`
	Storage              string          `json:"storage,omitempty"`
	Colour               string          `json:"colour,omitempty"`
	PONumber             string          `json:"po_number"`
	VendorName           string          `json:"vendor_name,omitempty"`
	PurchasePrice        decimal.Decimal `json:"purchase_price"`
	Status               string          `json:"status"`
	CurrentLocation      string          `json:"current_location"`
	CurrentOrganization  string          `json:"current_organization"`
	CustomerOrganization string          `json:"customer_organization,omitempty"`
	LastScannedAt        *time.Time      `json:"last_scanned_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToInventoryUnitResponse converts a domain unit to a response DTO
func ToInventoryUnitResponse(unit *inventory.InventoryUnit) InventoryUnitResponse {
	return InventoryUnitResponse{
		ID:                   unit.ID,
		IMEI:                 unit.IMEI,
		SerialNumber:         unit.SerialNumber,
		Brand:                unit.Brand,
		Model:                unit.DeviceModel,
		Storage:              unit.Storage,
		Colour:               unit.Colour,
		PONumber:             unit.PONumber,
		VendorName:           unit.VendorName,
		PurchasePrice:        unit.PurchasePrice,
		Status:               unit.Status.String(),
		CurrentLocation:      unit.CurrentLocation,
		CurrentOrganization:  unit.CurrentOrganization.String(),
		CustomerOrganization: unit.CustomerOrganization,
		LastScannedAt:        unit.LastScannedAt,
		CreatedAt:            unit.CreatedAt,
		UpdatedAt:            unit.UpdatedAt,
	}
}

// ToInventoryUnitResponses converts a slice of domain units
func ToInventoryUnitResponses(units []inventory.InventoryUnit) []InventoryUnitResponse {
	responses := make([]InventoryUnitResponse, 0, len(units))
	for idx := range units {
		responses = append(responses, ToInventoryUnitResponse(&units[idx]))
	}
	return responses
}
