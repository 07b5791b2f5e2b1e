package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"po_number":       true,
	"po_date":         true,
	"purchase_office": true,
	"approval_status": true,
}

// InventoryUnitSortFields contains allowed sort fields for inventory units
var InventoryUnitSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"imei":             true,
	"brand":            true,
	"device_model":     true,
	"status":           true,
	"current_location": true,
	"po_number":        true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"shipment_number": true,
	"po_number":       true,
	"pickup_date":     true,
	"status":          true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"payment_date": true,
	"po_number":    true,
	"amount":       true,
	"payment_type": true,
}
