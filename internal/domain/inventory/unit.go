package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitStatus is the custody state of an inventory unit
type UnitStatus string

const (
	UnitStatusAvailable      UnitStatus = "Available"
	UnitStatusInwardNova     UnitStatus = "Inward Nova"
	UnitStatusInwardMagnova  UnitStatus = "Inward Magnova"
	UnitStatusOutwardNova    UnitStatus = "Outward Nova"
	UnitStatusOutwardMagnova UnitStatus = "Outward Magnova"
	UnitStatusDispatched     UnitStatus = "Dispatched"
)

// String returns the string representation of UnitStatus
func (s UnitStatus) String() string {
	return string(s)
}

// ScanAction is one of the six recognized scan actions
type ScanAction string

const (
	ScanActionAvailable      ScanAction = "available"
	ScanActionInwardNova     ScanAction = "inward_nova"
	ScanActionInwardMagnova  ScanAction = "inward_magnova"
	ScanActionOutwardNova    ScanAction = "outward_nova"
	ScanActionOutwardMagnova ScanAction = "outward_magnova"
	ScanActionDispatch       ScanAction = "dispatch"
)

// scanTransitions maps each action to the status label it produces.
// Any action is valid from any current state; custody tracking records
// what the operator scanned, it does not police sequencing.
var scanTransitions = map[ScanAction]UnitStatus{
	ScanActionAvailable:      UnitStatusAvailable,
	ScanActionInwardNova:     UnitStatusInwardNova,
	ScanActionInwardMagnova:  UnitStatusInwardMagnova,
	ScanActionOutwardNova:    UnitStatusOutwardNova,
	ScanActionOutwardMagnova: UnitStatusOutwardMagnova,
	ScanActionDispatch:       UnitStatusDispatched,
}

// ResolveScanAction parses an action string and returns its target status
func ResolveScanAction(action string) (ScanAction, UnitStatus, error) {
	a := ScanAction(strings.ToLower(strings.TrimSpace(action)))
	status, ok := scanTransitions[a]
	if !ok {
		return "", "", shared.NewDomainError("INVALID_ACTION",
			fmt.Sprintf("Unrecognized scan action %q", action))
	}
	return a, status, nil
}

// ScanInput carries the fields every scan action requires
type ScanInput struct {
	Action               string
	Location             string
	Organization         string
	CustomerOrganization string
}

// InventoryUnit represents one physical device tracked by IMEI.
// Units are created at procurement intake and never deleted; scans and
// shipment linkage are the only mutations.
type InventoryUnit struct {
	shared.BaseAggregateRoot
	IMEI                 string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	SerialNumber         string          `gorm:"type:varchar(100)"`
	DeviceModel          string          `gorm:"type:varchar(100);not null"`
	Brand                string          `gorm:"type:varchar(100);not null"`
	Storage              string          `gorm:"type:varchar(50)"`
	Colour               string          `gorm:"type:varchar(50)"`
	PONumber             string          `gorm:"type:varchar(50);not null;index"`
	VendorName           string          `gorm:"type:varchar(200)"`
	PurchasePrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status               UnitStatus      `gorm:"type:varchar(30);not null;default:'Available';index"`
	CurrentLocation      string          `gorm:"type:varchar(200)"`
	CurrentOrganization  Organization    `gorm:"type:varchar(20);not null;index"`
	CustomerOrganization string          `gorm:"type:varchar(100)"`
	ShipmentID           *uuid.UUID      `gorm:"type:uuid;index"`
	LastScannedAt        *time.Time
}

// TableName returns the table name for GORM
func (InventoryUnit) TableName() string {
	return "inventory_units"
}

// NewUnitInput carries the fields needed to register a unit at intake
type NewUnitInput struct {
	IMEI          string
	SerialNumber  string
	DeviceModel   string
	Brand         string
	Storage       string
	Colour        string
	PONumber      string
	VendorName    string
	PurchasePrice decimal.Decimal
	StoreLocation string
	Organization  Organization
}

// NewInventoryUnit registers a unit freshly procured against a purchase order
func NewInventoryUnit(in NewUnitInput) (*InventoryUnit, error) {
	if strings.TrimSpace(in.IMEI) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "IMEI cannot be empty")
	}
	if in.DeviceModel == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Device model cannot be empty")
	}
	if in.PONumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "PO number cannot be empty")
	}
	if in.PurchasePrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase price cannot be negative")
	}
	if !in.Organization.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown organization %q", in.Organization))
	}

	unit := &InventoryUnit{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		IMEI:                strings.TrimSpace(in.IMEI),
		SerialNumber:        in.SerialNumber,
		DeviceModel:         in.DeviceModel,
		Brand:               in.Brand,
		Storage:             in.Storage,
		Colour:              in.Colour,
		PONumber:            in.PONumber,
		VendorName:          in.VendorName,
		PurchasePrice:       in.PurchasePrice,
		Status:              UnitStatusAvailable,
		CurrentLocation:     in.StoreLocation,
		CurrentOrganization: in.Organization,
	}

	unit.AddDomainEvent(NewUnitProcuredEvent(unit))

	return unit, nil
}

// ApplyScan applies a scan action, moving the unit to the action's target
// status and recording the supplied location and organizations.
func (u *InventoryUnit) ApplyScan(in ScanInput) error {
	action, target, err := ResolveScanAction(in.Action)
	if err != nil {
		return err
	}
	if in.Location == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Scan location cannot be empty")
	}
	org, ok := ParseOrganization(in.Organization)
	if !ok {
		return shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown organization %q", in.Organization))
	}
	if in.CustomerOrganization == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer organization cannot be empty")
	}

	previous := u.Status
	u.Status = target
	u.CurrentLocation = in.Location
	u.CurrentOrganization = org
	u.CustomerOrganization = in.CustomerOrganization
	now := time.Now()
	u.LastScannedAt = &now
	u.Touch()

	u.AddDomainEvent(NewUnitScannedEvent(u, action, previous))

	return nil
}

// AttachToShipment links the unit to the shipment that carries it
func (u *InventoryUnit) AttachToShipment(shipmentID uuid.UUID) {
	u.ShipmentID = &shipmentID
	u.Touch()
}
