package inventory

import (
	"github.com/21501a05b6/Magnova/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryUnit = "InventoryUnit"

// Event type constants
const (
	EventTypeUnitProcured = "InventoryUnitProcured"
	EventTypeUnitScanned  = "InventoryUnitScanned"
)

// UnitProcuredEvent is raised when a unit is registered at intake
type UnitProcuredEvent struct {
	shared.BaseDomainEvent
	IMEI         string       `json:"imei"`
	PONumber     string       `json:"po_number"`
	DeviceModel  string       `json:"device_model"`
	Organization Organization `json:"organization"`
}

// NewUnitProcuredEvent creates a new UnitProcuredEvent
func NewUnitProcuredEvent(unit *InventoryUnit) *UnitProcuredEvent {
	return &UnitProcuredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitProcured, AggregateTypeInventoryUnit, unit.ID),
		IMEI:            unit.IMEI,
		PONumber:        unit.PONumber,
		DeviceModel:     unit.DeviceModel,
		Organization:    unit.CurrentOrganization,
	}
}

// EventType returns the event type name
func (e *UnitProcuredEvent) EventType() string {
	return EventTypeUnitProcured
}

// UnitScannedEvent is raised when a scan action changes a unit's custody state
type UnitScannedEvent struct {
	shared.BaseDomainEvent
	IMEI           string     `json:"imei"`
	Action         ScanAction `json:"action"`
	PreviousStatus UnitStatus `json:"previous_status"`
	NewStatus      UnitStatus `json:"new_status"`
	Location       string     `json:"location"`
}

// NewUnitScannedEvent creates a new UnitScannedEvent
func NewUnitScannedEvent(unit *InventoryUnit, action ScanAction, previous UnitStatus) *UnitScannedEvent {
	return &UnitScannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitScanned, AggregateTypeInventoryUnit, unit.ID),
		IMEI:            unit.IMEI,
		Action:          action,
		PreviousStatus:  previous,
		NewStatus:       unit.Status,
		Location:        unit.CurrentLocation,
	}
}

// EventType returns the event type name
func (e *UnitScannedEvent) EventType() string {
	return EventTypeUnitScanned
}
