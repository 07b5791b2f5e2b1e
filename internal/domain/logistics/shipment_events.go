package logistics

import (
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeShipment = "Shipment"

// Event type constants
const (
	EventTypeShipmentCreated       = "ShipmentCreated"
	EventTypeShipmentStatusChanged = "ShipmentStatusChanged"
)

// ShipmentCreatedEvent is raised when a new shipment is created
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	ShipmentID     uuid.UUID      `json:"shipment_id"`
	ShipmentNumber string         `json:"shipment_number"`
	PONumber       string         `json:"po_number"`
	PickupQuantity int            `json:"pickup_quantity"`
	Status         ShipmentStatus `json:"status"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(shipment *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCreated, AggregateTypeShipment, shipment.ID),
		ShipmentID:      shipment.ID,
		ShipmentNumber:  shipment.ShipmentNumber,
		PONumber:        shipment.PONumber,
		PickupQuantity:  shipment.PickupQuantity,
		Status:          shipment.Status,
	}
}

// EventType returns the event type name
func (e *ShipmentCreatedEvent) EventType() string {
	return EventTypeShipmentCreated
}

// ShipmentStatusChangedEvent is raised on every status override
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	ShipmentID     uuid.UUID      `json:"shipment_id"`
	ShipmentNumber string         `json:"shipment_number"`
	PreviousStatus ShipmentStatus `json:"previous_status"`
	NewStatus      ShipmentStatus `json:"new_status"`
}

// NewShipmentStatusChangedEvent creates a new ShipmentStatusChangedEvent
func NewShipmentStatusChangedEvent(shipment *Shipment, previous ShipmentStatus) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentStatusChanged, AggregateTypeShipment, shipment.ID),
		ShipmentID:      shipment.ID,
		ShipmentNumber:  shipment.ShipmentNumber,
		PreviousStatus:  previous,
		NewStatus:       shipment.Status,
	}
}

// EventType returns the event type name
func (e *ShipmentStatusChangedEvent) EventType() string {
	return EventTypeShipmentStatusChanged
}
