package procurement

import (
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated = "PurchaseOrderCreated"
	EventTypePurchaseOrderDecided = "PurchaseOrderDecided"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	PONumber       string          `json:"po_number"`
	PurchaseOffice string          `json:"purchase_office"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		PurchaseOffice:  order.PurchaseOffice,
		TotalValue:      order.TotalValue(),
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return EventTypePurchaseOrderCreated
}

// PurchaseOrderDecidedEvent is raised when an order is approved or rejected
type PurchaseOrderDecidedEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID      `json:"order_id"`
	PONumber string         `json:"po_number"`
	Status   ApprovalStatus `json:"status"`
}

// NewPurchaseOrderDecidedEvent creates a new PurchaseOrderDecidedEvent
func NewPurchaseOrderDecidedEvent(order *PurchaseOrder) *PurchaseOrderDecidedEvent {
	return &PurchaseOrderDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderDecided, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		Status:          order.ApprovalStatus,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderDecidedEvent) EventType() string {
	return EventTypePurchaseOrderDecided
}
