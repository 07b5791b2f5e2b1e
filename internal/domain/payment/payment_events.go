package payment

import (
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePayment = "Payment"

// Event type constant
const EventTypePaymentRecorded = "PaymentRecorded"

// PaymentRecordedEvent is raised when a ledger entry is appended
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	PaymentType PaymentType     `json:"payment_type"`
	PONumber    string          `json:"po_number"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PaymentType:     p.PaymentType,
		PONumber:        p.PONumber,
		Amount:          p.Amount,
	}
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return EventTypePaymentRecorded
}
