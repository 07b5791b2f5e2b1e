package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the approval state of a purchase order
type ApprovalStatus string

const (
	ApprovalStatusDraft    ApprovalStatus = "Draft"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

// IsValid checks if the status is a recognized ApprovalStatus
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusDraft, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// IsDecided returns true once the order has been approved or rejected
func (s ApprovalStatus) IsDecided() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// String returns the string representation of ApprovalStatus
func (s ApprovalStatus) String() string {
	return string(s)
}

// Approval actions accepted by Decide
const (
	ApprovalActionApprove = "approve"
	ApprovalActionReject  = "reject"
)

// POItem represents a line item in a purchase order.
// IMEIs are absent at order time; serialized units are attached only at
// procurement intake.
type POItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SlNo            int             `gorm:"not null"`
	Vendor          string          `gorm:"type:varchar(200);not null"`
	Location        string          `gorm:"type:varchar(200)"`
	Brand           string          `gorm:"type:varchar(100);not null"`
	Model           string          `gorm:"type:varchar(100);not null"`
	Storage         string          `gorm:"type:varchar(50)"`
	Colour          string          `gorm:"type:varchar(50)"`
	Qty             int             `gorm:"not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	POValue         decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Qty * Rate
	ProcuredQty     int             `gorm:"not null;default:0"`          // Units intaken against this line
	ShippedQty      int             `gorm:"not null;default:0"`          // Quantity claimed by shipments
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (POItem) TableName() string {
	return "po_items"
}

// NewPOItemInput carries the fields needed to add a line item
type NewPOItemInput struct {
	SlNo     int
	Vendor   string
	Location string
	Brand    string
	Model    string
	Storage  string
	Colour   string
	Qty      int
	Rate     decimal.Decimal
	POValue  decimal.Decimal
}

func newPOItem(orderID uuid.UUID, in NewPOItemInput) (*POItem, error) {
	if in.Vendor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Vendor cannot be empty")
	}
	if in.Brand == "" || in.Model == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Brand and model cannot be empty")
	}
	if in.Qty <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if in.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Rate must be positive")
	}
	expected := in.Rate.Mul(decimal.NewFromInt(int64(in.Qty)))
	if !in.POValue.Equal(expected) {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("PO value %s does not equal qty x rate (%s)", in.POValue.String(), expected.String()))
	}

	now := time.Now()
	return &POItem{
		ID:              uuid.New(),
		PurchaseOrderID: orderID,
		SlNo:            in.SlNo,
		Vendor:          in.Vendor,
		Location:        in.Location,
		Brand:           in.Brand,
		Model:           in.Model,
		Storage:         in.Storage,
		Colour:          in.Colour,
		Qty:             in.Qty,
		Rate:            in.Rate,
		POValue:         in.POValue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// RemainingToProcure returns how many units may still be intaken for this line
func (i *POItem) RemainingToProcure() int {
	remaining := i.Qty - i.ProcuredQty
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingToShip returns the still-unshipped quantity for this line
func (i *POItem) RemainingToShip() int {
	remaining := i.Qty - i.ShippedQty
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AddProcured increments the procured-unit counter for this line
func (i *POItem) AddProcured() error {
	if i.ProcuredQty >= i.Qty {
		return shared.NewDomainError("CAPACITY_EXCEEDED",
			fmt.Sprintf("All %d ordered units for %s %s have already been procured", i.Qty, i.Brand, i.Model))
	}
	i.ProcuredQty++
	i.UpdatedAt = time.Now()
	return nil
}

// AddShipped claims quantity from this line for a shipment
func (i *POItem) AddShipped(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Pickup quantity must be positive")
	}
	if qty > i.RemainingToShip() {
		return shared.NewDomainError("CAPACITY_EXCEEDED",
			fmt.Sprintf("Pickup quantity %d exceeds unshipped quantity %d for %s %s", qty, i.RemainingToShip(), i.Brand, i.Model))
	}
	i.ShippedQty += qty
	i.UpdatedAt = time.Now()
	return nil
}

// PurchaseOrder represents a purchase order aggregate root.
// It is the source of truth for ordered quantity, unit rate and approval
// state; items are immutable once the order is decided.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber       string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	PODate         time.Time      `gorm:"not null"`
	PurchaseOffice string         `gorm:"type:varchar(200);not null"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'Draft';index"`
	Items          []POItem       `gorm:"foreignKey:PurchaseOrderID;references:ID"`
	Notes          string         `gorm:"type:text"`
	DecidedAt      *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in Draft state
func NewPurchaseOrder(poNumber string, poDate time.Time, purchaseOffice, notes string) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "PO number cannot be empty")
	}
	if purchaseOffice == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase office cannot be empty")
	}
	if poDate.IsZero() {
		poDate = time.Now()
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		PODate:            poDate,
		PurchaseOffice:    purchaseOffice,
		ApprovalStatus:    ApprovalStatusDraft,
		Items:             make([]POItem, 0),
		Notes:             notes,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line item to the order. Items can only be added while
// the order is still a draft.
func (o *PurchaseOrder) AddItem(in NewPOItemInput) (*POItem, error) {
	if o.ApprovalStatus.IsDecided() {
		return nil, shared.NewDomainError("CONFLICT", "Cannot modify items of a decided purchase order")
	}

	item, err := newPOItem(o.ID, in)
	if err != nil {
		return nil, err
	}
	if item.SlNo == 0 {
		item.SlNo = len(o.Items) + 1
	}

	o.Items = append(o.Items, *item)
	o.Touch()

	return &o.Items[len(o.Items)-1], nil
}

// Decide applies an approval action ("approve" or "reject") exactly once
func (o *PurchaseOrder) Decide(action string) error {
	if o.ApprovalStatus.IsDecided() {
		return shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Purchase order %s has already been %s", o.PONumber, strings.ToLower(o.ApprovalStatus.String())))
	}

	switch strings.ToLower(strings.TrimSpace(action)) {
	case ApprovalActionApprove:
		o.ApprovalStatus = ApprovalStatusApproved
	case ApprovalActionReject:
		o.ApprovalStatus = ApprovalStatusRejected
	default:
		return shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown approval action %q, expected approve or reject", action))
	}

	now := time.Now()
	o.DecidedAt = &now
	o.Touch()
	o.AddDomainEvent(NewPurchaseOrderDecidedEvent(o))

	return nil
}

// IsApproved returns true if procurement and payments may reference this order
func (o *PurchaseOrder) IsApproved() bool {
	return o.ApprovalStatus == ApprovalStatusApproved
}

// FindItem returns the line item with the given serial number
func (o *PurchaseOrder) FindItem(slNo int) (*POItem, error) {
	for idx := range o.Items {
		if o.Items[idx].SlNo == slNo {
			return &o.Items[idx], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND",
		fmt.Sprintf("Purchase order %s has no line item %d", o.PONumber, slNo))
}

// FindItemByBrandModel returns the line item matching brand and model
func (o *PurchaseOrder) FindItemByBrandModel(brand, model string) (*POItem, error) {
	for idx := range o.Items {
		if strings.EqualFold(o.Items[idx].Brand, brand) && strings.EqualFold(o.Items[idx].Model, model) {
			return &o.Items[idx], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND",
		fmt.Sprintf("Purchase order %s has no line item for %s %s", o.PONumber, brand, model))
}

// TotalValue returns the sum of all line item values
func (o *PurchaseOrder) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].POValue)
	}
	return total
}

// TotalQty returns the sum of ordered quantities across lines
func (o *PurchaseOrder) TotalQty() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].Qty
	}
	return total
}
