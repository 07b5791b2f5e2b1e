package logistics

import (
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
)

// ShipmentStatus is the logistics state of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "Pending"
	ShipmentStatusInTransit ShipmentStatus = "In Transit"
	ShipmentStatusDelivered ShipmentStatus = "Delivered"
	ShipmentStatusCancelled ShipmentStatus = "Cancelled"
)

// IsValid checks if the status is a recognized ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusInTransit, ShipmentStatusDelivered, ShipmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// ParseShipmentStatus normalizes free-form input into a ShipmentStatus
func ParseShipmentStatus(s string) (ShipmentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return ShipmentStatusPending, true
	case "in transit", "in_transit":
		return ShipmentStatusInTransit, true
	case "delivered":
		return ShipmentStatusDelivered, true
	case "cancelled", "canceled":
		return ShipmentStatusCancelled, true
	}
	return "", false
}

// ShipmentUnit is one serialized unit carried by a shipment, kept in scan order
type ShipmentUnit struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	IMEI       string    `gorm:"type:varchar(30);not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentUnit) TableName() string {
	return "shipment_units"
}

// Shipment represents a transfer of units between locations.
// Units may be claimed by serial (IMEI list) or by bare quantity against
// a purchase order line.
type Shipment struct {
	shared.BaseAggregateRoot
	ShipmentNumber   string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	PONumber         string         `gorm:"type:varchar(50);not null;index"`
	TransporterName  string         `gorm:"type:varchar(200);not null"`
	VehicleNumber    string         `gorm:"type:varchar(50)"`
	FromLocation     string         `gorm:"type:varchar(200);not null"`
	ToLocation       string         `gorm:"type:varchar(200);not null"`
	PickupDate       time.Time      `gorm:"not null"`
	ExpectedDelivery *time.Time
	ActualDelivery   *time.Time
	Brand            string         `gorm:"type:varchar(100);not null"`
	Model            string         `gorm:"type:varchar(100);not null"`
	PickupQuantity   int            `gorm:"not null"`
	Status           ShipmentStatus `gorm:"type:varchar(20);not null;index"`
	Units            []ShipmentUnit `gorm:"foreignKey:ShipmentID;references:ID"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipmentInput carries the fields needed to create a shipment
type NewShipmentInput struct {
	ShipmentNumber   string
	PONumber         string
	TransporterName  string
	VehicleNumber    string
	FromLocation     string
	ToLocation       string
	PickupDate       time.Time
	ExpectedDelivery *time.Time
	Brand            string
	Model            string
	PickupQuantity   int
	IMEIList         []string
	InitialStatus    ShipmentStatus
}

// NewShipment creates a shipment in the configured initial status
func NewShipment(in NewShipmentInput) (*Shipment, error) {
	if in.ShipmentNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Shipment number cannot be empty")
	}
	if in.PONumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "PO number cannot be empty")
	}
	if in.TransporterName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Transporter name cannot be empty")
	}
	if in.FromLocation == "" || in.ToLocation == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "From and to locations cannot be empty")
	}
	if in.Brand == "" || in.Model == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Brand and model cannot be empty")
	}
	if in.PickupQuantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Pickup quantity must be positive")
	}
	if len(in.IMEIList) > in.PickupQuantity {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("IMEI list has %d entries but pickup quantity is %d", len(in.IMEIList), in.PickupQuantity))
	}
	if !in.InitialStatus.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown shipment status %q", in.InitialStatus))
	}
	if in.PickupDate.IsZero() {
		in.PickupDate = time.Now()
	}

	shipment := &Shipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShipmentNumber:    in.ShipmentNumber,
		PONumber:          in.PONumber,
		TransporterName:   in.TransporterName,
		VehicleNumber:     in.VehicleNumber,
		FromLocation:      in.FromLocation,
		ToLocation:        in.ToLocation,
		PickupDate:        in.PickupDate,
		ExpectedDelivery:  in.ExpectedDelivery,
		Brand:             in.Brand,
		Model:             in.Model,
		PickupQuantity:    in.PickupQuantity,
		Status:            in.InitialStatus,
		Units:             make([]ShipmentUnit, 0, len(in.IMEIList)),
	}

	now := time.Now()
	for idx, imei := range in.IMEIList {
		imei = strings.TrimSpace(imei)
		if imei == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "IMEI list cannot contain empty entries")
		}
		shipment.Units = append(shipment.Units, ShipmentUnit{
			ID:         uuid.New(),
			ShipmentID: shipment.ID,
			Position:   idx + 1,
			IMEI:       imei,
			CreatedAt:  now,
		})
	}

	shipment.AddDomainEvent(NewShipmentCreatedEvent(shipment))

	return shipment, nil
}

// IMEIList returns the carried IMEIs in scan order
func (s *Shipment) IMEIList() []string {
	imeis := make([]string, len(s.Units))
	for idx := range s.Units {
		imeis[idx] = s.Units[idx].IMEI
	}
	return imeis
}

// UpdateStatus applies an operator-driven status override.
// Any status may move to any other. Entering Delivered stamps the actual
// delivery time; leaving Delivered keeps the stamp as last-known evidence.
func (s *Shipment) UpdateStatus(newStatus string) error {
	status, ok := ParseShipmentStatus(newStatus)
	if !ok {
		return shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Unknown shipment status %q", newStatus))
	}

	if status == s.Status {
		return nil
	}

	previous := s.Status
	s.Status = status
	if status == ShipmentStatusDelivered {
		now := time.Now()
		s.ActualDelivery = &now
	}
	s.Touch()

	s.AddDomainEvent(NewShipmentStatusChangedEvent(s, previous))

	return nil
}
