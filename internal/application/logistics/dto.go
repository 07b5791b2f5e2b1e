package logistics

import (
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/google/uuid"
)

// CreateShipmentRequest represents a request to create a shipment
type CreateShipmentRequest struct {
	PONumber         string     `json:"po_number" binding:"required"`
	TransporterName  string     `json:"transporter_name" binding:"required"`
	VehicleNumber    string     `json:"vehicle_number"`
	FromLocation     string     `json:"from_location" binding:"required"`
	ToLocation       string     `json:"to_location" binding:"required"`
	PickupDate       *time.Time `json:"pickup_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Brand            string     `json:"brand" binding:"required"`
	Model            string     `json:"model" binding:"required"`
	PickupQuantity   int        `json:"pickup_quantity" binding:"required,min=1"`
	IMEIList         []string   `json:"imei_list"`
}

// UpdateStatusRequest represents an operator status override
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ShipmentListFilter represents filter options for the shipment list
type ShipmentListFilter struct {
	Search      string `form:"search"`
	Status      string `form:"status"`
	PONumber    string `form:"po_number"`
	Transporter string `form:"transporter"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID               uuid.UUID  `json:"shipment_id"`
	ShipmentNumber   string     `json:"shipment_number"`
	PONumber         string     `json:"po_number"`
	TransporterName  string     `json:"transporter_name"`
	VehicleNumber    string     `json:"vehicle_number,omitempty"`
	FromLocation     string     `json:"from_location"`
	ToLocation       string     `json:"to_location"`
	PickupDate       time.Time  `json:"pickup_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
	ActualDelivery   *time.Time `json:"actual_delivery,omitempty"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	PickupQuantity   int        `json:"pickup_quantity"`
	Status           string     `json:"status"`
	IMEIList         []string   `json:"imei_list"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToShipmentResponse converts a domain shipment to a response DTO
func ToShipmentResponse(shipment *logistics.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:               shipment.ID,
		ShipmentNumber:   shipment.ShipmentNumber,
		PONumber:         shipment.PONumber,
		TransporterName:  shipment.TransporterName,
		VehicleNumber:    shipment.VehicleNumber,
		FromLocation:     shipment.FromLocation,
		ToLocation:       shipment.ToLocation,
		PickupDate:       shipment.PickupDate,
		ExpectedDelivery: shipment.ExpectedDelivery,
		ActualDelivery:   shipment.ActualDelivery,
		Brand:            shipment.Brand,
		Model:            shipment.Model,
		PickupQuantity:   shipment.PickupQuantity,
		Status:           shipment.Status.String(),
		IMEIList:         shipment.IMEIList(),
		CreatedAt:        shipment.CreatedAt,
		UpdatedAt:        shipment.UpdatedAt,
	}
}

// ToShipmentResponses converts a slice of domain shipments
func ToShipmentResponses(shipments []logistics.Shipment) []ShipmentResponse {
	responses := make([]ShipmentResponse, 0, len(shipments))
	for idx := range shipments {
		responses = append(responses, ToShipmentResponse(&shipments[idx]))
	}
	return responses
}
