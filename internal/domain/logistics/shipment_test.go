package logistics

import (
	"testing"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipmentInput() NewShipmentInput {
	return NewShipmentInput{
		ShipmentNumber:  "SH-2026-00001",
		PONumber:        "PO-2026-00001",
		TransporterName: "BlueDart Logistics",
		VehicleNumber:   "TN01AB1234",
		FromLocation:    "Chennai Store",
		ToLocation:      "Mumbai Hub",
		PickupDate:      time.Now(),
		Brand:           "Apple",
		Model:           "iPhone 15",
		PickupQuantity:  5,
		IMEIList:        []string{"356938035643809", "356938035643810"},
		InitialStatus:   ShipmentStatusInTransit,
	}
}

func TestParseShipmentStatus(t *testing.T) {
	cases := map[string]ShipmentStatus{
		"pending":    ShipmentStatusPending,
		"In Transit": ShipmentStatusInTransit,
		"in_transit": ShipmentStatusInTransit,
		"DELIVERED":  ShipmentStatusDelivered,
		"cancelled":  ShipmentStatusCancelled,
		"canceled":   ShipmentStatusCancelled,
	}
	for input, expected := range cases {
		status, ok := ParseShipmentStatus(input)
		require.True(t, ok, input)
		assert.Equal(t, expected, status)
	}

	_, ok := ParseShipmentStatus("lost")
	assert.False(t, ok)
}

func TestNewShipment(t *testing.T) {
	t.Run("creates shipment with ordered units", func(t *testing.T) {
		shipment, err := NewShipment(validShipmentInput())
		require.NoError(t, err)

		assert.Equal(t, ShipmentStatusInTransit, shipment.Status)
		assert.Nil(t, shipment.ActualDelivery)
		assert.Equal(t, []string{"356938035643809", "356938035643810"}, shipment.IMEIList())
		assert.Equal(t, 1, shipment.Units[0].Position)
		assert.Equal(t, 2, shipment.Units[1].Position)

		events := shipment.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeShipmentCreated, events[0].EventType())
	})

	t.Run("allows empty IMEI list for quantity-only claims", func(t *testing.T) {
		in := validShipmentInput()
		in.IMEIList = nil
		shipment, err := NewShipment(in)
		require.NoError(t, err)
		assert.Empty(t, shipment.IMEIList())
	})

	t.Run("rejects IMEI list longer than pickup quantity", func(t *testing.T) {
		in := validShipmentInput()
		in.PickupQuantity = 1
		_, err := NewShipment(in)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("rejects non-positive pickup quantity", func(t *testing.T) {
		in := validShipmentInput()
		in.PickupQuantity = 0
		in.IMEIList = nil
		_, err := NewShipment(in)
		require.Error(t, err)
	})

	t.Run("rejects blank transporter", func(t *testing.T) {
		in := validShipmentInput()
		in.TransporterName = ""
		_, err := NewShipment(in)
		require.Error(t, err)
	})

	t.Run("rejects empty entries in the IMEI list", func(t *testing.T) {
		in := validShipmentInput()
		in.IMEIList = []string{"356938035643809", "  "}
		_, err := NewShipment(in)
		require.Error(t, err)
	})
}

func TestShipmentUpdateStatus(t *testing.T) {
	t.Run("delivered stamps actual delivery", func(t *testing.T) {
		shipment, err := NewShipment(validShipmentInput())
		require.NoError(t, err)
		shipment.ClearDomainEvents()

		err = shipment.UpdateStatus("Delivered")
		require.NoError(t, err)

		assert.Equal(t, ShipmentStatusDelivered, shipment.Status)
		require.NotNil(t, shipment.ActualDelivery)

		events := shipment.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*ShipmentStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, ShipmentStatusInTransit, changed.PreviousStatus)
		assert.Equal(t, ShipmentStatusDelivered, changed.NewStatus)
	})

	t.Run("leaving delivered keeps the delivery stamp", func(t *testing.T) {
		shipment, err := NewShipment(validShipmentInput())
		require.NoError(t, err)

		require.NoError(t, shipment.UpdateStatus("Delivered"))
		stamped := shipment.ActualDelivery
		require.NotNil(t, stamped)

		require.NoError(t, shipment.UpdateStatus("In Transit"))
		assert.Equal(t, ShipmentStatusInTransit, shipment.Status)
		assert.Equal(t, stamped, shipment.ActualDelivery)
	})

	t.Run("same status is idempotent", func(t *testing.T) {
		shipment, err := NewShipment(validShipmentInput())
		require.NoError(t, err)
		shipment.ClearDomainEvents()

		require.NoError(t, shipment.UpdateStatus("In Transit"))
		assert.Empty(t, shipment.GetDomainEvents())
	})

	t.Run("any state may move to any other", func(t *testing.T) {
		shipment, err := NewShipment(validShipmentInput())
		require.NoError(t, err)

		for _, status := range []string{"Cancelled", "Pending", "Delivered", "Pending"} {
			require.NoError(t, shipment.UpdateStatus(status))
		}
		assert.Equal(t, ShipmentStatusPending, shipment.Status)
		assert.NotNil(t, shipment.ActualDelivery)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		shipment, err := NewShipment(validShipmentInput())
		require.NoError(t, err)

		err = shipment.UpdateStatus("Lost")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		assert.Equal(t, ShipmentStatusInTransit, shipment.Status)
	})
}
