package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestOrder(t *testing.T) procurement.PurchaseOrder {
	t.Helper()

	order, err := procurement.NewPurchaseOrder("PO-2026-00001", time.Now(), "Magnova Chennai", "")
	require.NoError(t, err)
	_, err = order.AddItem(procurement.NewPOItemInput{
		Vendor:  "Acme Traders",
		Brand:   "Apple",
		Model:   "iPhone 15",
		Storage: "128GB",
		Colour:  "Black",
		Qty:     10,
		Rate:    decimal.NewFromInt(50000),
		POValue: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)
	return *order
}

func newTestUnit(t *testing.T, imei string) inventory.InventoryUnit {
	t.Helper()

	unit, err := inventory.NewInventoryUnit(inventory.NewUnitInput{
		IMEI:          imei,
		DeviceModel:   "iPhone 15",
		Brand:         "Apple",
		PONumber:      "PO-2026-00001",
		VendorName:    "Acme Traders",
		PurchasePrice: decimal.NewFromInt(50000),
		StoreLocation: "Chennai Store",
		Organization:  inventory.OrganizationNova,
	})
	require.NoError(t, err)
	return *unit
}

func newTestShipment(t *testing.T) logistics.Shipment {
	t.Helper()

	shipment, err := logistics.NewShipment(logistics.NewShipmentInput{
		ShipmentNumber:  "SH-2026-00001",
		PONumber:        "PO-2026-00001",
		TransporterName: "BlueDart Logistics",
		FromLocation:    "Chennai Store",
		ToLocation:      "Mumbai Hub",
		PickupDate:      time.Now(),
		Brand:           "Apple",
		Model:           "iPhone 15",
		PickupQuantity:  2,
		IMEIList:        []string{"356938035643809"},
		InitialStatus:   logistics.ShipmentStatusInTransit,
	})
	require.NoError(t, err)
	return *shipment
}

func TestExcelExporter_MasterReport(t *testing.T) {
	exporter := NewExcelExporter()

	internal, err := payment.NewInternalPayment(payment.NewInternalPaymentInput{
		PONumber:       "PO-2026-00001",
		PayeeName:      "Acme Traders",
		PaymentMode:    "NEFT",
		Amount:         decimal.NewFromInt(500000),
		TransactionRef: "TXN-1",
		PaymentDate:    time.Now(),
	})
	require.NoError(t, err)

	external, err := payment.NewExternalPayment(payment.NewExternalPaymentInput{
		PONumber:    "PO-2026-00001",
		PayeeType:   "vendor",
		PayeeName:   "Acme Traders",
		PaymentMode: "IMPS",
		Amount:      decimal.NewFromInt(100000),
		UTRNumber:   "UTR-1",
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)

	data := MasterReportData{
		Orders:           []procurement.PurchaseOrder{newTestOrder(t)},
		Units:            []inventory.InventoryUnit{newTestUnit(t, "356938035643809")},
		Shipments:        []logistics.Shipment{newTestShipment(t)},
		InternalPayments: []payment.Payment{*internal},
		ExternalPayments: []payment.Payment{*external},
	}

	raw, err := exporter.MasterReport(data)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		"Purchase Orders", "Inventory", "Shipments", "Internal Payments", "External Payments",
	}, f.GetSheetList())

	poNumber, err := f.GetCellValue("Purchase Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "PO-2026-00001", poNumber)

	vendor, err := f.GetCellValue("Purchase Orders", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", vendor)

	imei, err := f.GetCellValue("Inventory", "A2")
	require.NoError(t, err)
	assert.Equal(t, "356938035643809", imei)

	status, err := f.GetCellValue("Shipments", "M2")
	require.NoError(t, err)
	assert.Equal(t, "In Transit", status)

	utr, err := f.GetCellValue("External Payments", "J2")
	require.NoError(t, err)
	assert.Equal(t, "UTR-1", utr)
}

func TestExcelExporter_InventoryReport(t *testing.T) {
	exporter := NewExcelExporter()

	units := []inventory.InventoryUnit{
		newTestUnit(t, "356938035643809"),
		newTestUnit(t, "356938035643810"),
	}

	raw, err := exporter.InventoryReport(units)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Inventory"}, f.GetSheetList())

	header, err := f.GetCellValue("Inventory", "A1")
	require.NoError(t, err)
	assert.Equal(t, "IMEI", header)

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFilename(t *testing.T) {
	name := Filename("master_report")
	assert.Contains(t, name, "master_report_")
	assert.Contains(t, name, ".xlsx")
}
