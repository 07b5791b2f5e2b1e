package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/xuri/excelize/v2"
)

// Content type and filename hints for XLSX downloads
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// MasterReportData collects the full ledger state for the master export
type MasterReportData struct {
	Orders           []procurement.PurchaseOrder
	Units            []inventory.InventoryUnit
	Shipments        []logistics.Shipment
	InternalPayments []payment.Payment
	ExternalPayments []payment.Payment
}

// ExcelExporter renders ledger data as XLSX workbooks
type ExcelExporter struct{}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// MasterReport writes one sheet per ledger section into a single workbook
func (e *ExcelExporter) MasterReport(data MasterReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeOrdersSheet(f, "Purchase Orders", data.Orders); err != nil {
		return nil, err
	}
	if err := e.writeUnitsSheet(f, "Inventory", data.Units); err != nil {
		return nil, err
	}
	if err := e.writeShipmentsSheet(f, "Shipments", data.Shipments); err != nil {
		return nil, err
	}
	if err := e.writePaymentsSheet(f, "Internal Payments", data.InternalPayments, false); err != nil {
		return nil, err
	}
	if err := e.writePaymentsSheet(f, "External Payments", data.ExternalPayments, true); err != nil {
		return nil, err
	}

	// Drop the default sheet so the workbook opens on Purchase Orders
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	return e.bytes(f)
}

// InventoryReport writes the unit registry as a single-sheet workbook
func (e *ExcelExporter) InventoryReport(units []inventory.InventoryUnit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeUnitsSheet(f, "Inventory", units); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	return e.bytes(f)
}

// Filename returns a timestamped download name for a report
func Filename(report string) string {
	return fmt.Sprintf("%s_%s.xlsx", report, time.Now().Format("20060102_150405"))
}

func (e *ExcelExporter) bytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) newSheet(f *excelize.File, name string, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writeOrdersSheet(f *excelize.File, sheet string, orders []procurement.PurchaseOrder) error {
	headers := []string{
		"PO Number", "PO Date", "Purchase Office", "Status",
		"Sl No", "Vendor", "Location", "Brand", "Model", "Storage", "Colour",
		"Qty", "Rate", "PO Value", "Procured Qty", "Shipped Qty",
	}
	if err := e.newSheet(f, sheet, headers); err != nil {
		return err
	}

	row := 2
	for i := range orders {
		order := &orders[i]
		for j := range order.Items {
			item := &order.Items[j]
			values := []interface{}{
				order.PONumber,
				order.PODate.Format("2006-01-02"),
				order.PurchaseOffice,
				order.ApprovalStatus.String(),
				item.SlNo,
				item.Vendor,
				item.Location,
				item.Brand,
				item.Model,
				item.Storage,
				item.Colour,
				item.Qty,
				item.Rate.String(),
				item.POValue.String(),
				item.ProcuredQty,
				item.ShippedQty,
			}
			if err := e.writeRow(f, sheet, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func (e *ExcelExporter) writeUnitsSheet(f *excelize.File, sheet string, units []inventory.InventoryUnit) error {
	headers := []string{
		"IMEI", "Serial Number", "Brand", "Model", "Storage", "Colour",
		"PO Number", "Vendor", "Purchase Price", "Status", "Location", "Organization",
	}
	if err := e.newSheet(f, sheet, headers); err != nil {
		return err
	}

	for i := range units {
		unit := &units[i]
		values := []interface{}{
			unit.IMEI,
			unit.SerialNumber,
			unit.Brand,
			unit.DeviceModel,
			unit.Storage,
			unit.Colour,
			unit.PONumber,
			unit.VendorName,
			unit.PurchasePrice.String(),
			unit.Status.String(),
			unit.CurrentLocation,
			unit.CurrentOrganization.String(),
		}
		if err := e.writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writeShipmentsSheet(f *excelize.File, sheet string, shipments []logistics.Shipment) error {
	headers := []string{
		"Shipment Number", "PO Number", "Transporter", "Vehicle",
		"From", "To", "Pickup Date", "Expected Delivery", "Actual Delivery",
		"Brand", "Model", "Pickup Qty", "Status",
	}
	if err := e.newSheet(f, sheet, headers); err != nil {
		return err
	}

	for i := range shipments {
		s := &shipments[i]
		values := []interface{}{
			s.ShipmentNumber,
			s.PONumber,
			s.TransporterName,
			s.VehicleNumber,
			s.FromLocation,
			s.ToLocation,
			s.PickupDate.Format("2006-01-02"),
			formatDate(s.ExpectedDelivery),
			formatDate(s.ActualDelivery),
			s.Brand,
			s.Model,
			s.PickupQuantity,
			s.Status.String(),
		}
		if err := e.writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writePaymentsSheet(f *excelize.File, sheet string, payments []payment.Payment, external bool) error {
	var headers []string
	if external {
		headers = []string{
			"PO Number", "Payee Type", "Payee Name", "Payee Phone",
			"Account Number", "IFSC", "Location", "Mode", "Amount", "UTR Number", "Payment Date",
		}
	} else {
		headers = []string{
			"PO Number", "Payee Name", "Payee Account", "Payee Bank",
			"Mode", "Amount", "Transaction Ref", "Payment Date",
		}
	}
	if err := e.newSheet(f, sheet, headers); err != nil {
		return err
	}

	for i := range payments {
		p := &payments[i]
		var values []interface{}
		if external {
			values = []interface{}{
				p.PONumber, p.PayeeType, p.PayeeName, p.PayeePhone,
				p.AccountNumber, p.IFSCCode, p.Location, p.PaymentMode,
				p.Amount.String(), p.UTRNumber, p.PaymentDate.Format("2006-01-02"),
			}
		} else {
			values = []interface{}{
				p.PONumber, p.PayeeName, p.PayeeAccount, p.PayeeBank,
				p.PaymentMode, p.Amount.String(), p.TransactionRef, p.PaymentDate.Format("2006-01-02"),
			}
		}
		if err := e.writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
