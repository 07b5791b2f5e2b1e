package procurement

import (
	"testing"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItemInput() NewPOItemInput {
	return NewPOItemInput{
		SlNo:     1,
		Vendor:   "Acme Traders",
		Location: "Chennai",
		Brand:    "Apple",
		Model:    "iPhone 15",
		Storage:  "128GB",
		Colour:   "Black",
		Qty:      10,
		Rate:     decimal.NewFromInt(50000),
		POValue:  decimal.NewFromInt(500000),
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates order in draft state", func(t *testing.T) {
		order, err := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "urgent")
		require.NoError(t, err)

		assert.Equal(t, "PO-2026-00001", order.PONumber)
		assert.Equal(t, ApprovalStatusDraft, order.ApprovalStatus)
		assert.Nil(t, order.DecidedAt)
		assert.Empty(t, order.Items)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderCreated, events[0].EventType())
	})

	t.Run("rejects empty PO number", func(t *testing.T) {
		_, err := NewPurchaseOrder("", time.Now(), "Nova Chennai", "")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("rejects empty purchase office", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO-2026-00001", time.Now(), "", "")
		require.Error(t, err)
	})

	t.Run("defaults zero date to now", func(t *testing.T) {
		order, err := NewPurchaseOrder("PO-2026-00002", time.Time{}, "Magnova Mumbai", "")
		require.NoError(t, err)
		assert.False(t, order.PODate.IsZero())
	})
}

func TestPurchaseOrderAddItem(t *testing.T) {
	t.Run("adds a valid line item", func(t *testing.T) {
		order, err := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		require.NoError(t, err)

		item, err := order.AddItem(validItemInput())
		require.NoError(t, err)

		assert.Equal(t, order.ID, item.PurchaseOrderID)
		assert.Equal(t, 10, item.Qty)
		assert.Equal(t, 0, item.ProcuredQty)
		assert.Equal(t, 0, item.ShippedQty)
		assert.Len(t, order.Items, 1)
	})

	t.Run("rejects mismatched PO value", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")

		in := validItemInput()
		in.POValue = decimal.NewFromInt(499999)
		_, err := order.AddItem(in)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")

		in := validItemInput()
		in.Qty = 0
		in.POValue = decimal.Zero
		_, err := order.AddItem(in)
		require.Error(t, err)
	})

	t.Run("assigns serial number when omitted", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")

		in := validItemInput()
		in.SlNo = 0
		item, err := order.AddItem(in)
		require.NoError(t, err)
		assert.Equal(t, 1, item.SlNo)
	})

	t.Run("rejects items on a decided order", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		require.NoError(t, order.Decide(ApprovalActionApprove))

		_, err := order.AddItem(validItemInput())
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})
}

func TestPurchaseOrderDecide(t *testing.T) {
	t.Run("approve stamps decided time", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		order.ClearDomainEvents()

		err := order.Decide("approve")
		require.NoError(t, err)

		assert.Equal(t, ApprovalStatusApproved, order.ApprovalStatus)
		assert.True(t, order.IsApproved())
		require.NotNil(t, order.DecidedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderDecided, events[0].EventType())
	})

	t.Run("reject is accepted case insensitively", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")

		err := order.Decide(" Reject ")
		require.NoError(t, err)
		assert.Equal(t, ApprovalStatusRejected, order.ApprovalStatus)
		assert.False(t, order.IsApproved())
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		require.NoError(t, order.Decide("approve"))

		err := order.Decide("reject")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, ApprovalStatusApproved, order.ApprovalStatus)
	})

	t.Run("unknown action is rejected without changing state", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")

		err := order.Decide("cancel")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		assert.Equal(t, ApprovalStatusDraft, order.ApprovalStatus)
		assert.Nil(t, order.DecidedAt)
	})
}

func TestPOItemCapacity(t *testing.T) {
	t.Run("procured count is capped at ordered quantity", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		in := validItemInput()
		in.Qty = 2
		in.POValue = decimal.NewFromInt(100000)
		item, err := order.AddItem(in)
		require.NoError(t, err)

		require.NoError(t, item.AddProcured())
		require.NoError(t, item.AddProcured())
		assert.Equal(t, 0, item.RemainingToProcure())

		err = item.AddProcured()
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
		assert.Equal(t, 2, item.ProcuredQty)
	})

	t.Run("shipped quantity cannot exceed unshipped remainder", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		item, err := order.AddItem(validItemInput())
		require.NoError(t, err)

		require.NoError(t, item.AddShipped(6))
		assert.Equal(t, 4, item.RemainingToShip())

		err = item.AddShipped(5)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
		assert.Equal(t, 6, item.ShippedQty)

		require.NoError(t, item.AddShipped(4))
		assert.Equal(t, 0, item.RemainingToShip())
	})

	t.Run("zero pickup quantity is invalid", func(t *testing.T) {
		order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")
		item, err := order.AddItem(validItemInput())
		require.NoError(t, err)

		err = item.AddShipped(0)
		require.Error(t, err)
	})
}

func TestPurchaseOrderLookupsAndTotals(t *testing.T) {
	order, _ := NewPurchaseOrder("PO-2026-00001", time.Now(), "Nova Chennai", "")

	first := validItemInput()
	_, err := order.AddItem(first)
	require.NoError(t, err)

	second := validItemInput()
	second.SlNo = 2
	second.Brand = "Samsung"
	second.Model = "Galaxy S24"
	second.Qty = 5
	second.Rate = decimal.NewFromInt(40000)
	second.POValue = decimal.NewFromInt(200000)
	_, err = order.AddItem(second)
	require.NoError(t, err)

	t.Run("finds item by serial number", func(t *testing.T) {
		item, err := order.FindItem(2)
		require.NoError(t, err)
		assert.Equal(t, "Samsung", item.Brand)

		_, err = order.FindItem(9)
		require.Error(t, err)
	})

	t.Run("finds item by brand and model case insensitively", func(t *testing.T) {
		item, err := order.FindItemByBrandModel("apple", "IPHONE 15")
		require.NoError(t, err)
		assert.Equal(t, 1, item.SlNo)

		_, err = order.FindItemByBrandModel("Apple", "iPhone 12")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("totals aggregate across lines", func(t *testing.T) {
		assert.Equal(t, 15, order.TotalQty())
		assert.True(t, order.TotalValue().Equal(decimal.NewFromInt(700000)))
	})
}
