package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testInvoice() *Invoice {
	return &Invoice{
		InvoiceNumber: "INV-000001",
		TenantID:      "t1",
		Currency:      "ZAR",
		Discount:      20000,
		TaxRate:       15,
		RentalAmount:  150000,
		Items: []InvoicedItem{
			{ItemNumber: "i1", Description: "Water", Multiplier: 1, Amount: 60000},
			{ItemNumber: "i2", Description: "Parking", Multiplier: 2, Amount: 20000},
		},
	}
}

func TestInvoiceTotalAmount(t *testing.T) {
	inv := testInvoice()
	// 60000 + 2*20000 + 150000 rental
	assert.Equal(t, int64(250000), inv.TotalAmount())
}

func TestInvoiceTotalTaxesFloors(t *testing.T) {
	inv := &Invoice{
		TaxRate: 15,
		Items:   []InvoicedItem{{Multiplier: 1, Amount: 333}},
	}
	// 333 * 15 / 100 = 49.95 floors to 49
	assert.Equal(t, int64(49), inv.TotalTaxes())
}

func TestInvoiceAmountPayable(t *testing.T) {
	inv := testInvoice()
	total := inv.TotalAmount()
	taxes := inv.TotalTaxes()
	assert.Equal(t, int64(250000), total)
	assert.Equal(t, int64(37500), taxes)
	assert.Equal(t, total+taxes-inv.Discount, inv.AmountPayable())
	assert.Equal(t, int64(267500), inv.AmountPayable())
}

func TestInvoiceZeroTaxRate(t *testing.T) {
	inv := testInvoice()
	inv.TaxRate = 0
	assert.Equal(t, int64(0), inv.TotalTaxes())
	assert.Equal(t, inv.TotalAmount()-inv.Discount, inv.AmountPayable())
}

func TestInvoiceDaysRemaining(t *testing.T) {
	inv := &Invoice{DueDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)}

	now := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, 6, inv.DaysRemaining(now))

	// Overdue goes negative.
	late := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, -3, inv.DaysRemaining(late))
}

func TestInvoiceViewComputesTotals(t *testing.T) {
	inv := testInvoice()
	view := inv.View(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, inv.TotalAmount(), view.TotalAmount)
	assert.Equal(t, inv.TotalTaxes(), view.TotalTaxes)
	assert.Equal(t, inv.AmountPayable(), view.AmountPayable)
	assert.NotEmpty(t, view.Notes)
}
