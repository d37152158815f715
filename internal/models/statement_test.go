package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementBalance(t *testing.T) {
	s := &Statement{
		Invoices: []*Invoice{
			{TaxRate: 0, Items: []InvoicedItem{{Multiplier: 1, Amount: 100000}}},
			{TaxRate: 0, Items: []InvoicedItem{{Multiplier: 1, Amount: 50000}}},
		},
		Payments: []*Payment{
			{AmountPaid: 60000},
			{AmountPaid: 30000},
		},
	}

	assert.Equal(t, int64(150000), s.TotalInvoiced())
	assert.Equal(t, int64(90000), s.TotalPayments())
	assert.Equal(t, int64(60000), s.Balance())
}

func TestStatementBalanceCanGoNegative(t *testing.T) {
	s := &Statement{
		Payments: []*Payment{{AmountPaid: 25000}},
	}
	assert.Equal(t, int64(-25000), s.Balance())
}

func TestStatementViewComputesTotals(t *testing.T) {
	s := &Statement{
		Invoices: []*Invoice{{TaxRate: 0, Items: []InvoicedItem{{Multiplier: 2, Amount: 1000}}}},
		Payments: []*Payment{{AmountPaid: 500}},
	}
	view := s.View()
	assert.Equal(t, int64(2000), view.TotalInvoiced)
	assert.Equal(t, int64(500), view.TotalPayments)
	assert.Equal(t, int64(1500), view.Balance)
}
