package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusInvoice() *Invoice {
	return &Invoice{
		InvoiceNumber: "INV-000010",
		TaxRate:       0,
		Items:         []InvoicedItem{{Multiplier: 1, Amount: 100000}},
	}
}

func TestPaymentStatusUnpaid(t *testing.T) {
	inv := statusInvoice()
	assert.Equal(t, Unpaid, GetPaymentStatus(inv, nil))

	// Failed payments never count.
	payments := []*Payment{{InvoiceNumber: "INV-000010", AmountPaid: 100000, IsSuccessful: false}}
	assert.Equal(t, Unpaid, GetPaymentStatus(inv, payments))
}

func TestPaymentStatusPartiallyPaid(t *testing.T) {
	inv := statusInvoice()
	payments := []*Payment{
		{InvoiceNumber: "INV-000010", AmountPaid: 40000, IsSuccessful: true},
		{InvoiceNumber: "INV-000010", AmountPaid: 10000, IsSuccessful: true},
	}
	assert.Equal(t, PartiallyPaid, GetPaymentStatus(inv, payments))
}

func TestPaymentStatusFullyPaid(t *testing.T) {
	inv := statusInvoice()
	payments := []*Payment{
		{InvoiceNumber: "INV-000010", AmountPaid: 60000, IsSuccessful: true},
		{InvoiceNumber: "INV-000010", AmountPaid: 40000, IsSuccessful: true},
	}
	assert.Equal(t, FullyPaid, GetPaymentStatus(inv, payments))

	// Overpayment is still fully paid.
	payments = append(payments, &Payment{InvoiceNumber: "INV-000010", AmountPaid: 5000, IsSuccessful: true})
	assert.Equal(t, FullyPaid, GetPaymentStatus(inv, payments))
}

func TestPaymentStatusIgnoresOtherInvoices(t *testing.T) {
	inv := statusInvoice()
	payments := []*Payment{
		{InvoiceNumber: "INV-000099", AmountPaid: 100000, IsSuccessful: true},
	}
	assert.Equal(t, Unpaid, GetPaymentStatus(inv, payments))
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("1200")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), amount)

	amount, err = ParseAmount("1,250,000")
	require.NoError(t, err)
	assert.Equal(t, int64(1250000), amount)

	amount, err = ParseAmount("  42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), amount)
}

func TestParseAmountRejectsOverflow(t *testing.T) {
	// Largest int64 is 19 digits; anything past it must not wrap negative.
	amount, err := ParseAmount("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), amount)

	for _, input := range []string{"9223372036854775808", "99999999999999999999"} {
		_, err := ParseAmount(input)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "input %q", input)
	}
}

func TestParseAmountRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "  ", "-100", "12.50", "abc", "1 000"} {
		_, err := ParseAmount(input)
		require.Error(t, err, "input %q", input)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
}
