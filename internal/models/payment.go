package models

import (
	"math"
	"strings"
	"time"
)

// PaymentStatus is derived from an invoice and its payments, never stored.
type PaymentStatus string

const (
	Unpaid        PaymentStatus = "UNPAID"
	PartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	FullyPaid     PaymentStatus = "FULLY_PAID"
)

// Payment is a recorded transfer applied against an invoice.
type Payment struct {
	TransactionID string    `json:"transaction_id"`
	InvoiceNumber string    `json:"invoice_number"`
	TenantID      string    `json:"tenant_id"`
	PropertyID    string    `json:"property_id"`
	UnitID        string    `json:"unit_id"`
	AmountPaid    int64     `json:"amount_paid"`
	DatePaid      time.Time `json:"date_paid"`
	PaymentMethod string    `json:"payment_method"`
	IsSuccessful  bool      `json:"is_successful"`
	Month         int       `json:"month"`
	Comments      string    `json:"comments"`
}

type RecordPaymentRequest struct {
	InvoiceNumber string `json:"invoice_number" validate:"required"`
	TenantID      string `json:"tenant_id" validate:"required"`
	PropertyID    string `json:"property_id" validate:"required"`
	UnitID        string `json:"unit_id" validate:"required"`
	AmountPaid    string `json:"amount_paid" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	Comments      string `json:"comments"`
	IsSuccessful  bool   `json:"is_successful"`
}

// UpdatePaymentRequest rewrites the mutable subset of a payment. The
// transaction id and invoice number never change.
type UpdatePaymentRequest struct {
	AmountPaid   *int64  `json:"amount_paid" validate:"omitempty,gte=0"`
	Comments     *string `json:"comments"`
	IsSuccessful *bool   `json:"is_successful"`
}

// GetPaymentStatus sums the successful payments referencing the invoice and
// compares the total against the amount payable.
func GetPaymentStatus(inv *Invoice, payments []*Payment) PaymentStatus {
	var paid int64
	for _, p := range payments {
		if p.IsSuccessful && p.InvoiceNumber == inv.InvoiceNumber {
			paid += p.AmountPaid
		}
	}
	payable := inv.AmountPayable()
	switch {
	case paid >= payable:
		return FullyPaid
	case paid > 0:
		return PartiallyPaid
	default:
		return Unpaid
	}
}

// ParseAmount normalizes a monetary input in minor units. Comma grouping is
// accepted ("1,200" reads as 1200); negative and fractional amounts are not.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, &ValidationError{Field: "amount_paid", Message: "amount is required"}
	}
	var amount int64
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0, &ValidationError{Field: "amount_paid", Message: "amount must be a non-negative integer in minor units"}
		}
		if amount > (math.MaxInt64-int64(r-'0'))/10 {
			return 0, &ValidationError{Field: "amount_paid", Message: "amount is too large"}
		}
		amount = amount*10 + int64(r-'0')
	}
	return amount, nil
}
