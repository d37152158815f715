package models

import (
	"fmt"
	"time"
)

// Customer is the billed party snapshot carried on invoices and statements.
type Customer struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Cell     string `json:"cell"`
}

// InvoicedItem is a denormalized snapshot of a billable item at the moment a
// charge was consumed into an invoice. Later catalog edits never alter it.
type InvoicedItem struct {
	PropertyID  string `json:"property_id"`
	ItemNumber  string `json:"item_number"`
	Description string `json:"description"`
	Multiplier  int    `json:"multiplier"`
	Amount      int64  `json:"amount"`
}

func (i InvoicedItem) SubTotal() int64 {
	return i.Amount * int64(i.Multiplier)
}

// Invoice is a billing document. Financial inputs (items, rental amount,
// discount, tax rate) are stored; every total is derived on demand so a stale
// cached figure can never be served.
type Invoice struct {
	InvoiceNumber  string         `json:"invoice_number"`
	TenantID       string         `json:"tenant_id"`
	ServiceName    string         `json:"service_name"`
	Description    string         `json:"description"`
	Currency       string         `json:"currency"`
	Customer       Customer       `json:"customer"`
	Discount       int64          `json:"discount"`
	TaxRate        int            `json:"tax_rate"`
	DateIssued     time.Time      `json:"date_issued"`
	DueDate        time.Time      `json:"due_date"`
	Month          string         `json:"month"`
	RentalAmount   int64          `json:"rental_amount"`
	ChargeIDs      []string       `json:"charge_ids"`
	Items          []InvoicedItem `json:"invoice_items"`
	InvoiceSent    bool           `json:"invoice_sent"`
	InvoicePrinted bool           `json:"invoice_printed"`
}

// TotalAmount is the sum of item subtotals plus the rental amount.
func (inv *Invoice) TotalAmount() int64 {
	var total int64
	for _, item := range inv.Items {
		total += item.SubTotal()
	}
	return total + inv.RentalAmount
}

// TotalTaxes is TotalAmount taxed at TaxRate percent, floored to minor units.
func (inv *Invoice) TotalTaxes() int64 {
	return inv.TotalAmount() * int64(inv.TaxRate) / 100
}

// AmountPayable is the figure the tenant owes: total plus taxes minus discount.
func (inv *Invoice) AmountPayable() int64 {
	return inv.TotalAmount() + inv.TotalTaxes() - inv.Discount
}

// DaysRemaining is the number of whole days between now and the due date.
// Negative once the invoice is overdue.
func (inv *Invoice) DaysRemaining(now time.Time) int {
	due := time.Date(inv.DueDate.Year(), inv.DueDate.Month(), inv.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// Notes is the payment-terms blurb printed on the invoice document.
func (inv *Invoice) Notes(now time.Time) string {
	return fmt.Sprintf("Thank you for your business! Payment is expected within %d days; "+
		"please process this invoice within that time. "+
		"There will be a 5%% interest charge per month on late invoices.",
		inv.DaysRemaining(now))
}

// InvoiceView is the serializable form of an invoice with every derived total
// computed fresh at render time.
type InvoiceView struct {
	Invoice
	TotalAmount   int64  `json:"total_amount"`
	TotalTaxes    int64  `json:"total_taxes"`
	AmountPayable int64  `json:"amount_payable"`
	DaysRemaining int    `json:"days_remaining"`
	Notes         string `json:"notes"`
}

func (inv *Invoice) View(now time.Time) *InvoiceView {
	return &InvoiceView{
		Invoice:       *inv,
		TotalAmount:   inv.TotalAmount(),
		TotalTaxes:    inv.TotalTaxes(),
		AmountPayable: inv.AmountPayable(),
		DaysRemaining: inv.DaysRemaining(now),
		Notes:         inv.Notes(now),
	}
}

// CreateInvoiceRequest is the input to invoice creation: a charge selection,
// an optional unit for rent, and an optional due-date override in days.
type CreateInvoiceRequest struct {
	ChargeIDs     []string `json:"charge_ids"`
	UnitID        string   `json:"unit_id"`
	IncludeRental bool     `json:"include_rental"`
	DueAfter      *int     `json:"due_after"`
	Discount      int64    `json:"discount" validate:"gte=0"`
	TaxRate       *int     `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
}

// InvoiceUpdate carries the administrative edits allowed on an issued
// invoice. Only display text and the tax rate may change; the charge
// selection is never re-opened.
type InvoiceUpdate struct {
	ServiceName *string `json:"service_name"`
	Description *string `json:"description"`
	Currency    *string `json:"currency"`
	TaxRate     *int    `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
}
