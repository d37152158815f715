package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"rental-backend/internal/timeutil"
)

// DocumentService renders invoices and statements as PDF documents.
type DocumentService struct {
	InvoiceSvc   *InvoiceService
	StatementSvc *StatementService
}

func NewDocumentService(invoiceSvc *InvoiceService, statementSvc *StatementService) *DocumentService {
	return &DocumentService{InvoiceSvc: invoiceSvc, StatementSvc: statementSvc}
}

func formatMoney(currency string, amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, amount/100, amount%100)
}

// RenderInvoice produces the printable invoice document.
func (s *DocumentService) RenderInvoice(ctx context.Context, invoiceNumber string) ([]byte, error) {
	invoice, err := s.InvoiceSvc.GetInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	now := timeutil.Now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", now.Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Parties
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("From: %s", invoice.ServiceName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("To: %s", invoice.Customer.Name), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Issued: %s", invoice.DateIssued.Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Due: %s", invoice.DueDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, invoice.Description, "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line items
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Subtotal", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		description := item.Description
		if len(description) > 40 {
			description = description[:37] + "..."
		}
		pdf.CellFormat(80, 6, description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Multiplier), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, formatMoney(invoice.Currency, item.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, formatMoney(invoice.Currency, item.SubTotal()), "1", 1, "R", false, 0, "")
	}
	if invoice.RentalAmount > 0 {
		pdf.CellFormat(80, 6, "Monthly rental", "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, "1", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, formatMoney(invoice.Currency, invoice.RentalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, formatMoney(invoice.Currency, invoice.RentalAmount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Totals", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, "Total", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(invoice.Currency, invoice.TotalAmount()), "RB", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Tax (%d%%)", invoice.TaxRate), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(invoice.Currency, invoice.TotalTaxes()), "RB", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Discount", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(invoice.Currency, invoice.Discount), "RB", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, "Amount payable", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(invoice.Currency, invoice.AmountPayable()), "RB", 1, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(190, 5, invoice.Notes(now), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderStatement produces the printable monthly statement.
func (s *DocumentService) RenderStatement(ctx context.Context, tenantID string, year, month int) ([]byte, error) {
	statement, err := s.StatementSvc.CreateMonthStatement(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}
	currency := ""
	if statement.Company != nil {
		currency = statement.Company.Currency
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Statement %d", statement.StatementNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s to %s",
		statement.PeriodStart.Format("02-Jan-2006"),
		statement.PeriodEnd.AddDate(0, 0, -1).Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Account", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Tenant: %s", statement.Customer.Name), "LB", 0, "L", false, 0, "")
	if statement.Company != nil {
		pdf.CellFormat(95, 7, fmt.Sprintf("Company: %s", statement.Company.CompanyName), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 7, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Invoices due in the period
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Invoice", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 7, "Due", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 7, "Payable", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, inv := range statement.Invoices {
		pdf.CellFormat(60, 6, inv.InvoiceNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 6, inv.DueDate.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(65, 6, formatMoney(inv.Currency, inv.AmountPayable()), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Payments received in the period
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Payment", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 7, "Amount", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, p := range statement.Payments {
		pdf.CellFormat(60, 6, p.TransactionID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 6, p.DatePaid.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(65, 6, formatMoney(currency, p.AmountPaid), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, "Total invoiced", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(currency, statement.TotalInvoiced()), "RB", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Total payments", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(currency, statement.TotalPayments()), "RB", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, "Balance", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, formatMoney(currency, statement.Balance()), "RB", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}
