package models

import "time"

// Statement is a read-only aggregate of a tenant's invoices and payments for
// one (year, month) window. Computed on demand, never persisted.
type Statement struct {
	StatementID     string     `json:"statement_id"`
	StatementNumber int        `json:"statement_number"`
	TenantID        string     `json:"tenant_id"`
	Year            int        `json:"year"`
	Month           int        `json:"month"`
	PeriodStart     time.Time  `json:"period_start"`
	PeriodEnd       time.Time  `json:"period_end"`
	Company         *Company   `json:"company,omitempty"`
	Customer        *Customer  `json:"customer,omitempty"`
	Invoices        []*Invoice `json:"invoices"`
	Payments        []*Payment `json:"payments"`
}

// TotalInvoiced sums the amount payable of every invoice due in the window.
func (s *Statement) TotalInvoiced() int64 {
	var total int64
	for _, inv := range s.Invoices {
		total += inv.AmountPayable()
	}
	return total
}

// TotalPayments sums every payment dated in the window.
func (s *Statement) TotalPayments() int64 {
	var total int64
	for _, p := range s.Payments {
		total += p.AmountPaid
	}
	return total
}

func (s *Statement) Balance() int64 {
	return s.TotalInvoiced() - s.TotalPayments()
}

// StatementView is the serializable statement with totals computed.
type StatementView struct {
	Statement
	TotalInvoiced int64 `json:"total_invoiced"`
	TotalPayments int64 `json:"total_payments"`
	Balance       int64 `json:"balance"`
}

func (s *Statement) View() *StatementView {
	return &StatementView{
		Statement:     *s,
		TotalInvoiced: s.TotalInvoiced(),
		TotalPayments: s.TotalPayments(),
		Balance:       s.Balance(),
	}
}

type StatementRequest struct {
	TenantID string `json:"tenant_id" validate:"required"`
	Year     int    `json:"year" validate:"required"`
	Month    int    `json:"month" validate:"required,gte=1,lte=12"`
}

type StatementRangeRequest struct {
	TenantID  string `json:"tenant_id" validate:"required"`
	StartYear int    `json:"start_year" validate:"required"`
	EndYear   int    `json:"end_year" validate:"required,gtefield=StartYear"`
}
