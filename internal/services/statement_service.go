package services

import (
	"context"

	"github.com/google/uuid"

	"rental-backend/internal/models"
	"rental-backend/internal/timeutil"
)

type StatementService struct {
	InvoiceRepo InvoiceStore
	PaymentRepo PaymentStore
	Directory   DirectoryStore
}

func NewStatementService(invoiceRepo InvoiceStore, paymentRepo PaymentStore, directory DirectoryStore) *StatementService {
	return &StatementService{InvoiceRepo: invoiceRepo, PaymentRepo: paymentRepo, Directory: directory}
}

// CreateMonthStatement assembles a tenant's statement for one calendar
// month. Invoices enter by due date, payments by date paid. The issuing
// company is resolved through the property of the first payment in the
// window, so a month with no payments carries no company block.
func (s *StatementService) CreateMonthStatement(ctx context.Context, tenantID string, year, month int) (*models.Statement, error) {
	if month < 1 || month > 12 {
		return nil, &models.ValidationError{Field: "month", Message: "month must be between 1 and 12"}
	}
	start, end := timeutil.MonthWindow(year, month)

	statement := &models.Statement{
		StatementID:     uuid.NewString(),
		StatementNumber: year*100 + month,
		TenantID:        tenantID,
		Year:            year,
		Month:           month,
		PeriodStart:     start,
		PeriodEnd:       end,
	}

	tenant, err := s.Directory.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	statement.Customer = &models.Customer{
		TenantID: tenant.TenantID,
		Name:     tenant.Name,
		Email:    tenant.Email,
		Cell:     tenant.Cell,
	}

	invoices, err := s.InvoiceRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if !inv.DueDate.Before(start) && inv.DueDate.Before(end) {
			statement.Invoices = append(statement.Invoices, inv)
		}
	}

	payments, err := s.PaymentRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if !p.DatePaid.Before(start) && p.DatePaid.Before(end) {
			statement.Payments = append(statement.Payments, p)
		}
	}

	if len(statement.Payments) > 0 {
		property, err := s.Directory.GetProperty(ctx, statement.Payments[0].PropertyID)
		if err == nil {
			if company, err := s.Directory.GetCompany(ctx, property.CompanyID); err == nil {
				statement.Company = company
			}
		}
	}
	return statement, nil
}

// CreateAllStatements walks an inclusive year range and returns one
// statement per calendar month, empty months included, so a tenant's
// history always spans the full range.
func (s *StatementService) CreateAllStatements(ctx context.Context, tenantID string, startYear, endYear int) ([]*models.Statement, error) {
	if endYear < startYear {
		return nil, &models.ValidationError{Field: "end_year", Message: "end year precedes start year"}
	}
	var statements []*models.Statement
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			statement, err := s.CreateMonthStatement(ctx, tenantID, year, month)
			if err != nil {
				return nil, err
			}
			statements = append(statements, statement)
		}
	}
	return statements, nil
}
