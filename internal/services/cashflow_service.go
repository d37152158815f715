package services

import (
	"context"

	"rental-backend/internal/models"
)

// CashFlowStore is the read surface the aggregator needs from the ledger.
type CashFlowStore interface {
	ListByProperty(ctx context.Context, propertyID string) ([]*models.Payment, error)
	ListByProperties(ctx context.Context, propertyIDs []string) ([]*models.Payment, error)
}

// PropertyLister enumerates a company's properties.
type PropertyLister interface {
	ListCompanyProperties(ctx context.Context, companyID string) ([]*models.Property, error)
}

type CashFlowService struct {
	PaymentRepo CashFlowStore
	Directory   PropertyLister
}

func NewCashFlowService(paymentRepo CashFlowStore, directory PropertyLister) *CashFlowService {
	return &CashFlowService{PaymentRepo: paymentRepo, Directory: directory}
}

// MonthlyCashflow buckets one property's successful payments by calendar
// month.
func (s *CashFlowService) MonthlyCashflow(ctx context.Context, propertyID string) (map[int]*models.MonthlyCashFlow, error) {
	payments, err := s.PaymentRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	flow := &models.CashFlow{Payments: payments}
	return flow.Monthly(), nil
}

// CompanyMonthlyCashflow buckets a company's successful payments by
// calendar month across every property it owns.
func (s *CashFlowService) CompanyMonthlyCashflow(ctx context.Context, companyID string) (map[int]*models.MonthlyCashFlow, error) {
	flow, err := s.companyFlow(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return flow.Monthly(), nil
}

// CashflowByProperty buckets a company's successful payments by property.
func (s *CashFlowService) CashflowByProperty(ctx context.Context, companyID string) (map[string]*models.MonthlyCashFlow, error) {
	flow, err := s.companyFlow(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return flow.ByProperty(), nil
}

// CashflowByMonthAndProperty keeps both dimensions: property to month to
// total.
func (s *CashFlowService) CashflowByMonthAndProperty(ctx context.Context, companyID string) (map[string]map[int]int64, error) {
	flow, err := s.companyFlow(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return flow.ByMonthAndProperty(), nil
}

// TotalCashflow is the grand total over every property the company owns. It
// equals the sum over any of the partitions above.
func (s *CashFlowService) TotalCashflow(ctx context.Context, companyID string) (int64, error) {
	flow, err := s.companyFlow(ctx, companyID)
	if err != nil {
		return 0, err
	}
	return flow.Total(), nil
}

func (s *CashFlowService) companyFlow(ctx context.Context, companyID string) (*models.CashFlow, error) {
	properties, err := s.Directory.ListCompanyProperties(ctx, companyID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.PropertyID)
	}
	payments, err := s.PaymentRepo.ListByProperties(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &models.CashFlow{Payments: payments}, nil
}
