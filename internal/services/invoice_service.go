package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"rental-backend/internal/config"
	"rental-backend/internal/metrics"
	"rental-backend/internal/models"
	"rental-backend/internal/timeutil"
)

// InvoiceStore is the persistence surface for invoices. Create must be
// atomic: the invoice row, its item snapshots and the consumption of its
// charges commit or roll back together.
type InvoiceStore interface {
	NextInvoiceNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Get(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*models.Invoice, error)
	UpdateDetails(ctx context.Context, invoice *models.Invoice) error
	SetSent(ctx context.Context, invoiceNumber string) error
	SetPrinted(ctx context.Context, invoiceNumber string) error
	FindUnmarkedCharges(ctx context.Context) (map[string][]string, error)
	RecordTaxRateEdit(ctx context.Context, invoiceNumber string, oldRate, newRate int, oldPayable, newPayable int64, changedBy string) error
}

// DirectoryStore resolves the billing context around a unit.
type DirectoryStore interface {
	GetCompany(ctx context.Context, companyID string) (*models.Company, error)
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
	GetUnit(ctx context.Context, unitID string) (*models.Unit, error)
	GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error)
}

// ChargeMarker covers the reconciliation sweep for stores whose Create is
// not transactional.
type ChargeMarker interface {
	MarkInvoiced(ctx context.Context, chargeIDs []string) error
}

type InvoiceService struct {
	InvoiceRepo InvoiceStore
	ChargeRepo  ChargeStore
	ItemRepo    BillableItemStore
	Directory   DirectoryStore
	PaymentRepo PaymentStore
	Marker      ChargeMarker
	Config      *config.Config
}

func NewInvoiceService(invoiceRepo InvoiceStore, chargeRepo ChargeStore, itemRepo BillableItemStore, directory DirectoryStore, paymentRepo PaymentStore, marker ChargeMarker, cfg *config.Config) *InvoiceService {
	return &InvoiceService{
		InvoiceRepo: invoiceRepo,
		ChargeRepo:  chargeRepo,
		ItemRepo:    itemRepo,
		Directory:   directory,
		PaymentRepo: paymentRepo,
		Marker:      marker,
		Config:      cfg,
	}
}

// CalculateDueDate applies the payment-terms rule. An explicit dueAfter
// overrides everything: due is N days after issue. Otherwise invoices issued
// on or after the 7th fall due on the 7th of the next month; earlier issues
// fall due on the 7th of the same month.
func CalculateDueDate(issued time.Time, dueAfter *int) time.Time {
	if dueAfter != nil {
		return issued.AddDate(0, 0, *dueAfter)
	}
	year, month := issued.Year(), issued.Month()
	if issued.Day() >= 7 {
		if month == time.December {
			return time.Date(year+1, time.January, 7, 0, 0, 0, 0, issued.Location())
		}
		return time.Date(year, month+1, 7, 0, 0, 0, 0, issued.Location())
	}
	return time.Date(year, month, 7, 0, 0, 0, 0, issued.Location())
}

// CreateInvoice consumes the selected charges into a new invoice. The unit
// may be given explicitly or derived from the first charge. All charges must
// belong to the same unit and still be open; the whole operation is atomic,
// so a raced double submission leaves exactly one invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.Discount < 0 {
		return nil, &models.ValidationError{Field: "discount", Message: "discount must not be negative"}
	}

	var charges []*models.UnitCharge
	if len(req.ChargeIDs) > 0 {
		var err error
		charges, err = s.ChargeRepo.GetMany(ctx, req.ChargeIDs)
		if err != nil {
			return nil, err
		}
	}

	// The unit anchors the billing context; without one, the first charge
	// supplies it.
	unitID := req.UnitID
	if unitID == "" {
		if len(charges) == 0 {
			return nil, &models.MissingContextError{What: "no unit and no charges to derive the billing context from"}
		}
		unitID = charges[0].UnitID
	}
	if len(charges) == 0 && !req.IncludeRental {
		return nil, &models.ValidationError{Field: "charge_ids", Message: "an invoice needs at least one charge or the rental amount"}
	}

	unit, err := s.Directory.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit.TenantID == "" {
		return nil, &models.MissingContextError{What: fmt.Sprintf("unit %s has no tenant", unit.UnitID)}
	}
	tenant, err := s.Directory.GetTenant(ctx, unit.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Name == "" {
		return nil, &models.IncompleteDataError{Entity: "tenant", Field: "name"}
	}
	property, err := s.Directory.GetProperty(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	company, err := s.Directory.GetCompany(ctx, property.CompanyID)
	if err != nil {
		return nil, err
	}

	items := make([]models.InvoicedItem, 0, len(charges))
	for _, charge := range charges {
		if charge.IsInvoiced {
			return nil, &models.ValidationError{Field: "charge_ids", Message: fmt.Sprintf("charge %s is already invoiced", charge.ChargeID)}
		}
		if charge.UnitID != unit.UnitID {
			return nil, &models.ValidationError{Field: "charge_ids", Message: fmt.Sprintf("charge %s belongs to another unit", charge.ChargeID)}
		}
		// Snapshot the catalog entry so later edits never rewrite history.
		item, err := s.ItemRepo.Get(ctx, charge.ItemNumber)
		if err != nil {
			return nil, err
		}
		items = append(items, models.InvoicedItem{
			PropertyID:  charge.PropertyID,
			ItemNumber:  item.ItemNumber,
			Description: item.Description,
			Multiplier:  item.Multiplier,
			Amount:      charge.Amount,
		})
	}

	taxRate := s.Config.Billing.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	currency := company.Currency
	if currency == "" {
		currency = s.Config.Billing.DefaultCurrency
	}
	var rentalAmount int64
	if req.IncludeRental {
		rentalAmount = unit.RentalAmount
	}

	issued := timeutil.Today()
	number, err := s.InvoiceRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		InvoiceNumber: number,
		TenantID:      tenant.TenantID,
		ServiceName:   company.CompanyName,
		Description:   fmt.Sprintf("%s, unit %s", property.Name, unit.UnitNumber),
		Currency:      currency,
		Customer: models.Customer{
			TenantID: tenant.TenantID,
			Name:     tenant.Name,
			Email:    tenant.Email,
			Cell:     tenant.Cell,
		},
		Discount:     req.Discount,
		TaxRate:      taxRate,
		DateIssued:   issued,
		DueDate:      CalculateDueDate(issued, req.DueAfter),
		Month:        issued.Format("January 2006"),
		RentalAmount: rentalAmount,
		ChargeIDs:    req.ChargeIDs,
		Items:        items,
	}

	if err := s.InvoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	metrics.InvoicesIssued.Inc()
	log.Printf("[Invoice] issued %s for tenant %s (%d items, payable %d)",
		invoice.InvoiceNumber, invoice.TenantID, len(items), invoice.AmountPayable())
	return invoice, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, invoiceNumber)
}

func (s *InvoiceService) ListInvoices(ctx context.Context, tenantID string) ([]*models.Invoice, error) {
	return s.InvoiceRepo.ListByTenant(ctx, tenantID)
}

// UpdateInvoice applies the permitted edits. A tax-rate change on an invoice
// that is already fully paid is allowed but leaves an audit trail, since it
// silently changes what "paid in full" meant.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceNumber string, update *models.InvoiceUpdate, changedBy string) (*models.Invoice, error) {
	invoice, err := s.InvoiceRepo.Get(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	oldRate := invoice.TaxRate
	oldPayable := invoice.AmountPayable()

	if update.ServiceName != nil {
		invoice.ServiceName = *update.ServiceName
	}
	if update.Description != nil {
		invoice.Description = *update.Description
	}
	if update.Currency != nil {
		invoice.Currency = *update.Currency
	}

	// Settlement is judged against the payable the tenant actually paid,
	// so the check happens before the new rate takes effect.
	auditTaxEdit := false
	if update.TaxRate != nil && *update.TaxRate != oldRate {
		if *update.TaxRate < 0 || *update.TaxRate > 100 {
			return nil, &models.ValidationError{Field: "tax_rate", Message: "tax rate must be between 0 and 100"}
		}
		payments, err := s.PaymentRepo.ListByInvoice(ctx, invoiceNumber)
		if err != nil {
			return nil, err
		}
		auditTaxEdit = models.GetPaymentStatus(invoice, payments) == models.FullyPaid
		invoice.TaxRate = *update.TaxRate
	}

	if err := s.InvoiceRepo.UpdateDetails(ctx, invoice); err != nil {
		return nil, err
	}

	if auditTaxEdit {
		metrics.TaxRateEdits.Inc()
		if err := s.InvoiceRepo.RecordTaxRateEdit(ctx, invoiceNumber, oldRate, invoice.TaxRate, oldPayable, invoice.AmountPayable(), changedBy); err != nil {
			log.Printf("[Invoice] audit write failed for %s: %v", invoiceNumber, err)
		}
	}
	return invoice, nil
}

func (s *InvoiceService) MarkSent(ctx context.Context, invoiceNumber string) error {
	return s.InvoiceRepo.SetSent(ctx, invoiceNumber)
}

func (s *InvoiceService) MarkPrinted(ctx context.Context, invoiceNumber string) error {
	return s.InvoiceRepo.SetPrinted(ctx, invoiceNumber)
}

// ReconcileCharges sweeps for charges referenced by an invoice but still
// flagged open and re-marks them. With a transactional store this finds
// nothing; it exists for recovery after a partial write.
func (s *InvoiceService) ReconcileCharges(ctx context.Context) (int, error) {
	unmarked, err := s.InvoiceRepo.FindUnmarkedCharges(ctx)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for invoiceNumber, chargeIDs := range unmarked {
		if err := s.Marker.MarkInvoiced(ctx, chargeIDs); err != nil {
			return repaired, &models.PartialInvoiceError{InvoiceNumber: invoiceNumber, ChargeIDs: chargeIDs, Err: err}
		}
		repaired += len(chargeIDs)
		log.Printf("[Invoice] reconciled %d charges for %s", len(chargeIDs), invoiceNumber)
	}
	return repaired, nil
}
