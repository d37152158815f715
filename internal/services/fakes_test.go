package services

import (
	"context"
	"fmt"
	"time"

	"rental-backend/internal/models"
)

// In-memory stores used by the service tests.

type fakeItemStore struct {
	items map[string]*models.BillableItem
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[string]*models.BillableItem)}
}

func (s *fakeItemStore) Create(_ context.Context, item *models.BillableItem) error {
	s.items[item.ItemNumber] = item
	return nil
}

func (s *fakeItemStore) Get(_ context.Context, itemNumber string) (*models.BillableItem, error) {
	item, ok := s.items[itemNumber]
	if !ok {
		return nil, &models.NotFoundError{Entity: "billable item", ID: itemNumber}
	}
	return item, nil
}

func (s *fakeItemStore) List(_ context.Context, propertyID string, includeDeleted bool) ([]*models.BillableItem, error) {
	var out []*models.BillableItem
	for _, item := range s.items {
		if item.PropertyID != propertyID {
			continue
		}
		if item.Deleted && !includeDeleted {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *fakeItemStore) SoftDelete(_ context.Context, propertyID, itemNumber string) error {
	item, ok := s.items[itemNumber]
	if !ok || item.PropertyID != propertyID {
		return &models.NotFoundError{Entity: "billable item", ID: itemNumber}
	}
	item.Deleted = true
	return nil
}

type fakeChargeStore struct {
	charges map[string]*models.UnitCharge
}

func newFakeChargeStore() *fakeChargeStore {
	return &fakeChargeStore{charges: make(map[string]*models.UnitCharge)}
}

func (s *fakeChargeStore) Create(_ context.Context, charge *models.UnitCharge) error {
	s.charges[charge.ChargeID] = charge
	return nil
}

func (s *fakeChargeStore) Get(_ context.Context, chargeID string) (*models.UnitCharge, error) {
	charge, ok := s.charges[chargeID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "charge", ID: chargeID}
	}
	return charge, nil
}

func (s *fakeChargeStore) GetMany(ctx context.Context, chargeIDs []string) ([]*models.UnitCharge, error) {
	out := make([]*models.UnitCharge, 0, len(chargeIDs))
	for _, id := range chargeIDs {
		charge, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, charge)
	}
	return out, nil
}

func (s *fakeChargeStore) ListUninvoiced(_ context.Context, propertyID, unitID string) ([]*models.UnitCharge, error) {
	var out []*models.UnitCharge
	for _, charge := range s.charges {
		if charge.PropertyID == propertyID && charge.UnitID == unitID && !charge.IsInvoiced {
			out = append(out, charge)
		}
	}
	return out, nil
}

func (s *fakeChargeStore) Delete(_ context.Context, chargeID string) error {
	charge, ok := s.charges[chargeID]
	if !ok {
		return &models.NotFoundError{Entity: "charge", ID: chargeID}
	}
	if charge.IsInvoiced {
		return &models.ValidationError{Field: "charge_id", Message: "charge is already invoiced"}
	}
	delete(s.charges, chargeID)
	return nil
}

func (s *fakeChargeStore) MarkInvoiced(_ context.Context, chargeIDs []string) error {
	for _, id := range chargeIDs {
		charge, ok := s.charges[id]
		if !ok {
			return &models.NotFoundError{Entity: "charge", ID: id}
		}
		charge.IsInvoiced = true
	}
	return nil
}

type fakeInvoiceStore struct {
	invoices map[string]*models.Invoice
	seq      int
	charges  *fakeChargeStore
	audits   int

	// when true, Create writes the invoice but skips marking charges,
	// simulating a partial write that needs reconciliation
	failMarking bool
}

func newFakeInvoiceStore(charges *fakeChargeStore) *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[string]*models.Invoice), charges: charges}
}

func (s *fakeInvoiceStore) NextInvoiceNumber(_ context.Context) (string, error) {
	s.seq++
	return fmt.Sprintf("INV-%06d", s.seq), nil
}

func (s *fakeInvoiceStore) Create(ctx context.Context, invoice *models.Invoice) error {
	for _, id := range invoice.ChargeIDs {
		charge, ok := s.charges.charges[id]
		if !ok {
			return &models.NotFoundError{Entity: "charge", ID: id}
		}
		if charge.IsInvoiced {
			return &models.ValidationError{Field: "charge_ids", Message: "charge already invoiced"}
		}
	}
	s.invoices[invoice.InvoiceNumber] = invoice
	if s.failMarking {
		return nil
	}
	return s.charges.MarkInvoiced(ctx, invoice.ChargeIDs)
}

func (s *fakeInvoiceStore) Get(_ context.Context, invoiceNumber string) (*models.Invoice, error) {
	invoice, ok := s.invoices[invoiceNumber]
	if !ok {
		return nil, &models.NotFoundError{Entity: "invoice", ID: invoiceNumber}
	}
	return invoice, nil
}

func (s *fakeInvoiceStore) ListByTenant(_ context.Context, tenantID string) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, invoice := range s.invoices {
		if invoice.TenantID == tenantID {
			out = append(out, invoice)
		}
	}
	return out, nil
}

func (s *fakeInvoiceStore) UpdateDetails(_ context.Context, invoice *models.Invoice) error {
	if _, ok := s.invoices[invoice.InvoiceNumber]; !ok {
		return &models.NotFoundError{Entity: "invoice", ID: invoice.InvoiceNumber}
	}
	s.invoices[invoice.InvoiceNumber] = invoice
	return nil
}

func (s *fakeInvoiceStore) SetSent(_ context.Context, invoiceNumber string) error {
	invoice, ok := s.invoices[invoiceNumber]
	if !ok {
		return &models.NotFoundError{Entity: "invoice", ID: invoiceNumber}
	}
	invoice.InvoiceSent = true
	return nil
}

func (s *fakeInvoiceStore) SetPrinted(_ context.Context, invoiceNumber string) error {
	invoice, ok := s.invoices[invoiceNumber]
	if !ok {
		return &models.NotFoundError{Entity: "invoice", ID: invoiceNumber}
	}
	invoice.InvoicePrinted = true
	return nil
}

func (s *fakeInvoiceStore) FindUnmarkedCharges(_ context.Context) (map[string][]string, error) {
	out := make(map[string][]string)
	for number, invoice := range s.invoices {
		for _, id := range invoice.ChargeIDs {
			if charge, ok := s.charges.charges[id]; ok && !charge.IsInvoiced {
				out[number] = append(out[number], id)
			}
		}
	}
	return out, nil
}

func (s *fakeInvoiceStore) RecordTaxRateEdit(_ context.Context, _ string, _, _ int, _, _ int64, _ string) error {
	s.audits++
	return nil
}

type fakeDirectory struct {
	companies  map[string]*models.Company
	properties map[string]*models.Property
	units      map[string]*models.Unit
	tenants    map[string]*models.Tenant
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		companies:  make(map[string]*models.Company),
		properties: make(map[string]*models.Property),
		units:      make(map[string]*models.Unit),
		tenants:    make(map[string]*models.Tenant),
	}
}

func (d *fakeDirectory) GetCompany(_ context.Context, id string) (*models.Company, error) {
	if c, ok := d.companies[id]; ok {
		return c, nil
	}
	return nil, &models.NotFoundError{Entity: "company", ID: id}
}

func (d *fakeDirectory) GetProperty(_ context.Context, id string) (*models.Property, error) {
	if p, ok := d.properties[id]; ok {
		return p, nil
	}
	return nil, &models.NotFoundError{Entity: "property", ID: id}
}

func (d *fakeDirectory) GetUnit(_ context.Context, id string) (*models.Unit, error) {
	if u, ok := d.units[id]; ok {
		return u, nil
	}
	return nil, &models.NotFoundError{Entity: "unit", ID: id}
}

func (d *fakeDirectory) GetTenant(_ context.Context, id string) (*models.Tenant, error) {
	if t, ok := d.tenants[id]; ok {
		return t, nil
	}
	return nil, &models.NotFoundError{Entity: "tenant", ID: id}
}

func (d *fakeDirectory) ListCompanyProperties(_ context.Context, companyID string) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range d.properties {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type recordedPayment struct {
	payment   *models.Payment
	createdAt time.Time
}

type fakePaymentStore struct {
	records []recordedPayment
	now     time.Time
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{now: time.Now()}
}

func (s *fakePaymentStore) Create(_ context.Context, payment *models.Payment) error {
	s.records = append(s.records, recordedPayment{payment: payment, createdAt: s.now})
	return nil
}

func (s *fakePaymentStore) HasRecentDuplicate(_ context.Context, tenantID string, amount int64, window time.Duration) (bool, error) {
	for _, rec := range s.records {
		if rec.payment.TenantID == tenantID && rec.payment.AmountPaid == amount && s.now.Sub(rec.createdAt) < window {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakePaymentStore) Get(_ context.Context, transactionID string) (*models.Payment, error) {
	for _, rec := range s.records {
		if rec.payment.TransactionID == transactionID {
			return rec.payment, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "payment", ID: transactionID}
}

func (s *fakePaymentStore) ListByTenant(_ context.Context, tenantID string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, rec := range s.records {
		if rec.payment.TenantID == tenantID {
			out = append(out, rec.payment)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) ListByInvoice(_ context.Context, invoiceNumber string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, rec := range s.records {
		if rec.payment.InvoiceNumber == invoiceNumber {
			out = append(out, rec.payment)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) ListByProperty(_ context.Context, propertyID string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, rec := range s.records {
		if rec.payment.PropertyID == propertyID {
			out = append(out, rec.payment)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) ListByProperties(ctx context.Context, propertyIDs []string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, id := range propertyIDs {
		payments, _ := s.ListByProperty(ctx, id)
		out = append(out, payments...)
	}
	return out, nil
}

func (s *fakePaymentStore) Update(_ context.Context, payment *models.Payment) error {
	for i, rec := range s.records {
		if rec.payment.TransactionID == payment.TransactionID {
			s.records[i].payment = payment
			return nil
		}
	}
	return &models.NotFoundError{Entity: "payment", ID: payment.TransactionID}
}
