package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/internal/config"
	"rental-backend/internal/models"
)

func billingConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.DefaultTaxRate = 15
	cfg.Billing.DefaultCurrency = "ZAR"
	return cfg
}

type invoiceFixture struct {
	svc       *InvoiceService
	items     *fakeItemStore
	charges   *fakeChargeStore
	invoices  *fakeInvoiceStore
	directory *fakeDirectory
	payments  *fakePaymentStore
}

func newInvoiceFixture() *invoiceFixture {
	items := newFakeItemStore()
	charges := newFakeChargeStore()
	invoices := newFakeInvoiceStore(charges)
	directory := newFakeDirectory()
	payments := newFakePaymentStore()

	directory.companies["c1"] = &models.Company{CompanyID: "c1", CompanyName: "Oak Lettings", Currency: "ZAR"}
	directory.properties["p1"] = &models.Property{PropertyID: "p1", CompanyID: "c1", Name: "Oak Court"}
	directory.tenants["t1"] = &models.Tenant{TenantID: "t1", Name: "N. Dlamini", Email: "n@example.com"}
	directory.units["u1"] = &models.Unit{UnitID: "u1", PropertyID: "p1", TenantID: "t1", UnitNumber: "12B", RentalAmount: 150000, IsOccupied: true}

	items.items["i1"] = &models.BillableItem{ItemNumber: "i1", PropertyID: "p1", Description: "Water", Multiplier: 1}
	items.items["i2"] = &models.BillableItem{ItemNumber: "i2", PropertyID: "p1", Description: "Parking", Multiplier: 2}

	charges.charges["ch1"] = &models.UnitCharge{ChargeID: "ch1", PropertyID: "p1", TenantID: "t1", UnitID: "u1", ItemNumber: "i1", Amount: 60000}
	charges.charges["ch2"] = &models.UnitCharge{ChargeID: "ch2", PropertyID: "p1", TenantID: "t1", UnitID: "u1", ItemNumber: "i2", Amount: 20000}

	svc := NewInvoiceService(invoices, charges, items, directory, payments, charges, billingConfig())
	return &invoiceFixture{svc: svc, items: items, charges: charges, invoices: invoices, directory: directory, payments: payments}
}

func TestCalculateDueDateEarlyInMonth(t *testing.T) {
	issued := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	due := CalculateDueDate(issued, nil)
	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), due)
}

func TestCalculateDueDateOnOrAfterSeventh(t *testing.T) {
	issued := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC), CalculateDueDate(issued, nil))

	issued = time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC), CalculateDueDate(issued, nil))
}

func TestCalculateDueDateDecemberWrapsYear(t *testing.T) {
	issued := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 7, 0, 0, 0, 0, time.UTC), CalculateDueDate(issued, nil))
}

func TestCalculateDueDateOverride(t *testing.T) {
	issued := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)
	days := 14
	assert.Equal(t, time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC), CalculateDueDate(issued, &days))
}

func TestCreateInvoiceConsumesCharges(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	invoice, err := f.svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		ChargeIDs:     []string{"ch1", "ch2"},
		UnitID:        "u1",
		IncludeRental: true,
		Discount:      20000,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, "t1", invoice.TenantID)
	assert.Equal(t, "Oak Lettings", invoice.ServiceName)
	assert.Equal(t, "ZAR", invoice.Currency)
	assert.Equal(t, 15, invoice.TaxRate)
	assert.Equal(t, "N. Dlamini", invoice.Customer.Name)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "Water", invoice.Items[0].Description)

	// 60000 + 2*20000 + 150000 rental, 15% tax, 20000 discount
	assert.Equal(t, int64(250000), invoice.TotalAmount())
	assert.Equal(t, int64(267500), invoice.AmountPayable())

	assert.True(t, f.charges.charges["ch1"].IsInvoiced)
	assert.True(t, f.charges.charges["ch2"].IsInvoiced)
}

func TestCreateInvoiceRejectsConsumedCharge(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	f.charges.charges["ch1"].IsInvoiced = true

	_, err := f.svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1"},
		UnitID:    "u1",
	})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateInvoiceRejectsForeignCharge(t *testing.T) {
	f := newInvoiceFixture()
	f.charges.charges["ch9"] = &models.UnitCharge{ChargeID: "ch9", PropertyID: "p1", TenantID: "t2", UnitID: "u9", ItemNumber: "i1", Amount: 100}

	_, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch9"},
		UnitID:    "u1",
	})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateInvoiceRequiresTenant(t *testing.T) {
	f := newInvoiceFixture()
	f.directory.units["u1"].TenantID = ""

	_, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1"},
		UnitID:    "u1",
	})
	var missingErr *models.MissingContextError
	require.ErrorAs(t, err, &missingErr)
}

func TestCreateInvoiceRequiresTenantName(t *testing.T) {
	f := newInvoiceFixture()
	f.directory.tenants["t1"].Name = ""

	_, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1"},
		UnitID:    "u1",
	})
	var incompleteErr *models.IncompleteDataError
	require.ErrorAs(t, err, &incompleteErr)
}

func TestCreateInvoiceRequiresSomethingToBill(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		UnitID: "u1",
	})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateInvoiceWithoutAnyContext(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{})
	var missingCtxErr *models.MissingContextError
	require.ErrorAs(t, err, &missingCtxErr)
}

func TestCreateInvoiceDerivesUnitFromCharges(t *testing.T) {
	f := newInvoiceFixture()

	invoice, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1", "ch2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", invoice.TenantID)
	assert.Equal(t, "Oak Lettings", invoice.ServiceName)
	require.Len(t, invoice.Items, 2)
	assert.True(t, f.charges.charges["ch1"].IsInvoiced)
	assert.True(t, f.charges.charges["ch2"].IsInvoiced)
}

func TestCreateInvoiceRentalOnly(t *testing.T) {
	f := newInvoiceFixture()

	invoice, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		UnitID:        "u1",
		IncludeRental: true,
	})
	require.NoError(t, err)
	assert.Empty(t, invoice.Items)
	assert.Equal(t, int64(150000), invoice.TotalAmount())
}

func TestCreateInvoiceTaxRateOverride(t *testing.T) {
	f := newInvoiceFixture()
	zero := 0

	invoice, err := f.svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1"},
		UnitID:    "u1",
		TaxRate:   &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, invoice.TaxRate)
	assert.Equal(t, int64(0), invoice.TotalTaxes())
}

func TestUpdateInvoiceAuditsTaxEditOnPaidInvoice(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	invoice, err := f.svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1"},
		UnitID:    "u1",
	})
	require.NoError(t, err)

	// Settle the invoice in full, then change the tax rate.
	require.NoError(t, f.payments.Create(ctx, &models.Payment{
		TransactionID: "tx1",
		InvoiceNumber: invoice.InvoiceNumber,
		TenantID:      "t1",
		AmountPaid:    invoice.AmountPayable(),
		IsSuccessful:  true,
	}))

	newRate := 20
	_, err = f.svc.UpdateInvoice(ctx, invoice.InvoiceNumber, &models.InvoiceUpdate{TaxRate: &newRate}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, f.invoices.audits)
}

func TestUpdateInvoiceSkipsAuditWhenUnpaid(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	invoice, err := f.svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1"},
		UnitID:    "u1",
	})
	require.NoError(t, err)

	newRate := 20
	updated, err := f.svc.UpdateInvoice(ctx, invoice.InvoiceNumber, &models.InvoiceUpdate{TaxRate: &newRate}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 20, updated.TaxRate)
	assert.Equal(t, 0, f.invoices.audits)
}

func TestReconcileChargesRepairsPartialWrite(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	f.invoices.failMarking = true

	invoice, err := f.svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		ChargeIDs: []string{"ch1", "ch2"},
		UnitID:    "u1",
	})
	require.NoError(t, err)
	assert.False(t, f.charges.charges["ch1"].IsInvoiced)

	repaired, err := f.svc.ReconcileCharges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)
	assert.True(t, f.charges.charges["ch1"].IsInvoiced)
	assert.True(t, f.charges.charges["ch2"].IsInvoiced)

	// Sweep is idempotent.
	repaired, err = f.svc.ReconcileCharges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
	_ = invoice
}
