package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// NextInvoiceNumber draws from a database sequence for O(1) generation.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", nextNum), nil
}

// Create persists the invoice, its item snapshots, and marks every consumed
// charge invoiced in one transaction. If any consumed charge was already
// invoiced the whole transaction rolls back, so an invoice can never coexist
// with charges in a disagreeing state.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin invoice transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO invoices (invoice_number, tenant_id, service_name, description, currency,
		                       discount, tax_rate, date_issued, due_date, month, rental_amount,
		                       charge_ids, invoice_sent, invoice_printed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		invoice.InvoiceNumber, invoice.TenantID, invoice.ServiceName, invoice.Description,
		invoice.Currency, invoice.Discount, invoice.TaxRate, invoice.DateIssued, invoice.DueDate,
		invoice.Month, invoice.RentalAmount, strings.Join(invoice.ChargeIDs, ","),
		invoice.InvoiceSent, invoice.InvoicePrinted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i, item := range invoice.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO invoice_items (invoice_number, property_id, item_number, description, multiplier, amount, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			invoice.InvoiceNumber, item.PropertyID, item.ItemNumber, item.Description,
			item.Multiplier, item.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}

	if len(invoice.ChargeIDs) > 0 {
		tag, err := tx.Exec(ctx,
			`UPDATE unit_charges SET is_invoiced = TRUE WHERE charge_id = ANY($1) AND is_invoiced = FALSE`,
			invoice.ChargeIDs,
		)
		if err != nil {
			return fmt.Errorf("failed to mark charges invoiced: %w", err)
		}
		if int(tag.RowsAffected()) != len(invoice.ChargeIDs) {
			return &models.ValidationError{Field: "charge_ids", Message: "one or more charges already invoiced"}
		}
	}

	return tx.Commit(ctx)
}

// Get loads an invoice with its item snapshots reconstructed in order.
func (r *InvoiceRepository) Get(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var chargeIDs string
	err := r.DB.QueryRow(ctx,
		`SELECT invoice_number, tenant_id, service_name, description, currency, discount,
		        tax_rate, date_issued, due_date, month, rental_amount, charge_ids,
		        invoice_sent, invoice_printed
		 FROM invoices WHERE invoice_number = $1`, invoiceNumber,
	).Scan(&invoice.InvoiceNumber, &invoice.TenantID, &invoice.ServiceName, &invoice.Description,
		&invoice.Currency, &invoice.Discount, &invoice.TaxRate, &invoice.DateIssued,
		&invoice.DueDate, &invoice.Month, &invoice.RentalAmount, &chargeIDs,
		&invoice.InvoiceSent, &invoice.InvoicePrinted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "invoice", ID: invoiceNumber}
	}
	if err != nil {
		return nil, err
	}
	invoice.ChargeIDs = splitChargeIDs(chargeIDs)

	items, err := r.loadItems(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return invoice, nil
}

// ListByTenant returns all of a tenant's invoices with items, newest first.
func (r *InvoiceRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT invoice_number, tenant_id, service_name, description, currency, discount,
		        tax_rate, date_issued, due_date, month, rental_amount, charge_ids,
		        invoice_sent, invoice_printed
		 FROM invoices WHERE tenant_id = $1 ORDER BY date_issued DESC`, tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		var chargeIDs string
		if err := rows.Scan(&invoice.InvoiceNumber, &invoice.TenantID, &invoice.ServiceName,
			&invoice.Description, &invoice.Currency, &invoice.Discount, &invoice.TaxRate,
			&invoice.DateIssued, &invoice.DueDate, &invoice.Month, &invoice.RentalAmount,
			&chargeIDs, &invoice.InvoiceSent, &invoice.InvoicePrinted); err != nil {
			return nil, err
		}
		invoice.ChargeIDs = splitChargeIDs(chargeIDs)
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, invoice := range invoices {
		items, err := r.loadItems(ctx, invoice.InvoiceNumber)
		if err != nil {
			return nil, err
		}
		invoice.Items = items
	}
	return invoices, nil
}

// UpdateDetails rewrites the administrative fields only. Financial inputs
// other than tax_rate are untouchable once issued.
func (r *InvoiceRepository) UpdateDetails(ctx context.Context, invoice *models.Invoice) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET service_name = $2, description = $3, currency = $4, tax_rate = $5
		 WHERE invoice_number = $1`,
		invoice.InvoiceNumber, invoice.ServiceName, invoice.Description, invoice.Currency, invoice.TaxRate)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Entity: "invoice", ID: invoice.InvoiceNumber}
	}
	return nil
}

func (r *InvoiceRepository) SetSent(ctx context.Context, invoiceNumber string) error {
	return r.setFlag(ctx, invoiceNumber, "invoice_sent")
}

func (r *InvoiceRepository) SetPrinted(ctx context.Context, invoiceNumber string) error {
	return r.setFlag(ctx, invoiceNumber, "invoice_printed")
}

func (r *InvoiceRepository) setFlag(ctx context.Context, invoiceNumber, column string) error {
	// column is one of two fixed names, never caller input
	tag, err := r.DB.Exec(ctx,
		fmt.Sprintf(`UPDATE invoices SET %s = TRUE WHERE invoice_number = $1`, column), invoiceNumber)
	if err != nil {
		return fmt.Errorf("failed to update invoice flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Entity: "invoice", ID: invoiceNumber}
	}
	return nil
}

// FindUnmarkedCharges reports charges referenced by an invoice but still
// flagged uninvoiced. With transactional creation this should always come
// back empty; anything found is crash debris awaiting reconciliation.
func (r *InvoiceRepository) FindUnmarkedCharges(ctx context.Context) (map[string][]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.invoice_number, c.charge_id
		 FROM invoices i
		 JOIN unit_charges c ON c.charge_id = ANY(string_to_array(i.charge_ids, ','))
		 WHERE c.is_invoiced = FALSE AND i.charge_ids <> ''`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unmarked := make(map[string][]string)
	for rows.Next() {
		var invoiceNumber, chargeID string
		if err := rows.Scan(&invoiceNumber, &chargeID); err != nil {
			return nil, err
		}
		unmarked[invoiceNumber] = append(unmarked[invoiceNumber], chargeID)
	}
	return unmarked, rows.Err()
}

// RecordTaxRateEdit writes an audit row for a financial-terms edit on an
// issued invoice.
func (r *InvoiceRepository) RecordTaxRateEdit(ctx context.Context, invoiceNumber string, oldRate, newRate int, oldPayable, newPayable int64, changedBy string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO invoice_audit_log (invoice_number, field, old_value, new_value, old_payable, new_payable, changed_by)
		 VALUES ($1, 'tax_rate', $2, $3, $4, $5, $6)`,
		invoiceNumber, fmt.Sprintf("%d", oldRate), fmt.Sprintf("%d", newRate),
		oldPayable, newPayable, changedBy)
	if err != nil {
		return fmt.Errorf("failed to record tax rate edit: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) loadItems(ctx context.Context, invoiceNumber string) ([]models.InvoicedItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT property_id, item_number, description, multiplier, amount
		 FROM invoice_items WHERE invoice_number = $1 ORDER BY position`, invoiceNumber,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InvoicedItem
	for rows.Next() {
		var item models.InvoicedItem
		if err := rows.Scan(&item.PropertyID, &item.ItemNumber, &item.Description,
			&item.Multiplier, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func splitChargeIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
