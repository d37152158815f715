package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `transaction_id, invoice_number, tenant_id, property_id, unit_id,
	amount_paid, date_paid, payment_method, is_successful, month, COALESCE(comments, '')`

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (transaction_id, invoice_number, tenant_id, property_id, unit_id,
		                      amount_paid, date_paid, payment_method, is_successful, month, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.Exec(ctx, query,
		payment.TransactionID, payment.InvoiceNumber, payment.TenantID, payment.PropertyID,
		payment.UnitID, payment.AmountPaid, payment.DatePaid, payment.PaymentMethod,
		payment.IsSuccessful, payment.Month, payment.Comments)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// HasRecentDuplicate reports whether the same tenant paid the same amount
// within the window. Guards against double submits from the web layer.
func (r *PaymentRepository) HasRecentDuplicate(ctx context.Context, tenantID string, amount int64, window time.Duration) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments
		 WHERE tenant_id = $1 AND amount_paid = $2 AND created_at > NOW() - $3::interval`,
		tenantID, amount, window).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentRepository) Get(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID,
	).Scan(&payment.TransactionID, &payment.InvoiceNumber, &payment.TenantID, &payment.PropertyID,
		&payment.UnitID, &payment.AmountPaid, &payment.DatePaid, &payment.PaymentMethod,
		&payment.IsSuccessful, &payment.Month, &payment.Comments)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "payment", ID: transactionID}
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1 ORDER BY date_paid DESC`, tenantID)
}

func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceNumber string) ([]*models.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_number = $1 ORDER BY date_paid`, invoiceNumber)
}

func (r *PaymentRepository) ListByProperty(ctx context.Context, propertyID string) ([]*models.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE property_id = $1 ORDER BY date_paid DESC`, propertyID)
}

// ListByProperties returns payments across a set of properties, oldest first,
// for cashflow aggregation.
func (r *PaymentRepository) ListByProperties(ctx context.Context, propertyIDs []string) ([]*models.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE property_id = ANY($1) ORDER BY date_paid`, propertyIDs)
}

// Update rewrites the mutable subset only; transaction id and invoice number
// are immutable.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE payments SET amount_paid = $2, comments = $3, is_successful = $4
		 WHERE transaction_id = $1`,
		payment.TransactionID, payment.AmountPaid, payment.Comments, payment.IsSuccessful)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Entity: "payment", ID: payment.TransactionID}
	}
	return nil
}

func (r *PaymentRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.TransactionID, &payment.InvoiceNumber, &payment.TenantID,
			&payment.PropertyID, &payment.UnitID, &payment.AmountPaid, &payment.DatePaid,
			&payment.PaymentMethod, &payment.IsSuccessful, &payment.Month, &payment.Comments); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
