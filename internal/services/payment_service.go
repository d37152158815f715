package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"rental-backend/internal/metrics"
	"rental-backend/internal/models"
	"rental-backend/internal/timeutil"
)

// PaymentStore is the ledger's persistence surface. Payments are append-only
// apart from the narrow Update path.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	HasRecentDuplicate(ctx context.Context, tenantID string, amount int64, window time.Duration) (bool, error)
	Get(ctx context.Context, transactionID string) (*models.Payment, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*models.Payment, error)
	ListByInvoice(ctx context.Context, invoiceNumber string) ([]*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

// duplicateWindow is how close together two identical submissions must be to
// look like a double click rather than a genuine repeat payment.
const duplicateWindow = 2 * time.Minute

type PaymentService struct {
	PaymentRepo PaymentStore
	InvoiceRepo InvoiceStore
}

func NewPaymentService(paymentRepo PaymentStore, invoiceRepo InvoiceStore) *PaymentService {
	return &PaymentService{PaymentRepo: paymentRepo, InvoiceRepo: invoiceRepo}
}

// RecordPayment appends a payment against an invoice. The invoice must
// exist; an identical amount from the same tenant inside the duplicate
// window is rejected.
func (s *PaymentService) RecordPayment(ctx context.Context, req *models.RecordPaymentRequest) (*models.Payment, error) {
	amount, err := models.ParseAmount(req.AmountPaid)
	if err != nil {
		return nil, err
	}

	invoice, err := s.InvoiceRepo.Get(ctx, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice.TenantID != req.TenantID {
		return nil, &models.ValidationError{Field: "tenant_id", Message: "invoice belongs to another tenant"}
	}

	dup, err := s.PaymentRepo.HasRecentDuplicate(ctx, req.TenantID, amount, duplicateWindow)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, &models.ValidationError{Field: "amount_paid", Message: "identical payment submitted moments ago; wait before retrying"}
	}

	now := timeutil.Today()
	payment := &models.Payment{
		TransactionID: uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		TenantID:      req.TenantID,
		PropertyID:    req.PropertyID,
		UnitID:        req.UnitID,
		AmountPaid:    amount,
		DatePaid:      now,
		PaymentMethod: req.PaymentMethod,
		IsSuccessful:  req.IsSuccessful,
		Month:         int(now.Month()),
		Comments:      req.Comments,
	}
	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	metrics.PaymentsRecorded.WithLabelValues(strconv.FormatBool(payment.IsSuccessful)).Inc()
	log.Printf("[Payment] recorded %s against %s (%d, successful=%t)",
		payment.TransactionID, payment.InvoiceNumber, payment.AmountPaid, payment.IsSuccessful)
	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, transactionID string) (*models.Payment, error) {
	return s.PaymentRepo.Get(ctx, transactionID)
}

func (s *PaymentService) ListPayments(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	return s.PaymentRepo.ListByTenant(ctx, tenantID)
}

// InvoiceStatus derives the settlement state of an invoice from its ledger.
func (s *PaymentService) InvoiceStatus(ctx context.Context, invoiceNumber string) (models.PaymentStatus, error) {
	invoice, err := s.InvoiceRepo.Get(ctx, invoiceNumber)
	if err != nil {
		return "", err
	}
	payments, err := s.PaymentRepo.ListByInvoice(ctx, invoiceNumber)
	if err != nil {
		return "", err
	}
	return models.GetPaymentStatus(invoice, payments), nil
}

// UpdatePayment corrects a recorded payment. Only the amount, comments and
// the success flag may change.
func (s *PaymentService) UpdatePayment(ctx context.Context, transactionID string, req *models.UpdatePaymentRequest) (*models.Payment, error) {
	payment, err := s.PaymentRepo.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if req.AmountPaid != nil {
		if *req.AmountPaid < 0 {
			return nil, &models.ValidationError{Field: "amount_paid", Message: "amount must not be negative"}
		}
		payment.AmountPaid = *req.AmountPaid
	}
	if req.Comments != nil {
		payment.Comments = *req.Comments
	}
	if req.IsSuccessful != nil {
		payment.IsSuccessful = *req.IsSuccessful
	}
	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
