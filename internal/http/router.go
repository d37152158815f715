package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-backend/internal/handlers"
	"rental-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	chargeHandler *handlers.ChargeHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	statementHandler *handlers.StatementHandler,
	cashflowHandler *handlers.CashFlowHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	directoryHandler *handlers.DirectoryHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Billing catalog and charge registry
	api.HandleFunc("/items", chargeHandler.CreateBillableItem).Methods("POST")
	api.HandleFunc("/properties/{propertyID}/items", chargeHandler.ListBillableItems).Methods("GET")
	api.HandleFunc("/properties/{propertyID}/items/{itemNumber}", chargeHandler.DeleteBillableItem).Methods("DELETE")
	api.HandleFunc("/charges", chargeHandler.CreateCharge).Methods("POST")
	api.HandleFunc("/charges", chargeHandler.ListUninvoiced).Methods("GET")
	api.HandleFunc("/charges/{chargeID}", chargeHandler.GetCharge).Methods("GET")
	api.HandleFunc("/charges/{chargeID}", chargeHandler.DeleteCharge).Methods("DELETE")

	// Invoices
	api.HandleFunc("/invoices", invoiceHandler.CreateInvoice).Methods("POST")
	api.HandleFunc("/invoices", invoiceHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/invoices/reconcile", invoiceHandler.Reconcile).Methods("POST")
	api.HandleFunc("/invoices/{invoiceNumber}", invoiceHandler.GetInvoice).Methods("GET")
	api.HandleFunc("/invoices/{invoiceNumber}", invoiceHandler.UpdateInvoice).Methods("PUT")
	api.HandleFunc("/invoices/{invoiceNumber}/sent", invoiceHandler.MarkSent).Methods("PATCH")
	api.HandleFunc("/invoices/{invoiceNumber}/printed", invoiceHandler.MarkPrinted).Methods("PATCH")
	api.HandleFunc("/invoices/{invoiceNumber}/pdf", invoiceHandler.DownloadPDF).Methods("GET")
	api.HandleFunc("/invoices/{invoiceNumber}/status", paymentHandler.InvoiceStatus).Methods("GET")

	// Payment ledger
	api.HandleFunc("/payments", paymentHandler.RecordPayment).Methods("POST")
	api.HandleFunc("/payments", paymentHandler.ListPayments).Methods("GET")
	api.HandleFunc("/payments/{transactionID}", paymentHandler.GetPayment).Methods("GET")
	api.HandleFunc("/payments/{transactionID}", paymentHandler.UpdatePayment).Methods("PUT")

	// Statements
	api.HandleFunc("/tenants/{tenantID}/statements", statementHandler.ListStatements).Methods("GET")
	api.HandleFunc("/tenants/{tenantID}/statements/{year}/{month}", statementHandler.GetStatement).Methods("GET")
	api.HandleFunc("/tenants/{tenantID}/statements/{year}/{month}/pdf", statementHandler.DownloadPDF).Methods("GET")

	// Cash flow
	api.HandleFunc("/properties/{propertyID}/cashflow", cashflowHandler.Monthly).Methods("GET")
	api.HandleFunc("/companies/{companyID}/cashflow", cashflowHandler.ByProperty).Methods("GET")
	api.HandleFunc("/companies/{companyID}/cashflow/monthly", cashflowHandler.CompanyMonthly).Methods("GET")
	api.HandleFunc("/companies/{companyID}/cashflow/matrix", cashflowHandler.ByMonthAndProperty).Methods("GET")
	api.HandleFunc("/companies/{companyID}/cashflow/total", cashflowHandler.Total).Methods("GET")

	// Subscriptions
	api.HandleFunc("/plans", subscriptionHandler.ListPlans).Methods("GET")
	api.HandleFunc("/plans/reload", subscriptionHandler.Reload).Methods("POST")
	api.HandleFunc("/companies/{companyID}/subscription", subscriptionHandler.GetSubscription).Methods("GET")

	// Directory
	api.HandleFunc("/companies", directoryHandler.CreateCompany).Methods("POST")
	api.HandleFunc("/companies/{companyID}", directoryHandler.GetCompany).Methods("GET")
	api.HandleFunc("/properties", directoryHandler.CreateProperty).Methods("POST")
	api.HandleFunc("/companies/{companyID}/properties", directoryHandler.ListProperties).Methods("GET")
	api.HandleFunc("/units", directoryHandler.CreateUnit).Methods("POST")
	api.HandleFunc("/units/{unitID}", directoryHandler.GetUnit).Methods("GET")
	api.HandleFunc("/tenants", directoryHandler.CreateTenant).Methods("POST")
	api.HandleFunc("/tenants/{tenantID}", directoryHandler.GetTenant).Methods("GET")

	return r
}
