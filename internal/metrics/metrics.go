package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	InvoicesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_invoices_issued_total",
		Help: "Invoices successfully created",
	})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_payments_recorded_total",
		Help: "Payments recorded by outcome",
	}, []string{"successful"})

	TaxRateEdits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_invoice_tax_rate_edits_total",
		Help: "Tax rate edits on already-issued invoices",
	})
)
