package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"rental-backend/internal/middleware"
	"rental-backend/internal/models"
	"rental-backend/internal/services"
	"rental-backend/internal/storage"
	"rental-backend/internal/timeutil"
	"rental-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service     *services.InvoiceService
	DocumentSvc *services.DocumentService
	Archiver    *storage.Archiver
}

func NewInvoiceHandler(s *services.InvoiceService, docSvc *services.DocumentService, archiver *storage.Archiver) *InvoiceHandler {
	return &InvoiceHandler{Service: s, DocumentSvc: docSvc, Archiver: archiver}
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}

	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := h.Service.CreateInvoice(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, invoice.View(timeutil.Now()))
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Service.GetInvoice(r.Context(), mux.Vars(r)["invoiceNumber"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice.View(timeutil.Now()))
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		utils.Error(w, http.StatusBadRequest, "tenant_id parameter is required")
		return
	}

	invoices, err := h.Service.ListInvoices(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	now := timeutil.Now()
	views := make([]*models.InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, inv.View(now))
	}
	utils.JSON(w, http.StatusOK, views)
}

func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}

	var update models.InvoiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changedBy, _ := middleware.GetUserIDFromContext(r.Context())
	invoice, err := h.Service.UpdateInvoice(r.Context(), mux.Vars(r)["invoiceNumber"], &update, changedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice.View(timeutil.Now()))
}

func (h *InvoiceHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}
	if err := h.Service.MarkSent(r.Context(), mux.Vars(r)["invoiceNumber"]); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *InvoiceHandler) MarkPrinted(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}
	if err := h.Service.MarkPrinted(r.Context(), mux.Vars(r)["invoiceNumber"]); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "printed"})
}

// DownloadPDF renders the invoice document, archives a copy when archiving
// is configured, and flags the invoice as printed.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	invoiceNumber := mux.Vars(r)["invoiceNumber"]

	pdf, err := h.DocumentSvc.RenderInvoice(r.Context(), invoiceNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Archiver.StoreInvoice(r.Context(), invoiceNumber, pdf); err != nil {
		log.Printf("[Invoice] archive failed for %s: %v", invoiceNumber, err)
	}
	if err := h.Service.MarkPrinted(r.Context(), invoiceNumber); err != nil {
		log.Printf("[Invoice] printed flag failed for %s: %v", invoiceNumber, err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoiceNumber))
	w.Write(pdf)
}

// Reconcile sweeps for invoices whose charges were never marked consumed.
func (h *InvoiceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}
	repaired, err := h.Service.ReconcileCharges(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"repaired_charges": repaired})
}
