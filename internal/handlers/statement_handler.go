package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rental-backend/internal/models"
	"rental-backend/internal/services"
	"rental-backend/internal/storage"
	"rental-backend/pkg/utils"
)

type StatementHandler struct {
	Service     *services.StatementService
	DocumentSvc *services.DocumentService
	Archiver    *storage.Archiver
}

func NewStatementHandler(s *services.StatementService, docSvc *services.DocumentService, archiver *storage.Archiver) *StatementHandler {
	return &StatementHandler{Service: s, DocumentSvc: docSvc, Archiver: archiver}
}

func statementParams(r *http.Request) (tenantID string, year, month int, err error) {
	vars := mux.Vars(r)
	tenantID = vars["tenantID"]
	year, err = strconv.Atoi(vars["year"])
	if err != nil {
		return "", 0, 0, &models.ValidationError{Field: "year", Message: "year must be a number"}
	}
	month, err = strconv.Atoi(vars["month"])
	if err != nil {
		return "", 0, 0, &models.ValidationError{Field: "month", Message: "month must be a number"}
	}
	return tenantID, year, month, nil
}

func (h *StatementHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	tenantID, year, month, err := statementParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	statement, err := h.Service.CreateMonthStatement(r.Context(), tenantID, year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, statement.View())
}

func (h *StatementHandler) ListStatements(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantID"]
	startYear, err := strconv.Atoi(r.URL.Query().Get("start_year"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "start_year parameter is required")
		return
	}
	endYear, err := strconv.Atoi(r.URL.Query().Get("end_year"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "end_year parameter is required")
		return
	}

	statements, err := h.Service.CreateAllStatements(r.Context(), tenantID, startYear, endYear)
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]*models.StatementView, 0, len(statements))
	for _, statement := range statements {
		views = append(views, statement.View())
	}
	utils.JSON(w, http.StatusOK, views)
}

func (h *StatementHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	tenantID, year, month, err := statementParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pdf, err := h.DocumentSvc.RenderStatement(r.Context(), tenantID, year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Archiver.StoreStatement(r.Context(), tenantID, year, month, pdf); err != nil {
		log.Printf("[Statement] archive failed for %s %d-%02d: %v", tenantID, year, month, err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=statement-%s-%d-%02d.pdf", tenantID, year, month))
	w.Write(pdf)
}
