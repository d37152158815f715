package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"rental-backend/internal/services"
	"rental-backend/pkg/utils"
)

type CashFlowHandler struct {
	Service *services.CashFlowService
}

func NewCashFlowHandler(s *services.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{Service: s}
}

func (h *CashFlowHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	flow, err := h.Service.MonthlyCashflow(r.Context(), mux.Vars(r)["propertyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, flow)
}

func (h *CashFlowHandler) CompanyMonthly(w http.ResponseWriter, r *http.Request) {
	flow, err := h.Service.CompanyMonthlyCashflow(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, flow)
}

func (h *CashFlowHandler) ByProperty(w http.ResponseWriter, r *http.Request) {
	flow, err := h.Service.CashflowByProperty(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, flow)
}

func (h *CashFlowHandler) ByMonthAndProperty(w http.ResponseWriter, r *http.Request) {
	flow, err := h.Service.CashflowByMonthAndProperty(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, flow)
}

func (h *CashFlowHandler) Total(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.TotalCashflow(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int64{"total_cashflow": total})
}
