package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rental-backend/internal/models"
	"rental-backend/internal/services"
	"rental-backend/pkg/utils"
)

type ChargeHandler struct {
	Service *services.ChargeService
}

func NewChargeHandler(s *services.ChargeService) *ChargeHandler {
	return &ChargeHandler{Service: s}
}

func (h *ChargeHandler) CreateBillableItem(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}

	var req models.CreateBillableItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Service.CreateBillableItem(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}

func (h *ChargeHandler) ListBillableItems(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyID"]

	items, err := h.Service.ListBillableItems(r.Context(), propertyID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *ChargeHandler) DeleteBillableItem(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteBillableItem(r.Context(), vars["propertyID"], vars["itemNumber"]); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ChargeHandler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}

	var req models.CreateChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	charge, err := h.Service.CreateCharge(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, charge)
}

func (h *ChargeHandler) GetCharge(w http.ResponseWriter, r *http.Request) {
	charge, err := h.Service.GetCharge(r.Context(), mux.Vars(r)["chargeID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) ListUninvoiced(w http.ResponseWriter, r *http.Request) {
	propertyID := r.URL.Query().Get("property_id")
	unitID := r.URL.Query().Get("unit_id")
	if propertyID == "" || unitID == "" {
		utils.Error(w, http.StatusBadRequest, "property_id and unit_id parameters are required")
		return
	}

	charges, err := h.Service.ListUninvoicedCharges(r.Context(), propertyID, unitID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charges)
}

func (h *ChargeHandler) DeleteCharge(w http.ResponseWriter, r *http.Request) {
	if !requireBillingRole(w, r) {
		return
	}
	if err := h.Service.DeleteCharge(r.Context(), mux.Vars(r)["chargeID"]); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
