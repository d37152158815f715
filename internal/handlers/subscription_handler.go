package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"rental-backend/internal/services"
	"rental-backend/pkg/utils"
)

type SubscriptionHandler struct {
	Service *services.SubscriptionService
}

func NewSubscriptionHandler(s *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: s}
}

func (h *SubscriptionHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.ListPlans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, plans)
}

func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Service.GetSubscription(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sub)
}

// Reload flushes the subscription cache after plan edits.
func (h *SubscriptionHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reload(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
