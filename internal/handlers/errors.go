package handlers

import (
	"errors"
	"log"
	"net/http"

	"rental-backend/internal/middleware"
	"rental-backend/internal/models"
	"rental-backend/pkg/utils"
)

// requireBillingRole gates mutating billing endpoints: only admins and
// employees may write to the ledger. Returns false after responding.
func requireBillingRole(w http.ResponseWriter, r *http.Request) bool {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if role != "admin" && role != "employee" {
		utils.Error(w, http.StatusForbidden, "employee or admin access required")
		return false
	}
	return true
}

// writeError maps the service error taxonomy onto HTTP statuses. Unknown
// errors are logged and reported as a bare 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var missingCtxErr *models.MissingContextError
	var incompleteErr *models.IncompleteDataError
	var partialErr *models.PartialInvoiceError

	switch {
	case errors.As(err, &validationErr):
		utils.Error(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		utils.Error(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &missingCtxErr):
		utils.Error(w, http.StatusUnprocessableEntity, missingCtxErr.Error())
	case errors.As(err, &incompleteErr):
		utils.Error(w, http.StatusUnprocessableEntity, incompleteErr.Error())
	case errors.As(err, &partialErr):
		log.Printf("[HTTP] partial invoice write: %v", partialErr)
		utils.Error(w, http.StatusInternalServerError, partialErr.Error())
	default:
		log.Printf("[HTTP] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
