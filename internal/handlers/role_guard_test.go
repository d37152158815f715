package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"rental-backend/internal/middleware"
)

func billingRequest(role string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/invoices", nil)
	if role == "" {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), middleware.RoleKey, role))
}

func TestRequireBillingRoleAllowsStaff(t *testing.T) {
	for _, role := range []string{"admin", "employee"} {
		w := httptest.NewRecorder()
		assert.True(t, requireBillingRole(w, billingRequest(role)), "role %q", role)
	}
}

func TestRequireBillingRoleForbidsOthers(t *testing.T) {
	w := httptest.NewRecorder()
	assert.False(t, requireBillingRole(w, billingRequest("viewer")))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireBillingRoleNeedsAuthentication(t *testing.T) {
	w := httptest.NewRecorder()
	assert.False(t, requireBillingRole(w, billingRequest("")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
