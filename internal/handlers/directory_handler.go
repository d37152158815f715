package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rental-backend/internal/models"
	"rental-backend/internal/repositories"
	"rental-backend/pkg/utils"
)

// DirectoryHandler is thin administrative CRUD over companies, properties,
// units and tenants. No business rules live here.
type DirectoryHandler struct {
	Repo *repositories.DirectoryRepository
}

func NewDirectoryHandler(repo *repositories.DirectoryRepository) *DirectoryHandler {
	return &DirectoryHandler{Repo: repo}
}

func (h *DirectoryHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if company.CompanyName == "" {
		utils.Error(w, http.StatusBadRequest, "company_name is required")
		return
	}
	if company.CompanyID == "" {
		company.CompanyID = uuid.NewString()
	}

	if err := h.Repo.CreateCompany(r.Context(), &company); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, company)
}

func (h *DirectoryHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.Repo.GetCompany(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}

func (h *DirectoryHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if property.CompanyID == "" || property.Name == "" {
		utils.Error(w, http.StatusBadRequest, "company_id and name are required")
		return
	}
	if property.PropertyID == "" {
		property.PropertyID = uuid.NewString()
	}

	if err := h.Repo.CreateProperty(r.Context(), &property); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, property)
}

func (h *DirectoryHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Repo.ListCompanyProperties(r.Context(), mux.Vars(r)["companyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, properties)
}

func (h *DirectoryHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var unit models.Unit
	if err := json.NewDecoder(r.Body).Decode(&unit); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if unit.PropertyID == "" {
		utils.Error(w, http.StatusBadRequest, "property_id is required")
		return
	}
	if unit.UnitID == "" {
		unit.UnitID = uuid.NewString()
	}

	if err := h.Repo.CreateUnit(r.Context(), &unit); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, unit)
}

func (h *DirectoryHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := h.Repo.GetUnit(r.Context(), mux.Vars(r)["unitID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, unit)
}

func (h *DirectoryHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var tenant models.Tenant
	if err := json.NewDecoder(r.Body).Decode(&tenant); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if tenant.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if tenant.TenantID == "" {
		tenant.TenantID = uuid.NewString()
	}

	if err := h.Repo.CreateTenant(r.Context(), &tenant); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, tenant)
}

func (h *DirectoryHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.Repo.GetTenant(r.Context(), mux.Vars(r)["tenantID"])
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}
