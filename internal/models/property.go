package models

// Company owns properties and issues invoices.
type Company struct {
	CompanyID    string `json:"company_id"`
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Currency     string `json:"currency"`
}

// Property is a building managed by a company.
type Property struct {
	PropertyID string `json:"property_id"`
	CompanyID  string `json:"company_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

// Unit is a rentable unit inside a property. RentalAmount is the recurring
// monthly rent in minor units.
type Unit struct {
	UnitID       string `json:"unit_id"`
	PropertyID   string `json:"property_id"`
	TenantID     string `json:"tenant_id"`
	UnitNumber   string `json:"unit_number"`
	RentalAmount int64  `json:"rental_amount"`
	IsOccupied   bool   `json:"is_occupied"`
}

// Tenant is the billed party occupying a unit.
type Tenant struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Cell     string `json:"cell"`
}
