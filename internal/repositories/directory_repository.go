package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

// DirectoryRepository resolves the billing context: companies, properties,
// units and tenants. The invoice builder and statement generator read from
// it; writes are minimal CRUD for administration.
type DirectoryRepository struct {
	DB *pgxpool.Pool
}

func NewDirectoryRepository(db *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{DB: db}
}

func (r *DirectoryRepository) GetCompany(ctx context.Context, companyID string) (*models.Company, error) {
	company := &models.Company{}
	err := r.DB.QueryRow(ctx,
		`SELECT company_id, company_name, contact_email, currency FROM companies WHERE company_id = $1`,
		companyID,
	).Scan(&company.CompanyID, &company.CompanyName, &company.ContactEmail, &company.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "company", ID: companyID}
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *DirectoryRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO companies (company_id, company_name, contact_email, currency) VALUES ($1, $2, $3, $4)`,
		company.CompanyID, company.CompanyName, company.ContactEmail, company.Currency)
	return err
}

func (r *DirectoryRepository) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	property := &models.Property{}
	err := r.DB.QueryRow(ctx,
		`SELECT property_id, company_id, name, address FROM properties WHERE property_id = $1`,
		propertyID,
	).Scan(&property.PropertyID, &property.CompanyID, &property.Name, &property.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "property", ID: propertyID}
	}
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (r *DirectoryRepository) CreateProperty(ctx context.Context, property *models.Property) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO properties (property_id, company_id, name, address) VALUES ($1, $2, $3, $4)`,
		property.PropertyID, property.CompanyID, property.Name, property.Address)
	return err
}

// ListCompanyProperties returns every property under a company.
func (r *DirectoryRepository) ListCompanyProperties(ctx context.Context, companyID string) ([]*models.Property, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT property_id, company_id, name, address FROM properties WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		if err := rows.Scan(&property.PropertyID, &property.CompanyID, &property.Name, &property.Address); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}

func (r *DirectoryRepository) GetUnit(ctx context.Context, unitID string) (*models.Unit, error) {
	unit := &models.Unit{}
	err := r.DB.QueryRow(ctx,
		`SELECT unit_id, property_id, COALESCE(tenant_id, ''), unit_number, rental_amount, is_occupied
		 FROM units WHERE unit_id = $1`, unitID,
	).Scan(&unit.UnitID, &unit.PropertyID, &unit.TenantID, &unit.UnitNumber, &unit.RentalAmount, &unit.IsOccupied)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "unit", ID: unitID}
	}
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *DirectoryRepository) CreateUnit(ctx context.Context, unit *models.Unit) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO units (unit_id, property_id, tenant_id, unit_number, rental_amount, is_occupied)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`,
		unit.UnitID, unit.PropertyID, unit.TenantID, unit.UnitNumber, unit.RentalAmount, unit.IsOccupied)
	return err
}

func (r *DirectoryRepository) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := r.DB.QueryRow(ctx,
		`SELECT tenant_id, name, email, cell FROM tenants WHERE tenant_id = $1`, tenantID,
	).Scan(&tenant.TenantID, &tenant.Name, &tenant.Email, &tenant.Cell)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "tenant", ID: tenantID}
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *DirectoryRepository) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO tenants (tenant_id, name, email, cell) VALUES ($1, $2, $3, $4)`,
		tenant.TenantID, tenant.Name, tenant.Email, tenant.Cell)
	return err
}
