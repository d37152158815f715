package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type ChargeRepository struct {
	DB *pgxpool.Pool
}

func NewChargeRepository(db *pgxpool.Pool) *ChargeRepository {
	return &ChargeRepository{DB: db}
}

func (r *ChargeRepository) Create(ctx context.Context, charge *models.UnitCharge) error {
	query := `
		INSERT INTO unit_charges (charge_id, property_id, tenant_id, unit_id, item_number, amount, date_of_entry, is_invoiced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.Exec(ctx, query,
		charge.ChargeID, charge.PropertyID, charge.TenantID, charge.UnitID,
		charge.ItemNumber, charge.Amount, charge.DateOfEntry, charge.IsInvoiced)
	if err != nil {
		return fmt.Errorf("failed to create charge: %w", err)
	}
	return nil
}

func (r *ChargeRepository) Get(ctx context.Context, chargeID string) (*models.UnitCharge, error) {
	query := `
		SELECT charge_id, property_id, tenant_id, unit_id, item_number, amount, date_of_entry, is_invoiced
		FROM unit_charges
		WHERE charge_id = $1
	`

	charge := &models.UnitCharge{}
	err := r.DB.QueryRow(ctx, query, chargeID).Scan(
		&charge.ChargeID, &charge.PropertyID, &charge.TenantID, &charge.UnitID,
		&charge.ItemNumber, &charge.Amount, &charge.DateOfEntry, &charge.IsInvoiced)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "charge", ID: chargeID}
	}
	if err != nil {
		return nil, err
	}
	return charge, nil
}

// GetMany returns the charges for the given ids in the order requested.
// Every id must resolve; a missing charge is a NotFoundError.
func (r *ChargeRepository) GetMany(ctx context.Context, chargeIDs []string) ([]*models.UnitCharge, error) {
	query := `
		SELECT charge_id, property_id, tenant_id, unit_id, item_number, amount, date_of_entry, is_invoiced
		FROM unit_charges
		WHERE charge_id = ANY($1)
	`

	rows, err := r.DB.Query(ctx, query, chargeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*models.UnitCharge, len(chargeIDs))
	for rows.Next() {
		charge := &models.UnitCharge{}
		if err := rows.Scan(&charge.ChargeID, &charge.PropertyID, &charge.TenantID, &charge.UnitID,
			&charge.ItemNumber, &charge.Amount, &charge.DateOfEntry, &charge.IsInvoiced); err != nil {
			return nil, err
		}
		byID[charge.ChargeID] = charge
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	charges := make([]*models.UnitCharge, 0, len(chargeIDs))
	for _, id := range chargeIDs {
		charge, ok := byID[id]
		if !ok {
			return nil, &models.NotFoundError{Entity: "charge", ID: id}
		}
		charges = append(charges, charge)
	}
	return charges, nil
}

func (r *ChargeRepository) ListUninvoiced(ctx context.Context, propertyID, unitID string) ([]*models.UnitCharge, error) {
	query := `
		SELECT charge_id, property_id, tenant_id, unit_id, item_number, amount, date_of_entry, is_invoiced
		FROM unit_charges
		WHERE property_id = $1 AND unit_id = $2 AND is_invoiced = FALSE
		ORDER BY date_of_entry
	`

	rows, err := r.DB.Query(ctx, query, propertyID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.UnitCharge
	for rows.Next() {
		charge := &models.UnitCharge{}
		if err := rows.Scan(&charge.ChargeID, &charge.PropertyID, &charge.TenantID, &charge.UnitID,
			&charge.ItemNumber, &charge.Amount, &charge.DateOfEntry, &charge.IsInvoiced); err != nil {
			return nil, err
		}
		charges = append(charges, charge)
	}
	return charges, rows.Err()
}

// Delete removes a charge only while it is still uninvoiced. Deleting a
// consumed charge would corrupt the invoice that references it.
func (r *ChargeRepository) Delete(ctx context.Context, chargeID string) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM unit_charges WHERE charge_id = $1 AND is_invoiced = FALSE`, chargeID)
	if err != nil {
		return fmt.Errorf("failed to delete charge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.ValidationError{Field: "charge_id", Message: "charge missing or already invoiced"}
	}
	return nil
}

// MarkInvoiced flips is_invoiced on the given charges. The row count must
// match: a shortfall means some charge was already consumed.
func (r *ChargeRepository) MarkInvoiced(ctx context.Context, chargeIDs []string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE unit_charges SET is_invoiced = TRUE WHERE charge_id = ANY($1) AND is_invoiced = FALSE`,
		chargeIDs)
	if err != nil {
		return fmt.Errorf("failed to mark charges invoiced: %w", err)
	}
	if int(tag.RowsAffected()) != len(chargeIDs) {
		return &models.ValidationError{Field: "charge_ids", Message: "one or more charges already invoiced"}
	}
	return nil
}
