package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type BillableItemRepository struct {
	DB *pgxpool.Pool
}

func NewBillableItemRepository(db *pgxpool.Pool) *BillableItemRepository {
	return &BillableItemRepository{DB: db}
}

func (r *BillableItemRepository) Create(ctx context.Context, item *models.BillableItem) error {
	query := `
		INSERT INTO billable_items (item_number, property_id, description, multiplier, deleted)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.Exec(ctx, query,
		item.ItemNumber, item.PropertyID, item.Description, item.Multiplier, item.Deleted)
	if err != nil {
		return fmt.Errorf("failed to create billable item: %w", err)
	}
	return nil
}

// Get returns an item by number, soft-deleted included: historical invoices
// must stay resolvable.
func (r *BillableItemRepository) Get(ctx context.Context, itemNumber string) (*models.BillableItem, error) {
	query := `
		SELECT item_number, property_id, description, multiplier, deleted
		FROM billable_items
		WHERE item_number = $1
	`

	item := &models.BillableItem{}
	err := r.DB.QueryRow(ctx, query, itemNumber).Scan(
		&item.ItemNumber, &item.PropertyID, &item.Description, &item.Multiplier, &item.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "billable item", ID: itemNumber}
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns a property's catalog. Soft-deleted items are excluded unless
// includeDeleted is set.
func (r *BillableItemRepository) List(ctx context.Context, propertyID string, includeDeleted bool) ([]*models.BillableItem, error) {
	query := `
		SELECT item_number, property_id, description, multiplier, deleted
		FROM billable_items
		WHERE property_id = $1 AND (deleted = FALSE OR $2)
		ORDER BY description
	`

	rows, err := r.DB.Query(ctx, query, propertyID, includeDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.BillableItem
	for rows.Next() {
		item := &models.BillableItem{}
		if err := rows.Scan(&item.ItemNumber, &item.PropertyID, &item.Description,
			&item.Multiplier, &item.Deleted); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SoftDelete flags the item as deleted without removing the row.
func (r *BillableItemRepository) SoftDelete(ctx context.Context, propertyID, itemNumber string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE billable_items SET deleted = TRUE WHERE property_id = $1 AND item_number = $2`,
		propertyID, itemNumber)
	if err != nil {
		return fmt.Errorf("failed to soft-delete billable item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Entity: "billable item", ID: itemNumber}
	}
	return nil
}
