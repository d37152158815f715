package models

import "time"

// BillableItem is a catalog entry scoped to a property. Items are never hard
// deleted; soft-deleted items stay resolvable for historical invoices.
type BillableItem struct {
	ItemNumber  string `json:"item_number"`
	PropertyID  string `json:"property_id"`
	Description string `json:"description"`
	Multiplier  int    `json:"multiplier"`
	Deleted     bool   `json:"deleted"`
}

type CreateBillableItemRequest struct {
	PropertyID  string `json:"property_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Multiplier  int    `json:"multiplier" validate:"gte=1"`
}

// UnitCharge is one instance of billing a unit/tenant for a billable item.
// Once IsInvoiced is set the charge is consumed and must not change.
type UnitCharge struct {
	ChargeID    string    `json:"charge_id"`
	PropertyID  string    `json:"property_id"`
	TenantID    string    `json:"tenant_id"`
	UnitID      string    `json:"unit_id"`
	ItemNumber  string    `json:"item_number"`
	Amount      int64     `json:"amount"`
	DateOfEntry time.Time `json:"date_of_entry"`
	IsInvoiced  bool      `json:"is_invoiced"`
}

type CreateChargeRequest struct {
	PropertyID  string     `json:"property_id" validate:"required"`
	TenantID    string     `json:"tenant_id" validate:"required"`
	UnitID      string     `json:"unit_id" validate:"required"`
	ItemNumber  string     `json:"item_number" validate:"required"`
	Amount      int64      `json:"amount" validate:"gte=0"`
	DateOfEntry *time.Time `json:"date_of_entry"`
}
