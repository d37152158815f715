package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"rental-backend/internal/models"
	"rental-backend/internal/timeutil"
)

// BillableItemStore is the catalog access the charge registry needs.
type BillableItemStore interface {
	Create(ctx context.Context, item *models.BillableItem) error
	Get(ctx context.Context, itemNumber string) (*models.BillableItem, error)
	List(ctx context.Context, propertyID string, includeDeleted bool) ([]*models.BillableItem, error)
	SoftDelete(ctx context.Context, propertyID, itemNumber string) error
}

// ChargeStore is the persistence surface for unit charges.
type ChargeStore interface {
	Create(ctx context.Context, charge *models.UnitCharge) error
	Get(ctx context.Context, chargeID string) (*models.UnitCharge, error)
	GetMany(ctx context.Context, chargeIDs []string) ([]*models.UnitCharge, error)
	ListUninvoiced(ctx context.Context, propertyID, unitID string) ([]*models.UnitCharge, error)
	Delete(ctx context.Context, chargeID string) error
}

type ChargeService struct {
	ItemRepo   BillableItemStore
	ChargeRepo ChargeStore
}

func NewChargeService(itemRepo BillableItemStore, chargeRepo ChargeStore) *ChargeService {
	return &ChargeService{ItemRepo: itemRepo, ChargeRepo: chargeRepo}
}

func (s *ChargeService) CreateBillableItem(ctx context.Context, req *models.CreateBillableItemRequest) (*models.BillableItem, error) {
	multiplier := req.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	item := &models.BillableItem{
		ItemNumber:  uuid.NewString(),
		PropertyID:  req.PropertyID,
		Description: req.Description,
		Multiplier:  multiplier,
	}
	if err := s.ItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListBillableItems returns the live catalog for a property. Soft-deleted
// items are excluded from selection but remain resolvable by number.
func (s *ChargeService) ListBillableItems(ctx context.Context, propertyID string) ([]*models.BillableItem, error) {
	return s.ItemRepo.List(ctx, propertyID, false)
}

func (s *ChargeService) DeleteBillableItem(ctx context.Context, propertyID, itemNumber string) error {
	return s.ItemRepo.SoftDelete(ctx, propertyID, itemNumber)
}

// CreateCharge registers a pending charge against a unit. The referenced
// billable item must exist and be live.
func (s *ChargeService) CreateCharge(ctx context.Context, req *models.CreateChargeRequest) (*models.UnitCharge, error) {
	item, err := s.ItemRepo.Get(ctx, req.ItemNumber)
	if err != nil {
		return nil, err
	}
	if item.Deleted {
		return nil, &models.ValidationError{Field: "item_number", Message: "billable item has been deleted"}
	}
	if item.PropertyID != req.PropertyID {
		return nil, &models.ValidationError{Field: "item_number", Message: "billable item belongs to another property"}
	}
	if req.Amount < 0 {
		return nil, &models.ValidationError{Field: "amount", Message: "amount must not be negative"}
	}

	entryDate := timeutil.Today()
	if req.DateOfEntry != nil {
		entryDate = timeutil.StartOfDay(*req.DateOfEntry)
	}

	charge := &models.UnitCharge{
		ChargeID:    uuid.NewString(),
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		UnitID:      req.UnitID,
		ItemNumber:  req.ItemNumber,
		Amount:      req.Amount,
		DateOfEntry: entryDate,
	}
	if err := s.ChargeRepo.Create(ctx, charge); err != nil {
		return nil, err
	}
	log.Printf("[Charge] registered %s for unit %s (%s)", charge.ChargeID, charge.UnitID, item.Description)
	return charge, nil
}

func (s *ChargeService) GetCharge(ctx context.Context, chargeID string) (*models.UnitCharge, error) {
	return s.ChargeRepo.Get(ctx, chargeID)
}

// ListUninvoicedCharges returns the open charges for a unit, the pool an
// invoice draws from.
func (s *ChargeService) ListUninvoicedCharges(ctx context.Context, propertyID, unitID string) ([]*models.UnitCharge, error) {
	return s.ChargeRepo.ListUninvoiced(ctx, propertyID, unitID)
}

// DeleteCharge removes a pending charge. Consumed charges are immutable; the
// store refuses the delete once is_invoiced is set.
func (s *ChargeService) DeleteCharge(ctx context.Context, chargeID string) error {
	return s.ChargeRepo.Delete(ctx, chargeID)
}
