package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type SubscriptionRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT plan_id, name, price_per_month, max_properties, max_units FROM plans ORDER BY price_per_month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan := &models.Plan{}
		if err := rows.Scan(&plan.PlanID, &plan.Name, &plan.PricePerMonth, &plan.MaxProperties, &plan.MaxUnits); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *SubscriptionRepository) GetByCompany(ctx context.Context, companyID string) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := r.DB.QueryRow(ctx,
		`SELECT subscription_id, company_id, plan_id, started_at, expires_at, is_active
		 FROM subscriptions WHERE company_id = $1 AND is_active = TRUE
		 ORDER BY started_at DESC LIMIT 1`, companyID,
	).Scan(&sub.SubscriptionID, &sub.CompanyID, &sub.PlanID, &sub.StartedAt, &sub.ExpiresAt, &sub.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Entity: "subscription", ID: companyID}
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}
