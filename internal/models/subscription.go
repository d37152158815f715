package models

import "time"

// Plan is a subscription plan from the billing catalog.
type Plan struct {
	PlanID        string `json:"plan_id"`
	Name          string `json:"name"`
	PricePerMonth int64  `json:"price_per_month"`
	MaxProperties int    `json:"max_properties"`
	MaxUnits      int    `json:"max_units"`
}

// Subscription ties a company to a plan.
type Subscription struct {
	SubscriptionID string    `json:"subscription_id"`
	CompanyID      string    `json:"company_id"`
	PlanID         string    `json:"plan_id"`
	IsActive       bool      `json:"is_active"`
	StartedAt      time.Time `json:"started_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
