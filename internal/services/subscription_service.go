package services

import (
	"context"
	"log"

	"rental-backend/internal/cache"
	"rental-backend/internal/models"
)

// SubscriptionStore reads the plan catalog and company subscriptions.
type SubscriptionStore interface {
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	GetByCompany(ctx context.Context, companyID string) (*models.Subscription, error)
}

// SubscriptionService fronts the subscription store with a shared cache.
// Reads go through the cache; Reload flushes it so the next read repopulates
// from the database.
type SubscriptionService struct {
	Repo  SubscriptionStore
	Cache *cache.Cache
}

func NewSubscriptionService(repo SubscriptionStore, c *cache.Cache) *SubscriptionService {
	return &SubscriptionService{Repo: repo, Cache: c}
}

func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	if plans, ok := s.Cache.GetPlans(ctx); ok {
		return plans, nil
	}
	plans, err := s.Repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetPlans(ctx, plans)
	return plans, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, companyID string) (*models.Subscription, error) {
	if sub, ok := s.Cache.GetSubscription(ctx, companyID); ok {
		return sub, nil
	}
	sub, err := s.Repo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	s.Cache.SetSubscription(ctx, sub)
	return sub, nil
}

// Reload drops every cached entry. Call after plan or subscription edits.
func (s *SubscriptionService) Reload(ctx context.Context) error {
	if err := s.Cache.Flush(ctx); err != nil {
		log.Printf("[Subscription] cache flush failed: %v", err)
		return err
	}
	return nil
}
