package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rental-backend/internal/config"
	"rental-backend/internal/models"
)

const (
	plansKey           = "billing:plans"
	subscriptionKeyFmt = "billing:subscription:%s"
)

// Cache is a read-through cache for the plan/subscription catalog. A nil
// client degrades to a permanent miss so callers fall back to the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. On failure it returns a degraded cache and the
// connection error; the service keeps running without caching.
func New(cfg *config.Config) (*Cache, error) {
	ttl := time.Duration(cfg.Redis.TTLSecs) * time.Second
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return &Cache{client: nil, ttl: ttl}, err
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// GetPlans returns the cached plan catalog, if present.
func (c *Cache) GetPlans(ctx context.Context) ([]*models.Plan, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, plansKey).Bytes()
	if err != nil {
		return nil, false
	}
	var plans []*models.Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, false
	}
	return plans, true
}

// SetPlans caches the plan catalog for the configured TTL.
func (c *Cache) SetPlans(ctx context.Context, plans []*models.Plan) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return
	}
	c.client.Set(ctx, plansKey, data, c.ttl)
}

// GetSubscription returns a company's cached subscription, if present.
func (c *Cache) GetSubscription(ctx context.Context, companyID string) (*models.Subscription, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key := fmt.Sprintf(subscriptionKeyFmt, companyID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var sub models.Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, false
	}
	return &sub, true
}

// SetSubscription caches a company's subscription for the configured TTL.
func (c *Cache) SetSubscription(ctx context.Context, sub *models.Subscription) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return
	}
	c.client.Set(ctx, fmt.Sprintf(subscriptionKeyFmt, sub.CompanyID), data, c.ttl)
}

// Flush drops every billing cache entry. Used by the explicit reload path.
func (c *Cache) Flush(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, "billing:*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	return iter.Err()
}
