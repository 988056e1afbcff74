package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"smartcart/internal/domain"
)

// ProductCache fronts the products resource with a TTL cache. Products are
// read-only reference data for the session flow, so a stale entry can only be
// as old as the TTL.
type ProductCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{Client: client, TTL: ttl}
}

func (c *ProductCache) key(barcode string) string {
	return "product:" + barcode
}

// Product returns the cached product for a barcode, or (nil, nil) on a miss.
func (c *ProductCache) Product(ctx context.Context, barcode string) (*domain.Product, error) {
	data, err := c.Client.Get(ctx, c.key(barcode)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.key(product.Barcode), data, c.TTL).Err()
}
