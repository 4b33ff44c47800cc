// Package cache provides a redis cache-aside layer for catalog reads.
// The catalog is read-only at runtime, so a short TTL is the only
// invalidation needed.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ec-shop/internal/domain/product"
)

const (
	productKeyPrefix = "product:"
	productTTL       = 5 * time.Minute
)

// CachedCatalog wraps a product.Catalog with redis. Cache failures
// fall through to the backing catalog.
type CachedCatalog struct {
	client  *redis.Client
	catalog product.Catalog
}

func NewCachedCatalog(client *redis.Client, catalog product.Catalog) *CachedCatalog {
	return &CachedCatalog{client: client, catalog: catalog}
}

func (c *CachedCatalog) FindByID(ctx context.Context, id string) (*product.Product, error) {
	key := productKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p product.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	p, err := c.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	if data, err := json.Marshal(p); err == nil {
		// Best-effort; a failed set just means a miss next time.
		c.client.Set(ctx, key, data, productTTL)
	}

	return p, nil
}

// List always hits the backing catalog; the full listing is not worth
// keeping coherent in cache.
func (c *CachedCatalog) List(ctx context.Context) ([]product.Product, error) {
	return c.catalog.List(ctx)
}
