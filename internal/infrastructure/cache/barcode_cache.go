package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient creates a Redis client from configuration
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// BarcodeCache is a read-through cache over the barcode registry. Scans at
// point of sale hit this path on every sale, so lookups are served from
// Redis and refilled from the repository on miss. Completion invalidates
// affected barcodes so rebinds become visible immediately.
type BarcodeCache struct {
	client *redis.Client
	repo   inventory.BarcodeRegistryRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewBarcodeCache creates a barcode cache
func NewBarcodeCache(client *redis.Client, repo inventory.BarcodeRegistryRepository, ttl time.Duration, logger *zap.Logger) *BarcodeCache {
	return &BarcodeCache{
		client: client,
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

func barcodeKey(storeID uuid.UUID, barcode string) string {
	return fmt.Sprintf("barcode:%s:%s", storeID, barcode)
}

// Lookup resolves a barcode to its binding, serving from cache when warm.
// Cache failures degrade to direct repository reads.
func (c *BarcodeCache) Lookup(ctx context.Context, storeID uuid.UUID, barcode string) (*inventory.BarcodeBinding, error) {
	key := barcodeKey(storeID, barcode)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var binding inventory.BarcodeBinding
		if err := json.Unmarshal(cached, &binding); err == nil {
			return &binding, nil
		}
		c.logger.Warn("Dropping corrupt barcode cache entry", zap.String("key", key))
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Barcode cache read failed", zap.String("key", key), zap.Error(err))
	}

	binding, err := c.repo.FindByBarcode(ctx, storeID, barcode)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(binding); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("Barcode cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return binding, nil
}

// Invalidate drops cached entries for the given barcodes
func (c *BarcodeCache) Invalidate(ctx context.Context, storeID uuid.UUID, barcodes ...string) {
	if len(barcodes) == 0 {
		return
	}
	keys := make([]string, len(barcodes))
	for i, barcode := range barcodes {
		keys[i] = barcodeKey(storeID, barcode)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Barcode cache invalidation failed",
			zap.Strings("keys", keys),
			zap.Error(err))
	}
}
