package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"vrp-route-plotter/internal/domain"
	"vrp-route-plotter/internal/platform/obs"
)

const keyPrefix = "vrp:matrix:"

// RedisMatrixCache stores built cost matrices in Redis as zstd-compressed JSON.
// Entries expire after TTL; a zero TTL keeps them forever.
type RedisMatrixCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{Client: client, TTL: ttl}
}

type cachedMatrix struct {
	IDs   []string  `json:"ids"`
	Costs []float64 `json:"costs"`
}

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Fetch a cached matrix. A missing key is a miss, not an error.
func (c *RedisMatrixCache) Get(ctx context.Context, key string) (_ *domain.CostMatrix, _ bool, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("matrix cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: %w", err)
	}

	plain, err := decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: decompress: %w", err)
	}

	var cm cachedMatrix
	if err := json.Unmarshal(plain, &cm); err != nil {
		return nil, false, fmt.Errorf("get matrix cache: decode: %w", err)
	}

	m, err := domain.CostMatrixFromRows(cm.IDs, cm.Costs)
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: %w", err)
	}
	return m, true, nil
}

// Store a matrix under key.
func (c *RedisMatrixCache) Set(ctx context.Context, key string, m *domain.CostMatrix) error {
	if c.Client == nil {
		return errors.New("matrix cache: redis client is nil")
	}
	if m == nil {
		return errors.New("set matrix cache: matrix is nil")
	}

	plain, err := json.Marshal(cachedMatrix{IDs: m.IDs(), Costs: m.Costs()})
	if err != nil {
		return fmt.Errorf("set matrix cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, keyPrefix+key, encoder.EncodeAll(plain, nil), c.TTL).Err(); err != nil {
		return fmt.Errorf("set matrix cache: %w", err)
	}
	return nil
}
