// Package store persists dice statistics and random tables in Dragonfly and
// Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dryack/gDiceTable/core/statistics"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix    = "dice_stats:"
	statsListKey      = "dice_stats_keys"
	defaultExpiration = 24 * time.Hour
)

// ErrMiss is returned when a key is in neither the cache nor the database.
var ErrMiss = errors.New("store: miss")

// CachedResult is what is kept per canonical expression.
type CachedResult struct {
	Expression string             `json:"expression"`
	Statistics *statistics.Result `json:"statistics"`
}

type Cache interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key string, value *CachedResult) error
	// TryLock sets key if it is absent and reports whether it did.
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type Database interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key string, value *CachedResult) error
}

// DragonflyCache keeps at most maxCacheEntries results, evicting the least
// recently used.
type DragonflyCache struct {
	client          *redis.Client
	maxCacheEntries int
}

func NewDragonflyCache(client *redis.Client, maxCacheEntries int) *DragonflyCache {
	if maxCacheEntries < 1 {
		maxCacheEntries = 1
	}
	return &DragonflyCache{
		client:          client,
		maxCacheEntries: maxCacheEntries,
	}
}

func (c *DragonflyCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	cacheKey := cacheKeyPrefix + key
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var result CachedResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	// Most recently used goes to the front
	pipe := c.client.Pipeline()
	pipe.LRem(ctx, statsListKey, 0, cacheKey)
	pipe.LPush(ctx, statsListKey, cacheKey)
	_, err = pipe.Exec(ctx)
	return &result, err
}

func (c *DragonflyCache) Set(ctx context.Context, key string, value *CachedResult) error {
	cacheKey := cacheKeyPrefix + key
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, cacheKey, data, defaultExpiration)
	pipe.LRem(ctx, statsListKey, 0, cacheKey)
	pipe.LPush(ctx, statsListKey, cacheKey)
	// Delete whatever fell off the end of the list, then trim it
	pipe.Eval(ctx, `
		local keys = redis.call('LRANGE', KEYS[1], ARGV[1], -1)
		if #keys > 0 then
			redis.call('DEL', unpack(keys))
		end
		redis.call('LTRIM', KEYS[1], 0, ARGV[1] - 1)
		return #keys
	`, []string{statsListKey}, c.maxCacheEntries)

	_, err = pipe.Exec(ctx)
	return err
}

func (c *DragonflyCache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
}

type PostgresDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(pool *pgxpool.Pool) *PostgresDB {
	return &PostgresDB{pool: pool}
}

func (db *PostgresDB) Get(ctx context.Context, key string) (*CachedResult, error) {
	var data []byte
	err := db.pool.QueryRow(ctx, "SELECT data FROM dice_results WHERE expression = $1", key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var result CachedResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (db *PostgresDB) Set(ctx context.Context, key string, value *CachedResult) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		"INSERT INTO dice_results (expression, data) VALUES ($1, $2) ON CONFLICT (expression) DO UPDATE SET data = $2",
		key, data)
	return err
}
