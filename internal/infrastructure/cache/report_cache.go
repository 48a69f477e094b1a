package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/ports"
)

const (
	keyPrefix     = "stockledger:"
	generationKey = keyPrefix + "report:gen"
)

var _ ports.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache guarda reportes serializados en JSON con TTL fijo. Cada clave lleva
// la generación vigente; Invalidate incrementa el contador y las claves viejas expiran por TTL.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisReportCache crea el cache sobre un cliente existente; el llamador es dueño del cliente.
func NewRedisReportCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl, log: log}
}

func entryKey(gen int64, k string) string { return fmt.Sprintf("%sg%d:%s", keyPrefix, gen, k) }

func (c *RedisReportCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// Get copia en dst el valor cacheado. Una entrada corrupta se borra y cuenta como miss.
func (c *RedisReportCache) Get(ctx context.Context, key string, dst any) (int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}
	data, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de cache corrupta")
		_ = c.client.Del(ctx, entryKey(gen, key)).Err()
		return gen, false, nil
	}
	return gen, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, gen int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, entryKey(gen, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate abre una nueva generación.
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}
