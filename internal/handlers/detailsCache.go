package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const detailsKeyPrefix = "casadados:details:"

// DetailsCache stores registry detail records in Redis, keyed by CNPJ.
// Redis failures are logged and treated as misses.
type DetailsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Entry
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewDetailsCache creates a DetailsCache
func NewDetailsCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *DetailsCache {
	return &DetailsCache{
		client: client,
		ttl:    ttl,
		log:    logger.WithField("component", "DetailsCache"),
	}
}

// DetailsKey returns the cache key of a CNPJ
func DetailsKey(cnpj string) string {
	return detailsKeyPrefix + cnpj
}

// Get returns the cached details of a CNPJ
func (c *DetailsCache) Get(ctx context.Context, cnpj string) (map[string]interface{}, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, DetailsKey(cnpj)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithFields(logrus.Fields{"cnpj": cnpj, "error": err.Error()}).Warn("[DetailsCache] Redis get failed")
		}
		return nil, false
	}

	var details map[string]interface{}
	if err := json.Unmarshal(val, &details); err != nil {
		c.log.WithField("cnpj", cnpj).Warn("[DetailsCache] Dropping unreadable cache entry")
		c.client.Del(ctx, DetailsKey(cnpj))
		return nil, false
	}

	c.log.WithField("cnpj", cnpj).Debug("[DetailsCache] Cache hit")
	return details, true
}

// Set stores the details of a CNPJ for the configured TTL
func (c *DetailsCache) Set(ctx context.Context, cnpj string, details map[string]interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, DetailsKey(cnpj), data, c.ttl).Err(); err != nil {
		c.log.WithFields(logrus.Fields{"cnpj": cnpj, "error": err.Error()}).Warn("[DetailsCache] Redis set failed")
	}
}
