// Package cachesvc provides the Redis-backed stats cache.
package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/report"
)

const statsKey = "smartedu:dashboard:stats"

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ report.Cache = (*RedisStatsCache)(nil)

func NewRedisStatsCache(conf *core.Config) *RedisStatsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	return &RedisStatsCache{client: client, ttl: conf.Redis.StatsTTL}
}

// Ping checks connectivity so that a misconfigured cache is caught at
// startup rather than on the first dashboard hit.
func (c *RedisStatsCache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "pinging redis")
}

func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

func (c *RedisStatsCache) GetStats(ctx context.Context) (report.Stats, bool, error) {
	data, err := c.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return report.Stats{}, false, nil
	}
	if err != nil {
		return report.Stats{}, false, errors.Wrap(err, "reading cached stats")
	}

	var stats report.Stats
	if err = json.Unmarshal(data, &stats); err != nil {
		return report.Stats{}, false, errors.Wrap(err, "decoding cached stats")
	}
	return stats, true, nil
}

func (c *RedisStatsCache) SetStats(ctx context.Context, stats report.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "encoding stats")
	}
	return errors.Wrap(c.client.Set(ctx, statsKey, data, c.ttl).Err(), "writing cached stats")
}
