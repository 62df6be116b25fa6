package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/PaulFidika/sregkit/sreg"
	"github.com/redis/go-redis/v9"
)

// ResponseCache stores responses in Redis as JSON.
type ResponseCache struct {
	rdb   redis.Cmdable
	keyNS string
	ttl   time.Duration
}

// NewResponseCache creates a Redis-backed response cache.
func NewResponseCache(rdb redis.Cmdable, keyPrefix string, ttl time.Duration) *ResponseCache {
	if keyPrefix == "" {
		keyPrefix = "auth:sreg:response:"
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResponseCache{rdb: rdb, keyNS: keyPrefix, ttl: ttl}
}

func (c *ResponseCache) key(k string) string { return c.keyNS + k }

func (c *ResponseCache) Put(ctx context.Context, key string, r *sreg.Response) error {
	if r == nil {
		return sreg.ErrNilResponse
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), b, c.ttl).Err()
}

func (c *ResponseCache) Get(ctx context.Context, key string) (*sreg.Response, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var r sreg.Response
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, false, err
	}
	return &r, true, nil
}

func (c *ResponseCache) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.key(key)).Err()
}

var _ sreg.Cache = (*ResponseCache)(nil)
