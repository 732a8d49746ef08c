// internal/app/store/kv/redis.go
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores each document in a hash with "value" and "ver" fields so
// the version travels with the blob and conditional writes stay atomic.
type Redis struct {
	client *redis.Client
}

// setIfVersion compares the stored version before replacing the value.
// Absent keys count as version 0.
var setIfVersionScript = redis.NewScript(`
local ver = tonumber(redis.call('HGET', KEYS[1], 'ver') or '0')
if ver ~= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'value', ARGV[1], 'ver', ver + 1)
return 1
`)

// NewRedis creates a Store backed by the given Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.HGet(ctx, key, "value").Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return val, true, nil
}

func (r *Redis) GetVersioned(ctx context.Context, key string) (Versioned, bool, error) {
	vals, err := r.client.HMGet(ctx, key, "value", "ver").Result()
	if err != nil {
		return Versioned{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if vals[0] == nil {
		return Versioned{}, false, nil
	}

	doc := Versioned{Value: vals[0].(string)}
	if s, ok := vals[1].(string); ok {
		if _, err := fmt.Sscanf(s, "%d", &doc.Version); err != nil {
			return Versioned{}, false, fmt.Errorf("%w: bad version for %q: %v", ErrUnavailable, key, err)
		}
	}
	return doc, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, "value", value)
	pipe.HIncrBy(ctx, key, "ver", 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) SetIfVersion(ctx context.Context, key, value string, version int64) error {
	ok, err := setIfVersionScript.Run(ctx, r.client, []string{key}, value, version).Int()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if ok == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
