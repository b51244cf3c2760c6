package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Aside implements the cache-aside pattern: look up key in Redis and
// unmarshal into dest on a hit. On a miss, call fill (which populates dest)
// and store dest under key with the given TTL. When Redis is unavailable it
// falls through to fill directly.
func Aside[T any](ctx context.Context, key string, dest *T, ttl time.Duration, fill func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry, drop it and refill.
			client.Del(ctx, key)
		}
	}

	if err := fill(); err != nil {
		return err
	}

	if client != nil {
		if raw, marshalErr := json.Marshal(dest); marshalErr == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return nil
}
