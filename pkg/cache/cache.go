// Package cache provides the optional response cache for read endpoints.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/alloy/pkg/metrics"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Noop never stores anything. It is used when no cache is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Fetch returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and never fail the call.
func Fetch[T any](ctx context.Context, c Cache, logger ectologger.Logger, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if _, ok := c.(Noop); ok {
		return load(ctx)
	}

	raw, err := c.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return value, nil
		}
		logger.WithContext(ctx).WithField("key", key).Warn("discarding undecodable cache entry")
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, ErrMiss):
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("cache lookup failed")
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	raw, err = json.Marshal(value)
	if err != nil {
		logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("failed to encode cache entry")
		return value, nil
	}
	if err := c.Set(ctx, key, raw, ttl); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("failed to store cache entry")
	}

	return value, nil
}
