// Package comparecache caches whole compare reports in a key-value store.
package comparecache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"math"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/surfcmp/internal/db"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

// DefaultKeyPrefix namespaces cache keys.
const DefaultKeyPrefix = "surfcmp:cmp:"

// comparer is the decorated compare use case (ISP).
type comparer interface {
	CompareDetailed(ctx context.Context, objs []object.Object, mode tolerance.Mode) (match.Report, error)
}

// strategies resolves the tolerance strategy used for a mode. Its string form is part of the key,
// so changing an epsilon never serves reports computed with the old value.
type strategies interface {
	Strategy(mode tolerance.Mode) tolerance.Strategy
}

// store is the consumer interface for the report cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedComparer serves compare reports from a key-value store.
// Store failures are logged and the inner comparer runs as if the cache were empty.
type CachedComparer struct {
	inner      comparer
	strategies strategies
	store      store
	ttl        time.Duration
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner comparer,
	st strategies,
	s store,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedComparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedComparer{
		inner:      inner,
		strategies: st,
		store:      s,
		prefix:     DefaultKeyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithTTL sets the expiry of cached reports. Zero keeps them until evicted.
func (c *CachedComparer) WithTTL(ttl time.Duration) *CachedComparer {
	if ttl >= 0 {
		c.ttl = ttl
	}
	return c
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func (c *CachedComparer) WithKeyPrefix(prefix string) *CachedComparer {
	if prefix != "" {
		c.prefix = prefix
	}
	return c
}

// CompareDetailed returns a cached report or runs the inner comparer and caches its result.
// Errors are never cached.
func (c *CachedComparer) CompareDetailed(
	ctx context.Context, objs []object.Object, mode tolerance.Mode,
) (match.Report, error) {
	key := c.cacheKey(objs, mode)

	if report, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return report, nil
	}

	c.incCache("miss")

	report, err := c.inner.CompareDetailed(ctx, objs, mode)
	if err != nil {
		return match.Report{}, fmt.Errorf("compare objects: %w", err)
	}

	c.putToCache(ctx, key, report)
	return report, nil
}

func (c *CachedComparer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the strategy and the objects in ascending id order.
// The report depends only on that order, so permutations of objs share a key.
func (c *CachedComparer) cacheKey(objs []object.Object, mode tolerance.Mode) string {
	sorted := slices.Clone(objs)
	slices.SortFunc(sorted, func(a, b object.Object) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})

	h := sha256.New()
	writeString(h, fmt.Sprint(c.strategies.Strategy(mode)))
	writeUint(h, uint64(len(sorted)))
	for _, o := range sorted {
		writeUint(h, uint64(o.ID()))
		writeString(h, o.Kind())
		writeUint(h, uint64(o.Len()))
		for i := range o.Len() {
			writeUint(h, math.Float64bits(o.At(i)))
		}
	}
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

// writeString is length-prefixed so adjacent fields cannot collide.
func writeString(h hash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	_, _ = h.Write([]byte(s))
}

func (c *CachedComparer) getFromCache(ctx context.Context, key string) (match.Report, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached report", zap.String("key", key), zap.Error(err))
		}
		return match.Report{}, false
	}
	if len(data) == 0 {
		return match.Report{}, false
	}

	report, err := decodeReport(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached report, evicting", zap.String("key", key), zap.Error(err))
		if err := c.store.Del(ctx, key); err != nil {
			c.logger.Warn("Failed to evict cached report", zap.String("key", key), zap.Error(err))
		}
		return match.Report{}, false
	}
	return report, true
}

func (c *CachedComparer) putToCache(ctx context.Context, key string, report match.Report) {
	data, err := encodeReport(report)
	if err != nil {
		c.logger.Warn("Failed to encode report", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache report", zap.String("key", key), zap.Error(err))
	}
}
