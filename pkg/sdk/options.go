package surfcmp

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	workers         int
	chunkSize       int
	fixedEpsilon    float64
	relativeEpsilon float64
	maxObjects      int

	driver     string // "valkey" or "redis"; empty disables the cache
	addrs      []string
	password   string
	standalone bool
	cacheTTL   time.Duration
	keyPrefix  string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithWorkers limits the number of goroutines classifying plane pairs.
// Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithChunkSize sets the number of plane pairs per task. Default: 64.
func WithChunkSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.chunkSize = n
	})
}

// WithEpsilon overrides the fixed and relative tolerances. Non-positive values keep the default 1e-12.
func WithEpsilon(fixed, relative float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.fixedEpsilon = fixed
		c.relativeEpsilon = relative
	})
}

// WithMaxObjects rejects calls with more than n records. 0 means unlimited (default).
func WithMaxObjects(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxObjects = n
	})
}

// WithCache caches compare results in a Valkey instance.
// ttl <= 0 keeps entries until evicted.
func WithCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
		c.cacheTTL = ttl
	})
}

// WithRedisCache caches compare results in a Redis instance.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
		c.cacheTTL = ttl
	})
}

// WithStandalone disables cluster topology discovery for the cache.
// Use for standalone Valkey/Redis instances (not managed by cluster operator).
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithCacheKeyPrefix namespaces cache keys. Default: "surfcmp:cmp:".
func WithCacheKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics registers SDK metrics (operation counts, durations and cache
// hits) on the given registerer. Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
