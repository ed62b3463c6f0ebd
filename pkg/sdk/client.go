package surfcmp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/surfcmp/internal/db"
	dbRedis "github.com/kailas-cloud/surfcmp/internal/db/redis"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
	"github.com/kailas-cloud/surfcmp/internal/repository/comparecache"
	compareuc "github.com/kailas-cloud/surfcmp/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/surfcmp/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// compareUseCase is the internal interface for the classifier, replaceable in tests.
type compareUseCase interface {
	CompareDetailed(ctx context.Context, objs []object.Object, mode tolerance.Mode) (match.Report, error)
}

// Client is the surfcmp SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	compare   compareUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. When a cache is configured the client connects and
// waits for it to become ready.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), defaultReadinessTimeout)
		defer cancel()
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("surfcmp: cache not ready: %w", err)
		}
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
		return nil, errors.New("surfcmp: cache address required")
	}
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("surfcmp: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("surfcmp: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	svc := compareuc.New(nil).
		WithEpsilon(cfg.fixedEpsilon, cfg.relativeEpsilon).
		WithWorkers(cfg.workers).
		WithChunkSize(cfg.chunkSize).
		WithMaxObjects(cfg.maxObjects)

	var cmp compareUseCase = svc
	var cachePinger healthuc.CachePinger
	if store != nil {
		cmp = comparecache.New(svc, svc, store, obs.cacheCounter(), nil).
			WithTTL(cfg.cacheTTL).
			WithKeyPrefix(cfg.keyPrefix)
		cachePinger = store
	}

	return &Client{
		store:     store,
		compare:   cmp,
		healthSvc: healthuc.New(svc, cachePinger),
		obs:       obs,
	}
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Compare classifies every pair of records and returns id → partner_id * code
// for the pairs found Same (+1) or Opposite (-1).
//
// Errors: ErrInvalidObject for a bad record, ErrTooManyObjects above the
// WithMaxObjects limit, ErrDegenerateVector when a pair has only zero
// coefficients. No partial result is returned on error.
func (c *Client) Compare(ctx context.Context, records map[int64]Record, mode Mode) (map[int64]int64, error) {
	report, err := c.run(ctx, "compare", records, mode)
	if err != nil {
		return nil, err
	}
	return report.Mapping(), nil
}

// CompareDetailed is Compare plus every Same/Opposite pair in merge order.
func (c *Client) CompareDetailed(
	ctx context.Context, records map[int64]Record, mode Mode,
) (map[int64]int64, []PairResult, error) {
	report, err := c.run(ctx, "compare_detailed", records, mode)
	if err != nil {
		return nil, nil, err
	}

	pairs := make([]PairResult, len(report.Matches))
	for i, m := range report.Matches {
		pairs[i] = PairResult{
			ID:             m.ID,
			Partner:        m.Partner,
			Category:       string(m.Category),
			Classification: m.Classification.String(),
			Value:          m.Value(),
		}
	}
	return report.Mapping(), pairs, nil
}

func (c *Client) run(ctx context.Context, op string, records map[int64]Record, mode Mode) (match.Report, error) {
	stats := callStats{op: op, mode: mode, objects: len(records), start: time.Now()}

	report, err := c.classify(ctx, records, mode)
	stats.err = err
	stats.matches = len(report.Matches)
	c.obs.observe(stats)

	return report, err
}

func (c *Client) classify(ctx context.Context, records map[int64]Record, mode Mode) (match.Report, error) {
	objs, err := objectsFromRecords(records)
	if err != nil {
		return match.Report{}, err
	}

	report, err := c.compare.CompareDetailed(ctx, objs, tolerance.Mode(mode))
	if err != nil {
		return match.Report{}, fmt.Errorf("surfcmp: %w", err)
	}
	return report, nil
}

func objectsFromRecords(records map[int64]Record) ([]object.Object, error) {
	objs := make([]object.Object, 0, len(records))
	for id, rec := range records {
		o, err := object.New(id, rec.Kind, rec.Coefficients)
		if err != nil {
			return nil, fmt.Errorf("surfcmp: %w", err)
		}
		objs = append(objs, o)
	}
	return objs, nil
}
