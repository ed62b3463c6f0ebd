package comparecache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/surfcmp/internal/db"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

type mockComparer struct {
	report match.Report
	err    error
	calls  int
}

func (m *mockComparer) CompareDetailed(context.Context, []object.Object, tolerance.Mode) (match.Report, error) {
	m.calls++
	return m.report, m.err
}

type mockStrategies struct {
	fixed, relative float64
}

func (m mockStrategies) Strategy(mode tolerance.Mode) tolerance.Strategy {
	return tolerance.Select(mode, m.fixed, m.relative)
}

// mockKVStore is an in-memory store with optional overrides.
type mockKVStore struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	getFn   func(ctx context.Context, key string) ([]byte, error)
	setFn   func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn   func(ctx context.Context, key string) error
	setKeys []string
	delKeys []string
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setKeys = append(m.setKeys, key)
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	m.delKeys = append(m.delKeys, key)
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

func newCacheCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
}

func newTestCachedComparer(t *testing.T, inner *mockComparer) (*CachedComparer, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := newMockKVStore()
	counter := newCacheCounter()
	cc := New(inner, mockStrategies{fixed: 1e-12, relative: 1e-12}, ms, counter, zap.NewNop())
	return cc, ms, counter
}
