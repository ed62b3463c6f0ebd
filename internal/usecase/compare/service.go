package compare

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/surfcmp/internal/domain"
	"github.com/kailas-cloud/surfcmp/internal/domain/consensus"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/pair"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

// DefaultChunkSize is the number of plane pairs classified per task.
const DefaultChunkSize = 64

// Service classifies every pair of objects within the plane and surface groups.
//
// Plane pairs are classified in parallel; surface pairs run sequentially after the
// plane results are merged. Pairs are enumerated in ascending id order and merged in
// that order, planes first, so when an id matches several partners the last pair wins.
type Service struct {
	fixedEps    float64
	relativeEps float64
	workers     int
	chunkSize   int
	maxObjects  int
	logger      *zap.Logger
}

// New creates a compare service with default epsilons and one worker per CPU.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fixedEps:    tolerance.DefaultFixedEpsilon,
		relativeEps: tolerance.DefaultRelativeEpsilon,
		workers:     runtime.GOMAXPROCS(0),
		chunkSize:   DefaultChunkSize,
		logger:      logger,
	}
}

// WithEpsilon overrides the fixed and relative epsilons. Non-positive values are ignored.
func (s *Service) WithEpsilon(fixed, relative float64) *Service {
	if fixed > 0 {
		s.fixedEps = fixed
	}
	if relative > 0 {
		s.relativeEps = relative
	}
	return s
}

// WithWorkers limits the number of concurrent plane tasks.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithChunkSize sets the number of plane pairs per task.
func (s *Service) WithChunkSize(n int) *Service {
	if n > 0 {
		s.chunkSize = n
	}
	return s
}

// WithMaxObjects rejects requests with more than n objects. 0 means unlimited.
func (s *Service) WithMaxObjects(n int) *Service {
	if n >= 0 {
		s.maxObjects = n
	}
	return s
}

// Strategy returns the tolerance strategy the service uses for mode.
func (s *Service) Strategy(mode tolerance.Mode) tolerance.Strategy {
	return tolerance.Select(mode, s.fixedEps, s.relativeEps)
}

// Compare returns the id → partner_id*code mapping for objs.
func (s *Service) Compare(ctx context.Context, objs []object.Object, mode tolerance.Mode) (map[int64]int64, error) {
	report, err := s.CompareDetailed(ctx, objs, mode)
	if err != nil {
		return nil, err
	}
	return report.Mapping(), nil
}

// CompareDetailed classifies all pairs and returns every match in merge order.
// Any classification error aborts the call and no partial report is returned.
func (s *Service) CompareDetailed(
	ctx context.Context, objs []object.Object, mode tolerance.Mode,
) (match.Report, error) {
	if s.maxObjects > 0 && len(objs) > s.maxObjects {
		return match.Report{}, fmt.Errorf("%d objects, limit %d: %w", len(objs), s.maxObjects, domain.ErrTooManyObjects)
	}

	planes, surfaces, err := object.Partition(objs)
	if err != nil {
		return match.Report{}, fmt.Errorf("partition objects: %w", err)
	}

	strategy := s.Strategy(mode)
	start := time.Now()

	planeMatches, err := s.comparePlanes(ctx, planes, strategy)
	if err != nil {
		return match.Report{}, fmt.Errorf("compare planes: %w", err)
	}

	surfaceMatches, err := s.compareSurfaces(ctx, surfaces, strategy)
	if err != nil {
		return match.Report{}, fmt.Errorf("compare surfaces: %w", err)
	}

	report := match.Report{
		Matches: append(planeMatches, surfaceMatches...),
		Pairs: map[object.Category]int{
			object.Plane:   pair.Count(planes.Len()),
			object.Surface: pair.Count(surfaces.Len()),
		},
	}

	s.logger.Debug("Compare completed",
		zap.String("strategy", strategy.Name()),
		zap.Int("planes", planes.Len()),
		zap.Int("surfaces", surfaces.Len()),
		zap.Int("pairs", report.TotalPairs()),
		zap.Int("matches", len(report.Matches)),
		zap.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// comparePlanes fans plane pairs out over an errgroup. Each task owns one slot of
// results, so no locking is needed; the merge after Wait keeps pair order.
func (s *Service) comparePlanes(
	ctx context.Context, g *object.Group, strategy tolerance.Strategy,
) (match.List, error) {
	chunks := pair.Chunks(pair.All(g.IDs()), s.chunkSize)
	if len(chunks) == 0 {
		return nil, nil
	}

	results := make([]match.List, len(chunks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, chunk := range chunks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out, err := classifyPairs(g, chunk, strategy)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}

	var merged match.List
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

func (s *Service) compareSurfaces(
	ctx context.Context, g *object.Group, strategy tolerance.Strategy,
) (match.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	return classifyPairs(g, pair.All(g.IDs()), strategy)
}

// classifyPairs classifies pairs in order and keeps the non-Different outcomes.
func classifyPairs(g *object.Group, pairs []pair.Pair, strategy tolerance.Strategy) (match.List, error) {
	var out match.List
	for _, p := range pairs {
		a, okA := g.Get(p.First)
		b, okB := g.Get(p.Second)
		if !okA || !okB {
			return nil, fmt.Errorf("pair %d/%d not in %s group", p.First, p.Second, g.Category())
		}

		c, err := consensus.Classify(a, b, strategy)
		if err != nil {
			return nil, fmt.Errorf("classify: %w", err)
		}
		if !c.IsMatch() {
			continue
		}
		out = append(out, match.Match{
			ID:             p.Second,
			Partner:        p.First,
			Category:       g.Category(),
			Classification: c,
		})
	}
	return out, nil
}
