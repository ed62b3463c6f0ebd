package compare

import (
	"context"
	"fmt"
	"maps"

	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

// selfCheckObjects covers both categories, both outcomes and plane scaling.
var selfCheckObjects = []object.Object{
	object.Reconstruct(1, object.KindPlane, []float64{1, 2, 3, 4}),
	object.Reconstruct(2, object.KindPlane, []float64{2, 4, 6, 8}),
	object.Reconstruct(3, "sphere", []float64{1, 0, 0, 1, 0, 0, 1, 0, 0, -4}),
	object.Reconstruct(4, "sphere", []float64{-1, 0, 0, -1, 0, 0, -1, 0, 0, 4}),
}

var selfCheckWant = map[int64]int64{2: 1, 4: -3}

// SelfCheck runs a fixed comparison and verifies the mapping.
func (s *Service) SelfCheck(ctx context.Context) error {
	got, err := s.Compare(ctx, selfCheckObjects, tolerance.ModeDynamic)
	if err != nil {
		return fmt.Errorf("self check: %w", err)
	}
	if !maps.Equal(got, selfCheckWant) {
		return fmt.Errorf("self check: got %v, want %v", got, selfCheckWant)
	}
	return nil
}
