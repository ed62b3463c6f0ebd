package compare

import (
	"context"

	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

// Comparer classifies all object pairs and reports the matches.
// Implemented by Service and by its decorators.
type Comparer interface {
	CompareDetailed(ctx context.Context, objs []object.Object, mode tolerance.Mode) (match.Report, error)
}

var (
	_ Comparer = (*Service)(nil)
	_ Comparer = (*InstrumentedComparer)(nil)
)
