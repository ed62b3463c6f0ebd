package surfcmp

import "github.com/kailas-cloud/surfcmp/internal/domain/tolerance"

// Mode selects the tolerance strategy.
type Mode string

// Mode constants. Any value other than ModeDynamic compares with a fixed epsilon.
const (
	ModeDynamic Mode = Mode(tolerance.ModeDynamic)
	ModeFixed   Mode = Mode(tolerance.ModeFixed)
)

// KindPlane is the kind label of planes. Any other kind is a general surface.
const KindPlane = "plane"

// Record is one geometric object.
type Record struct {
	Kind         string
	Coefficients []float64
}

// PairResult is one pair that was classified Same or Opposite.
type PairResult struct {
	ID             int64
	Partner        int64
	Category       string // "plane" or "surface"
	Classification string // "same" or "opposite"
	Value          int64  // Partner * code
}

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
