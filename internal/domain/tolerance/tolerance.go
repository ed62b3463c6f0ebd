// Package tolerance provides approximate equality of scalar coefficients.
//
// Two strategies are available:
//   - Fixed: absolute threshold, |a-b| <= eps
//   - Relative: threshold scaled by operand magnitude, |a-b| <= |a+b|*eps
//
// Both report Same before Opposite, so (0, 0) is always Same.
package tolerance

import (
	"math"
	"strconv"

	"github.com/kailas-cloud/surfcmp/internal/domain/classification"
)

// Default epsilons for the two strategies.
const (
	DefaultFixedEpsilon    = 1e-12
	DefaultRelativeEpsilon = 1e-12
)

// Strategy classifies a pair of scalars as Same, Opposite or Different.
type Strategy interface {
	Compare(a, b float64) classification.Classification
	Name() string
}

// Fixed compares with an absolute epsilon.
type Fixed struct {
	Epsilon float64
}

// Compare returns Same if |a-b| <= eps, else Opposite if |a+b| <= eps, else Different.
func (f Fixed) Compare(a, b float64) classification.Classification {
	if math.Abs(a-b) <= f.Epsilon {
		return classification.Same
	}
	if math.Abs(a+b) <= f.Epsilon {
		return classification.Opposite
	}
	return classification.Different
}

// Name returns the strategy name.
func (Fixed) Name() string { return "fixed" }

func (f Fixed) String() string { return describe(f.Name(), f.Epsilon) }

// Relative compares with an epsilon scaled by the operands.
// Compare(k*a, k*b) == Compare(a, b) for any nonzero k.
type Relative struct {
	Epsilon float64
}

// Compare returns Same if |a-b| <= |a+b|*eps, else Opposite if |a+b| <= |a-b|*eps, else Different.
func (r Relative) Compare(a, b float64) classification.Classification {
	diff := math.Abs(a - b)
	sum := math.Abs(a + b)
	if diff <= sum*r.Epsilon {
		return classification.Same
	}
	if sum <= diff*r.Epsilon {
		return classification.Opposite
	}
	return classification.Different
}

// Name returns the strategy name.
func (Relative) Name() string { return "relative" }

func (r Relative) String() string { return describe(r.Name(), r.Epsilon) }

// describe renders a strategy with its epsilon, e.g. "fixed(1e-12)".
func describe(name string, eps float64) string {
	return name + "(" + strconv.FormatFloat(eps, 'g', -1, 64) + ")"
}

var (
	_ Strategy = Fixed{}
	_ Strategy = Relative{}
)
