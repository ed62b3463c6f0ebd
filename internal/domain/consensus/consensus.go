// Package consensus classifies a pair of geometric objects by requiring every
// informative coefficient position to agree on one scalar classification.
package consensus

import (
	"fmt"

	"github.com/kailas-cloud/surfcmp/internal/domain"
	"github.com/kailas-cloud/surfcmp/internal/domain/classification"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

// DegenerateError reports a pair whose coefficients are (0, 0) at every position.
type DegenerateError struct {
	First  int64
	Second int64
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("objects %d and %d: %s", e.First, e.Second, domain.ErrDegenerateVector.Error())
}

func (e *DegenerateError) Unwrap() error { return domain.ErrDegenerateVector }

// normalizer returns the factor applied to the first object's coefficients before comparison.
type normalizer func(a, b object.Object) float64

// Planes are defined up to a nonzero scale; surfaces are compared as given.
var normalizers = map[object.Category]normalizer{
	object.Plane:   func(a, b object.Object) float64 { return a.Ratio(b) },
	object.Surface: func(object.Object, object.Object) float64 { return 1 },
}

// Classify compares a and b position by position with strategy s.
//
// Objects of different kind or coefficient count are Different. Positions where both
// coefficients are exactly zero are skipped. The remaining positions must all produce the
// same classification, otherwise the result is Different. When no position remains a
// *DegenerateError is returned.
func Classify(a, b object.Object, s tolerance.Strategy) (classification.Classification, error) {
	if !a.SameShape(b) {
		return classification.Different, nil
	}

	ratio := normalizers[a.Category()](a, b)

	var (
		first classification.Classification
		seen  bool
	)
	for i := range a.Len() {
		va, vb := a.At(i), b.At(i)
		if va == 0 && vb == 0 {
			continue
		}
		c := s.Compare(ratio*va, vb)
		if !seen {
			first, seen = c, true
			continue
		}
		if c != first {
			return classification.Different, nil
		}
	}

	if !seen {
		return classification.Different, &DegenerateError{First: a.ID(), Second: b.ID()}
	}
	return first, nil
}
