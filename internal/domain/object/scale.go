package object

import "math"

// MaxAbsIndex returns the index of the coefficient with the greatest absolute value.
// Ties keep the earliest index. Returns -1 for an empty vector.
func MaxAbsIndex(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	return best
}

// ScaleRatio estimates the factor relating two plane equations that differ only by scale:
// |other[k] / self[k]| where k is MaxAbsIndex(self). Returns 1 when self is all zeros
// or the vectors differ in length.
func ScaleRatio(self, other []float64) float64 {
	k := MaxAbsIndex(self)
	if k < 0 || len(other) != len(self) || self[k] == 0 {
		return 1
	}
	return math.Abs(other[k] / self[k])
}

// Ratio returns ScaleRatio of o's coefficients against other's.
func (o Object) Ratio(other Object) float64 {
	return ScaleRatio(o.coefficients, other.coefficients)
}
