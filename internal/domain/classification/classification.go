// Package classification defines the three-valued outcome of a pairwise geometric comparison.
package classification

import "fmt"

// Classification is a nominal comparison outcome. The numeric value is the
// orientation code folded into compare output; it does not imply an order.
type Classification int8

// Classification values.
const (
	Opposite  Classification = -1
	Different Classification = 0
	Same      Classification = 1
)

// Code returns the signed integer used to encode the outcome in output values.
func (c Classification) Code() int64 { return int64(c) }

// IsMatch reports whether the outcome relates the two objects (Same or Opposite).
func (c Classification) IsMatch() bool { return c == Same || c == Opposite }

// IsValid checks if c is one of the three defined outcomes.
func (c Classification) IsValid() bool {
	return c == Same || c == Different || c == Opposite
}

func (c Classification) String() string {
	switch c {
	case Same:
		return "same"
	case Different:
		return "different"
	case Opposite:
		return "opposite"
	default:
		return fmt.Sprintf("unknown(%d)", int8(c))
	}
}

// FromCode converts an orientation code back into a Classification.
func FromCode(code int64) (Classification, error) {
	c := Classification(code)
	if code < -1 || code > 1 || !c.IsValid() {
		return Different, fmt.Errorf("unknown classification code %d", code)
	}
	return c, nil
}
