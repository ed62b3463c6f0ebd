package tolerance

// Mode selects the tolerance strategy for a compare call.
type Mode string

// Mode constants. Any value other than ModeDynamic behaves as ModeFixed.
const (
	ModeDynamic Mode = "Dynamic"
	ModeFixed   Mode = "Fixed"
)

// IsDynamic reports whether m selects the relative strategy.
func (m Mode) IsDynamic() bool { return m == ModeDynamic }

// Label returns a bounded label for metrics and logs ("dynamic" or "fixed").
func (m Mode) Label() string {
	if m.IsDynamic() {
		return "dynamic"
	}
	return "fixed"
}

// Select returns the strategy for m using the given epsilons.
func Select(m Mode, fixedEps, relativeEps float64) Strategy {
	if m.IsDynamic() {
		return Relative{Epsilon: relativeEps}
	}
	return Fixed{Epsilon: fixedEps}
}

// Default returns the strategy for m with the default epsilons.
func Default(m Mode) Strategy {
	return Select(m, DefaultFixedEpsilon, DefaultRelativeEpsilon)
}
