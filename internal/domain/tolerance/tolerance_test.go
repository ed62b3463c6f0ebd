package tolerance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/surfcmp/internal/domain/classification"
)

func TestFixed_Compare(t *testing.T) {
	f := Fixed{Epsilon: DefaultFixedEpsilon}

	tests := []struct {
		name string
		a, b float64
		want classification.Classification
	}{
		{"Equal", 3.5, 3.5, classification.Same},
		{"WithinEpsilon", 1, 1 + 1e-13, classification.Same},
		{"Negated", 2, -2, classification.Opposite},
		{"NegatedWithinEpsilon", 2, -2 - 1e-13, classification.Opposite},
		{"BothZero", 0, 0, classification.Same},
		{"TinyOppositeIsSame", 1e-13, -1e-13, classification.Same},
		{"Different", 1, 2, classification.Different},
		{"OneZero", 0, 1, classification.Different},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Compare(tt.a, tt.b))
		})
	}
}

func TestRelative_Compare(t *testing.T) {
	r := Relative{Epsilon: DefaultRelativeEpsilon}

	tests := []struct {
		name string
		a, b float64
		want classification.Classification
	}{
		{"Equal", 3.5, 3.5, classification.Same},
		{"LargeEqual", 1e20, 1e20, classification.Same},
		{"RelativeNoise", 1e20, 1e20 + 1e6, classification.Same},
		{"Negated", 2, -2, classification.Opposite},
		{"BothZero", 0, 0, classification.Same},
		{"TinyOpposite", 1e-13, -1e-13, classification.Opposite},
		{"TinyDifferent", 1e-13, 3e-13, classification.Different},
		{"Different", 1, 2, classification.Different},
		{"OneZero", 0, 1, classification.Different},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Compare(tt.a, tt.b))
		})
	}
}

func TestRelative_ScaleInvariant(t *testing.T) {
	r := Relative{Epsilon: DefaultRelativeEpsilon}
	pairs := [][2]float64{{2, 3}, {5, -5}, {0, 0}, {7, 7}, {1e-3, 2e-3}, {4, 0}, {-1.25, -1.25}}
	scales := []float64{2, -3, 0.5, 1e6, -1e-4}

	for _, p := range pairs {
		want := r.Compare(p[0], p[1])
		for _, k := range scales {
			assert.Equal(t, want, r.Compare(k*p[0], k*p[1]), "pair=%v k=%v", p, k)
		}
	}
}

func TestFixed_NotScaleInvariant(t *testing.T) {
	f := Fixed{Epsilon: DefaultFixedEpsilon}
	a, b := 1e-13, 3e-13

	assert.Equal(t, classification.Same, f.Compare(a, b))
	assert.Equal(t, classification.Different, f.Compare(1e3*a, 1e3*b))
}

func TestStrategy_SelfAndNegation(t *testing.T) {
	values := []float64{1, -7.5, 1e-6, 123456.789, 1e15}
	for _, s := range []Strategy{Fixed{Epsilon: DefaultFixedEpsilon}, Relative{Epsilon: DefaultRelativeEpsilon}} {
		for _, v := range values {
			assert.Equal(t, classification.Same, s.Compare(v, v), "%s(%v, %v)", s.Name(), v, v)
			assert.Equal(t, classification.Opposite, s.Compare(v, -v), "%s(%v, %v)", s.Name(), v, -v)
		}
	}
}

func TestSelect(t *testing.T) {
	s := Select(ModeDynamic, 1e-6, 1e-9)
	rel, ok := s.(Relative)
	assert.True(t, ok)
	assert.InDelta(t, 1e-9, rel.Epsilon, 0)

	for _, m := range []Mode{ModeFixed, "", "dynamic", "anything"} {
		s := Select(m, 1e-6, 1e-9)
		fixed, ok := s.(Fixed)
		assert.True(t, ok, "mode %q", m)
		assert.InDelta(t, 1e-6, fixed.Epsilon, 0)
	}
}

func TestMode_Label(t *testing.T) {
	assert.Equal(t, "dynamic", ModeDynamic.Label())
	assert.Equal(t, "fixed", ModeFixed.Label())
	assert.Equal(t, "fixed", Mode("DYNAMIC").Label())
}

func TestDefault(t *testing.T) {
	assert.Equal(t, Relative{Epsilon: DefaultRelativeEpsilon}, Default(ModeDynamic))
	assert.Equal(t, Fixed{Epsilon: DefaultFixedEpsilon}, Default(ModeFixed))
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "fixed(1e-12)", Fixed{Epsilon: 1e-12}.String())
	assert.Equal(t, "relative(0.001)", Relative{Epsilon: 1e-3}.String())
}
