package consensus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/surfcmp/internal/domain"
	"github.com/kailas-cloud/surfcmp/internal/domain/classification"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
)

var strategies = []tolerance.Strategy{
	tolerance.Fixed{Epsilon: tolerance.DefaultFixedEpsilon},
	tolerance.Relative{Epsilon: tolerance.DefaultRelativeEpsilon},
}

func scaled(v []float64, k float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = k * v[i]
	}
	return out
}

func TestClassify_Identical(t *testing.T) {
	vectors := [][]float64{
		{1, 2, 3, 4},
		{0, -1.5, 0, 2e6},
		{1e-3, 7, 0, 0, 0, 0, 0, 0, 0, -1},
	}
	for _, s := range strategies {
		for _, kind := range []string{"plane", "sphere"} {
			for _, v := range vectors {
				a := object.Reconstruct(1, kind, v)
				b := object.Reconstruct(2, kind, v)
				got, err := Classify(a, b, s)
				require.NoError(t, err)
				assert.Equal(t, classification.Same, got, "%s %s %v", s.Name(), kind, v)
			}
		}
	}
}

func TestClassify_Negated(t *testing.T) {
	vectors := [][]float64{
		{1, 2, 3, 4},
		{0, -1.5, 0, 2e6},
		{3, 3, 3},
	}
	for _, s := range strategies {
		for _, kind := range []string{"plane", "cone"} {
			for _, v := range vectors {
				a := object.Reconstruct(1, kind, v)
				b := object.Reconstruct(2, kind, scaled(v, -1))
				got, err := Classify(a, b, s)
				require.NoError(t, err)
				assert.Equal(t, classification.Opposite, got, "%s %s %v", s.Name(), kind, v)
			}
		}
	}
}

func TestClassify_PlaneScaleInvariance(t *testing.T) {
	rel := tolerance.Relative{Epsilon: tolerance.DefaultRelativeEpsilon}
	planes := [][]float64{
		{1, 2, 3, 4},
		{0, 3, -4, 1},
		{0.3, -0.7, 0.1, 12.5},
	}
	for _, p := range planes {
		for _, k := range []float64{2, 0.5, 3, 1e3, 1e-3, 7.25, 0.1} {
			a := object.Reconstruct(1, "plane", p)

			got, err := Classify(a, object.Reconstruct(2, "plane", scaled(p, k)), rel)
			require.NoError(t, err)
			assert.Equal(t, classification.Same, got, "plane=%v k=%v", p, k)

			got, err = Classify(a, object.Reconstruct(2, "plane", scaled(p, -k)), rel)
			require.NoError(t, err)
			assert.Equal(t, classification.Opposite, got, "plane=%v k=%v", p, -k)
		}
	}
}

func TestClassify_PlaneScaledFixed(t *testing.T) {
	fixed := tolerance.Fixed{Epsilon: tolerance.DefaultFixedEpsilon}
	a := object.Reconstruct(1, "plane", []float64{1, 2, 3, 4})
	b := object.Reconstruct(2, "plane", []float64{2, 4, 6, 8})

	got, err := Classify(a, b, fixed)
	require.NoError(t, err)
	assert.Equal(t, classification.Same, got)
}

func TestClassify_SurfacesNotNormalized(t *testing.T) {
	for _, s := range strategies {
		a := object.Reconstruct(1, "sphere", []float64{1, 2, 3, 4})
		b := object.Reconstruct(2, "sphere", []float64{2, 4, 6, 8})
		got, err := Classify(a, b, s)
		require.NoError(t, err)
		assert.Equal(t, classification.Different, got, s.Name())
	}
}

func TestClassify_ShapeMismatch(t *testing.T) {
	for _, s := range strategies {
		got, err := Classify(
			object.Reconstruct(1, "sphere", []float64{1, 2, 3}),
			object.Reconstruct(2, "cylinder", []float64{1, 2, 3}),
			s,
		)
		require.NoError(t, err)
		assert.Equal(t, classification.Different, got)

		got, err = Classify(
			object.Reconstruct(1, "plane", []float64{1, 2, 3, 4}),
			object.Reconstruct(2, "plane", []float64{1, 2, 3}),
			s,
		)
		require.NoError(t, err)
		assert.Equal(t, classification.Different, got)

		// Shape mismatch wins even when every coefficient is zero.
		got, err = Classify(
			object.Reconstruct(1, "sphere", []float64{0, 0}),
			object.Reconstruct(2, "cone", []float64{0, 0}),
			s,
		)
		require.NoError(t, err)
		assert.Equal(t, classification.Different, got)
	}
}

func TestClassify_NoConsensus(t *testing.T) {
	for _, s := range strategies {
		got, err := Classify(
			object.Reconstruct(1, "sphere", []float64{1, 2}),
			object.Reconstruct(2, "sphere", []float64{1, -2}),
			s,
		)
		require.NoError(t, err)
		assert.Equal(t, classification.Different, got, s.Name())
	}
}

func TestClassify_ZeroPositionsSkipped(t *testing.T) {
	for _, s := range strategies {
		got, err := Classify(
			object.Reconstruct(1, "torus", []float64{0, 1, 0, -2}),
			object.Reconstruct(2, "torus", []float64{0, -1, 0, 2}),
			s,
		)
		require.NoError(t, err)
		assert.Equal(t, classification.Opposite, got)

		// Zero against nonzero is informative.
		got, err = Classify(
			object.Reconstruct(1, "torus", []float64{0, 1}),
			object.Reconstruct(2, "torus", []float64{1, 1}),
			s,
		)
		require.NoError(t, err)
		assert.Equal(t, classification.Different, got)
	}
}

func TestClassify_Degenerate(t *testing.T) {
	cases := []struct {
		name string
		a, b object.Object
	}{
		{"all zero surfaces", object.Reconstruct(3, "sphere", []float64{0, 0, 0}), object.Reconstruct(4, "sphere", []float64{0, 0, 0})},
		{"all zero planes", object.Reconstruct(3, "plane", []float64{0, 0, 0, 0}), object.Reconstruct(4, "plane", []float64{0, 0, 0, 0})},
		{"empty", object.Reconstruct(3, "sphere", nil), object.Reconstruct(4, "sphere", nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range strategies {
				_, err := Classify(tc.a, tc.b, s)
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrDegenerateVector))

				var de *DegenerateError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, int64(3), de.First)
				assert.Equal(t, int64(4), de.Second)
			}
		})
	}
}

func TestClassify_ZeroSelfPlane(t *testing.T) {
	rel := tolerance.Relative{Epsilon: tolerance.DefaultRelativeEpsilon}
	got, err := Classify(
		object.Reconstruct(1, "plane", []float64{0, 0, 0, 0}),
		object.Reconstruct(2, "plane", []float64{0, 0, 1, 0}),
		rel,
	)
	require.NoError(t, err)
	assert.Equal(t, classification.Different, got)
}
