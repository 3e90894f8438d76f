package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

func newGraph(t *testing.T, v collatz.Variant) *collatz.Graph {
	t.Helper()
	g, err := collatz.New(v)
	require.NoError(t, err)
	return g
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("histogram")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestOrbitLength(t *testing.T) {
	s, err := Compute(newGraph(t, collatz.Full), KindOrbitLength, 10)
	require.NoError(t, err)

	want := []Point{
		{2, 1}, {3, 7}, {4, 2}, {5, 5}, {6, 8}, {7, 16}, {8, 3}, {9, 19}, {10, 6},
	}
	assert.Equal(t, want, s.Points)
	assert.Equal(t, KindOrbitLength, s.Kind)
	assert.Equal(t, collatz.Full, s.Variant)
	assert.Equal(t, uint64(10), s.Max)
	assert.Equal(t, Bounds{MinX: 2, MaxX: 10, MinY: 1, MaxY: 19}, s.Bounds())
}

func TestFractionAbove(t *testing.T) {
	s, err := Compute(newGraph(t, collatz.Full), KindFractionAbove, 10)
	require.NoError(t, err)
	require.Len(t, s.Points, 9)

	// 3 -> 10 5 16 8 4 2: five of seven steps sit above 3.
	assert.Equal(t, Point{3, 5.0 / 7.0}, s.Points[1])
	// Powers of two only descend.
	assert.Equal(t, Point{8, 0}, s.Points[6])
	for _, p := range s.Points {
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 1.0)
	}
}

func TestAncestorDist(t *testing.T) {
	s, err := Compute(newGraph(t, collatz.Full), KindAncestorDist, 10)
	require.NoError(t, err)
	require.Len(t, s.Points, 9)

	assert.Equal(t, Point{0, 1}, s.Points[0]) // 2 against the root
	assert.Equal(t, Point{0, 6}, s.Points[1]) // 3 merges into 2
	assert.Equal(t, Point{5, 0}, s.Points[2]) // 3 passes through 4
}

func TestComputeOtherVariants(t *testing.T) {
	tests := []struct {
		variant collatz.Variant
		xs      []float64
	}{
		{collatz.Short, []float64{2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{collatz.Odd, []float64{3, 5, 7, 9}},
		{collatz.Compact, []float64{5, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			s, err := Compute(newGraph(t, tt.variant), KindOrbitLength, 10)
			require.NoError(t, err)
			var xs []float64
			for _, p := range s.Points {
				xs = append(xs, p.X)
				assert.Positive(t, p.Y)
			}
			assert.Equal(t, tt.xs, xs)
		})
	}
}

func TestComputeErrors(t *testing.T) {
	_, err := Compute(newGraph(t, collatz.Full), Kind("nope"), 10)
	assert.ErrorIs(t, err, ErrUnknownKind)

	s, err := Compute(newGraph(t, collatz.Full), KindOrbitLength, 1)
	require.NoError(t, err)
	assert.Empty(t, s.Points)
	assert.Equal(t, Bounds{}, s.Bounds())
}
