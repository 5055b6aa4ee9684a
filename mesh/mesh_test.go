package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryLimits(Te *testing.T) {
	g, err := New([3]int{65, 33, 17}, [3]float64{0.5, 1.0, 0.25}, [3]float64{1.0, -2.0, 3.5})
	require.NoError(Te, err)
	for a := 0; a < 3; a++ {
		half := float64(g.N[a]-1) * g.H[a] / 2
		assert.InDelta(Te, g.Center[a]-half, g.Min(a), 1e-12)
		assert.InDelta(Te, g.Center[a]+half, g.Max(a), 1e-12)
		assert.InDelta(Te, g.Max(a), g.Coord(a, g.N[a]-1), 1e-12)
		assert.Equal(Te, g.Min(a), g.Coord(a, 0))
	}
	assert.Equal(Te, 65*33*17, g.Len())
	assert.False(Te, g.Uniform())
}

func TestGeometryInvalid(Te *testing.T) {
	_, err := New([3]int{2, 33, 33}, [3]float64{1, 1, 1}, [3]float64{})
	assert.Error(Te, err)
	_, err = New([3]int{33, 33, 33}, [3]float64{1, 0, 1}, [3]float64{})
	assert.Error(Te, err)
}

func TestIndexRoundTrip(Te *testing.T) {
	g, err := New([3]int{5, 9, 17}, [3]float64{1, 1, 1}, [3]float64{})
	require.NoError(Te, err)
	for _, p := range [][3]int{{0, 0, 0}, {4, 8, 16}, {2, 3, 7}} {
		idx := g.Index(p[0], p[1], p[2])
		i, j, k := g.IJK(idx)
		assert.Equal(Te, p, [3]int{i, j, k})
	}
	assert.Equal(Te, 1, g.Index(1, 0, 0))
	assert.Equal(Te, 5, g.Index(0, 1, 0))
	assert.Equal(Te, 45, g.Index(0, 0, 1))
}

func TestContains(Te *testing.T) {
	outer, _ := New([3]int{33, 33, 33}, [3]float64{1, 1, 1}, [3]float64{})
	inner, _ := New([3]int{17, 17, 17}, [3]float64{1, 1, 1}, [3]float64{})
	same, _ := New([3]int{33, 33, 33}, [3]float64{1, 1, 1}, [3]float64{})
	shifted, _ := New([3]int{17, 17, 17}, [3]float64{1, 1, 1}, [3]float64{9, 0, 0})
	assert.True(Te, outer.Contains(inner, Tolerance))
	assert.True(Te, outer.Contains(same, Tolerance))
	assert.False(Te, outer.Contains(shifted, Tolerance))
	assert.False(Te, inner.Contains(outer, Tolerance))
}

func TestBoxContains(Te *testing.T) {
	g, err := New([3]int{17, 17, 17}, [3]float64{0.3, 0.3, 0.3}, [3]float64{-3.3, -3.3, -3.3})
	require.NoError(Te, err)
	b := g.Box()
	for _, ijk := range [][3]int{{0, 0, 0}, {16, 16, 16}, {16, 0, 8}, {3, 16, 16}} {
		assert.True(Te, b.Contains(g.Point(ijk[0], ijk[1], ijk[2])), "%v", ijk)
	}
	//The last coordinate is the upper limit.
	for a := 0; a < 3; a++ {
		assert.Equal(Te, g.Max(a), g.Coord(a, g.N[a]-1))
	}
	h := 0.3
	assert.False(Te, b.Contains([3]float64{g.Max(X) + h/1000, -3.3, -3.3}))
	assert.False(Te, b.Contains([3]float64{-3.3, g.Min(Y) - h/1000, -3.3}))
	assert.False(Te, b.Contains([3]float64{-3.3, -3.3, math.NaN()}))
	far := Box{Min: [3]float64{1000, 1000, 1000}, Max: [3]float64{1000.3, 1000.3, 1000.3}}
	assert.True(Te, far.Contains([3]float64{1000 + 0.1 + 0.2, 1000, 1000.3}))
}

func TestStencilCorners(Te *testing.T) {
	g, _ := New([3]int{5, 5, 5}, [3]float64{1, 1, 1}, [3]float64{})
	field := make([]float64, g.Len())
	for i := range field {
		field[i] = float64(i*i) * 0.5
	}
	//Interpolation at a grid point returns that grid point's value.
	for _, p := range [][3]int{{0, 0, 0}, {4, 4, 4}, {1, 2, 3}, {4, 0, 2}} {
		s := g.StencilAt(g.Point(p[0], p[1], p[2]))
		require.True(Te, s.InBounds(g))
		assert.Equal(Te, field[g.Index(p[0], p[1], p[2])], s.Interpolate(g, field))
	}
	//A linear field is reproduced exactly anywhere.
	for i := range field {
		x, y, z := g.IJK(i)
		field[i] = 2*g.Coord(X, x) - g.Coord(Y, y) + 0.5*g.Coord(Z, z) + 1
	}
	p := [3]float64{0.3, -1.7, 1.2}
	s := g.StencilAt(p)
	assert.InDelta(Te, 2*p[0]-p[1]+0.5*p[2]+1, s.Interpolate(g, field), 1e-12)
}

func TestStencilWeightsSum(Te *testing.T) {
	g, _ := New([3]int{9, 9, 9}, [3]float64{0.5, 0.7, 1.1}, [3]float64{0.1, 0.2, 0.3})
	for _, p := range [][3]float64{{0, 0, 0}, {1.234, -0.5, 2.2}, {g.Min(X), g.Min(Y), g.Min(Z)}} {
		s := g.StencilAt(p)
		sum := 0.0
		s.Each(g, func(idx int, w float64) { sum += w })
		assert.InDelta(Te, 1.0, sum, 1e-12)
	}
}

func TestDepositConserves(Te *testing.T) {
	g, _ := New([3]int{9, 9, 9}, [3]float64{1, 1, 1}, [3]float64{})
	field := make([]float64, g.Len())
	s := g.StencilAt([3]float64{0.37, -1.21, 2.9})
	s.Deposit(g, field, 3.5)
	total := 0.0
	for _, v := range field {
		total += v
	}
	assert.InDelta(Te, 3.5, total, 1e-12)
}

func TestStencilOutOfBounds(Te *testing.T) {
	g, _ := New([3]int{5, 5, 5}, [3]float64{1, 1, 1}, [3]float64{})
	assert.False(Te, g.StencilAt([3]float64{2.5, 0, 0}).InBounds(g))
	assert.False(Te, g.StencilAt([3]float64{0, -2.01, 0}).InBounds(g))
	c := g.ClampedStencilAt([3]float64{2 + 1e-15, 0, 0})
	assert.True(Te, c.InBounds(g))
}

func TestLevels(Te *testing.T) {
	assert.Equal(Te, 6, Levels(65))
	assert.Equal(Te, 5, Levels(33))
	assert.Equal(Te, 1, Levels(3))
	assert.Equal(Te, 2, Levels(7))
	assert.Equal(Te, 65, Count(2, 4))
	assert.Equal(Te, 97, Count(3, 4))
}

func TestBoundaryApply(Te *testing.T) {
	g, _ := New([3]int{5, 7, 9}, [3]float64{1, 1, 1}, [3]float64{})
	b := NewBoundary(g.N)
	for i := range b.X {
		b.X[i].Lo, b.X[i].Hi = 1, 2
	}
	for i := range b.Y {
		b.Y[i].Lo, b.Y[i].Hi = 3, 4
	}
	for i := range b.Z {
		b.Z[i].Lo, b.Z[i].Hi = 5, 6
	}
	field := make([]float64, g.Len())
	b.Apply(g, field)
	assert.Equal(Te, 1.0, field[g.Index(0, 3, 3)])
	assert.Equal(Te, 2.0, field[g.Index(4, 3, 3)])
	assert.Equal(Te, 3.0, field[g.Index(2, 0, 3)])
	assert.Equal(Te, 4.0, field[g.Index(2, 6, 3)])
	assert.Equal(Te, 5.0, field[g.Index(2, 3, 0)])
	assert.Equal(Te, 6.0, field[g.Index(2, 3, 8)])
	assert.Equal(Te, 0.0, field[g.Index(2, 3, 4)])
	assert.False(Te, math.IsNaN(field[0]))
}
