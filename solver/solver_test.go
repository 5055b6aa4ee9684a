package solver

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rmera/pmg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//newSystem returns a system on an n^3 mesh with unit spacing, unit edge
//coefficients and no screening, source or boundary data.
func newSystem(Te *testing.T, n int) *System {
	g, err := mesh.New([3]int{n, n, n}, [3]float64{1, 1, 1}, [3]float64{})
	require.NoError(Te, err)
	l := g.Len()
	s := &System{
		Geom:     g,
		A1:       make([]float64, l),
		A2:       make([]float64, l),
		A3:       make([]float64, l),
		CCF:      make([]float64, l),
		FCF:      make([]float64, l),
		U:        make([]float64, l),
		Boundary: mesh.NewBoundary(g.N),
	}
	for i := 0; i < l; i++ {
		s.A1[i], s.A2[i], s.A3[i] = 1, 1, 1
	}
	return s
}

func linearField(p [3]float64) float64 {
	return p[0] + 2*p[1] - 0.5*p[2] + 3
}

//setLinearBoundary puts a linear function on the faces. The discrete
//Laplace equation reproduces it exactly in the interior.
func setLinearBoundary(s *System) {
	g := s.Geom
	n := g.N
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			f := s.Boundary.XFace(j, k)
			f.Lo = linearField(g.Point(0, j, k))
			f.Hi = linearField(g.Point(n[0]-1, j, k))
		}
		for i := 0; i < n[0]; i++ {
			f := s.Boundary.YFace(i, k)
			f.Lo = linearField(g.Point(i, 0, k))
			f.Hi = linearField(g.Point(i, n[1]-1, k))
		}
	}
	for j := 0; j < n[1]; j++ {
		for i := 0; i < n[0]; i++ {
			f := s.Boundary.ZFace(i, j)
			f.Lo = linearField(g.Point(i, j, 0))
			f.Hi = linearField(g.Point(i, j, n[2]-1))
		}
	}
}

func TestLaplaceAllMethods(Te *testing.T) {
	for m := CGMG; m <= RICH; m++ {
		s := newSystem(Te, 9)
		setLinearBoundary(s)
		o := DefaultOptions()
		o.Tol(1e-10)
		o.MaxIter(5000)
		st, err := Solve(m, s, o)
		require.NoError(Te, err, m.String())
		assert.True(Te, st.Converged, m.String())
		for idx := range s.U {
			i, j, k := s.Geom.IJK(idx)
			assert.InDelta(Te, linearField(s.Geom.Point(i, j, k)), s.U[idx], 1e-6, "%s at %d", m, idx)
		}
	}
}

//randomSystem has variable coefficients, screening and sources.
func randomSystem(Te *testing.T, n int, seed int64) *System {
	s := newSystem(Te, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range s.U {
		s.A1[i] = 1 + 2*rng.Float64()
		s.A2[i] = 1 + 2*rng.Float64()
		s.A3[i] = 1 + 2*rng.Float64()
		s.CCF[i] = rng.Float64()
		s.FCF[i] = rng.Float64() - 0.5
	}
	for i := range s.Boundary.X {
		s.Boundary.X[i].Lo = 0.1
	}
	return s
}

func TestMethodsAgree(Te *testing.T) {
	var ref []float64
	for _, m := range []Method{CGHS, CGMG, MG, Newton, GSRB, SOR} {
		s := randomSystem(Te, 17, 42)
		o := DefaultOptions()
		o.Tol(1e-10)
		o.MaxIter(5000)
		st, err := Solve(m, s, o)
		require.NoError(Te, err)
		require.True(Te, st.Converged, m.String())
		if ref == nil {
			ref = s.U
			continue
		}
		for i := range ref {
			assert.InDelta(Te, ref[i], s.U[i], 1e-6, "%s at %d", m, i)
		}
	}
}

func TestMultigridFasterThanJacobiCG(Te *testing.T) {
	its := map[Method]int{}
	for _, m := range []Method{CGHS, CGMG} {
		s := randomSystem(Te, 33, 7)
		o := DefaultOptions()
		o.Tol(1e-8)
		st, err := Solve(m, s, o)
		require.NoError(Te, err)
		require.True(Te, st.Converged)
		its[m] = st.Iterations
	}
	assert.Less(Te, its[CGMG], its[CGHS])
}

func TestUnknownMethod(Te *testing.T) {
	s := newSystem(Te, 5)
	setLinearBoundary(s)
	_, err := Solve(Method(8), s, nil)
	require.Error(Te, err)
	_, err = Solve(Method(-1), s, nil)
	require.Error(Te, err)
	//Nothing was computed, not even the boundary.
	for _, v := range s.U {
		assert.Equal(Te, 0.0, v)
	}
}

func TestIncompleteSystem(Te *testing.T) {
	s := newSystem(Te, 5)
	s.FCF = s.FCF[:3]
	_, err := Solve(CGHS, s, nil)
	assert.Error(Te, err)
	_, err = Solve(CGHS, nil, nil)
	assert.Error(Te, err)
}

func TestNonlinearRejectedByCG(Te *testing.T) {
	for _, m := range []Method{CGMG, CGHS} {
		s := newSystem(Te, 5)
		s.Nonlinear = true
		_, err := Solve(m, s, nil)
		assert.Error(Te, err)
	}
}

func TestNonlinear(Te *testing.T) {
	var ref []float64
	for _, m := range []Method{Newton, MG, GSRB} {
		s := randomSystem(Te, 9, 3)
		for i := range s.FCF {
			s.FCF[i] *= 4
		}
		s.Nonlinear = true
		o := DefaultOptions()
		o.Tol(1e-10)
		o.MaxIter(5000)
		st, err := Solve(m, s, o)
		require.NoError(Te, err)
		require.True(Te, st.Converged, m.String())
		//Check the discrete equation directly.
		nop := newNonlinearOperator(s.Geom.N, s.Geom.H, s.A1, s.A2, s.A3, s.CCF)
		r := make([]float64, len(s.U))
		res := nop.residual(s.FCF, s.U, r)
		assert.Less(Te, res, 1e-6)
		if ref == nil {
			ref = s.U
			continue
		}
		for i := range ref {
			assert.InDelta(Te, ref[i], s.U[i], 1e-6)
		}
	}
}

func TestNonlinearSmallPotentialIsLinear(Te *testing.T) {
	lin := randomSystem(Te, 9, 11)
	non := randomSystem(Te, 9, 11)
	for i := range lin.FCF {
		lin.FCF[i] *= 1e-4
		non.FCF[i] *= 1e-4
	}
	for i := range lin.Boundary.X {
		lin.Boundary.X[i].Lo = 0
		non.Boundary.X[i].Lo = 0
	}
	non.Nonlinear = true
	o := DefaultOptions()
	o.Tol(1e-10)
	_, err := Solve(CGHS, lin, o)
	require.NoError(Te, err)
	_, err = Solve(Newton, non, o)
	require.NoError(Te, err)
	for i := range lin.U {
		assert.InDelta(Te, lin.U[i], non.U[i], 1e-9)
	}
}

func TestParseMethod(Te *testing.T) {
	m, err := ParseMethod("GSRB")
	require.NoError(Te, err)
	assert.Equal(Te, GSRB, m)
	m, err = ParseMethod("0")
	require.NoError(Te, err)
	assert.Equal(Te, CGMG, m)
	_, err = ParseMethod("multigrid")
	assert.Error(Te, err)
	assert.Equal(Te, "method(9)", Method(9).String())
}

func TestCoarsenConstant(Te *testing.T) {
	s := newSystem(Te, 9)
	for i := range s.A1 {
		s.A1[i] = 4
	}
	op := newOperator(s.Geom.N, s.Geom.H, s.A1, s.A2, s.A3, s.CCF)
	c := coarsen(op)
	assert.Equal(Te, [3]int{5, 5, 5}, c.n)
	assert.Equal(Te, [3]float64{2, 2, 2}, c.h)
	assert.Equal(Te, 4.0, c.a1[0])
	assert.Equal(Te, 1.0, c.a2[0])
	assert.InDelta(Te, 3.0, harmonic(2, 6), 1e-12)
	assert.Equal(Te, 0.0, harmonic(0, 0))
	assert.False(Te, math.IsNaN(c.diag[c.len()/2]))
}
