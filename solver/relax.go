/*
 * relax.go, part of pmg.
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package solver

import (
	"math"
)

//pointSystem is what the relaxation sweeps need from a system of equations:
//the residual of the equation at one point and the derivative of that
//equation with respect to the unknown at the same point.
type pointSystem interface {
	residualAt(x []float64, idx int) float64
	diagAt(x []float64, idx int) float64
	grid() *operator
}

//linearPoints is A x = b.
type linearPoints struct {
	op *operator
	b  []float64
}

func (l linearPoints) residualAt(x []float64, idx int) float64 {
	return l.b[idx] - l.op.applyAt(x, idx)
}

func (l linearPoints) diagAt(x []float64, idx int) float64 { return l.op.diag[idx] }

func (l linearPoints) grid() *operator { return l.op }

//nonlinearPoints is N(u) = f. Each relaxation step at a point is one
//Newton step for that point's equation.
type nonlinearPoints struct {
	nop *nonlinearOperator
	f   []float64
}

func (n nonlinearPoints) residualAt(u []float64, idx int) float64 {
	return n.f[idx] - n.nop.lin.laplacianAt(u, idx) - n.nop.c[idx]*math.Sinh(u[idx])
}

func (n nonlinearPoints) diagAt(u []float64, idx int) float64 {
	return n.nop.lin.diag[idx] + n.nop.c[idx]*math.Cosh(u[idx])
}

func (n nonlinearPoints) grid() *operator { return n.nop.lin }

//colorSweep relaxes, in place, the interior points with (i+j+k)%2 == color.
func colorSweep(ps pointSystem, x []float64, color int, omega float64) {
	op := ps.grid()
	nx, ny, nz := op.n[0], op.n[1], op.n[2]
	nxy := nx * ny
	for k := 1; k < nz-1; k++ {
		for j := 1; j < ny-1; j++ {
			start := 1 + (color+j+k+1)%2
			base := k*nxy + j*nx
			for i := start; i < nx-1; i += 2 {
				idx := base + i
				x[idx] += omega * ps.residualAt(x, idx) / ps.diagAt(x, idx)
			}
		}
	}
}

//gsrbSweep is one red-black Gauss-Seidel sweep. If reverse is true the black
//points are relaxed first, which makes a pre-smoothing sweep followed by a
//reverse post-smoothing sweep a symmetric operation.
func gsrbSweep(ps pointSystem, x []float64, reverse bool) {
	if reverse {
		colorSweep(ps, x, 1, 1)
		colorSweep(ps, x, 0, 1)
		return
	}
	colorSweep(ps, x, 0, 1)
	colorSweep(ps, x, 1, 1)
}

//sorSweep is one lexicographic successive over-relaxation sweep.
func sorSweep(ps pointSystem, x []float64, omega float64) {
	ps.grid().eachInterior(func(idx int) {
		x[idx] += omega * ps.residualAt(x, idx) / ps.diagAt(x, idx)
	})
}

//jacobiSweep is one weighted Jacobi sweep. scratch must have the length of x.
func jacobiSweep(ps pointSystem, x, scratch []float64, omega float64) {
	op := ps.grid()
	op.eachInterior(func(idx int) {
		scratch[idx] = omega * ps.residualAt(x, idx) / ps.diagAt(x, idx)
	})
	op.eachInterior(func(idx int) {
		x[idx] += scratch[idx]
	})
}

//richardsonSweep is one Richardson step, x += omega*r, with the step scaled
//by the inverse of a Gershgorin bound on the largest eigenvalue.
func richardsonSweep(ps pointSystem, x, scratch []float64, omega float64) {
	op := ps.grid()
	bound := 0.0
	op.eachInterior(func(idx int) {
		scratch[idx] = ps.residualAt(x, idx)
		if d := 2 * ps.diagAt(x, idx); d > bound {
			bound = d
		}
	})
	if bound == 0 {
		return
	}
	step := omega / bound
	op.eachInterior(func(idx int) {
		x[idx] += step * scratch[idx]
	})
}

//relax runs the given sweep until the residual drops below the tolerance
//(relative to the initial one) or the iteration limit is reached.
//x holds the Dirichlet data on its outer layer.
func relax(m Method, ps pointSystem, x []float64, o *Options) Stats {
	op := ps.grid()
	r := make([]float64, len(x))
	scratch := make([]float64, len(x))
	norm := func() float64 {
		zeroBoundary(op.n, r)
		s := 0.0
		op.eachInterior(func(idx int) {
			r[idx] = ps.residualAt(x, idx)
			s += r[idx] * r[idx]
		})
		return math.Sqrt(s)
	}
	r0 := norm()
	st := Stats{Residual: r0, Initial: r0}
	if r0 == 0 {
		st.Converged = true
		return st
	}
	for st.Iterations < o.MaxIter() {
		switch m {
		case SOR:
			sorSweep(ps, x, o.Omega())
		case GSRB:
			gsrbSweep(ps, x, false)
		case WJAC:
			jacobiSweep(ps, x, scratch, 2.0/3.0)
		case RICH:
			richardsonSweep(ps, x, scratch, 1.0)
		}
		st.Iterations++
		st.Residual = norm()
		o.Log().WithField("iteration", st.Iterations).Debugf("%s residual %g", m, st.Residual/r0)
		if st.Residual/r0 < o.Tol() {
			st.Converged = true
			break
		}
	}
	return st
}
