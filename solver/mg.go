/*
 * mg.go, part of pmg.
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

//Sweeps used to solve the coarsest level, in forward/reverse pairs.
const coarseSweeps = 30

//level is one grid of the multigrid hierarchy, with its work arrays.
type level struct {
	op *operator
	b  []float64
	x  []float64
	r  []float64
}

func newLevel(op *operator) *level {
	l := op.len()
	return &level{
		op: op,
		b:  make([]float64, l),
		x:  make([]float64, l),
		r:  make([]float64, l),
	}
}

//multigrid is a hierarchy of rediscretized operators, coarsened by a factor
//of 2 per level, with V-cycles on top.
type multigrid struct {
	levels []*level
	smooth int
}

//coarsenable returns true if a grid with n points per axis can be coarsened
//into another grid with at least 3 points per axis.
func coarsenable(n [3]int) bool {
	for _, v := range n {
		if (v-1)%2 != 0 || (v-1)/2+1 < 3 {
			return false
		}
	}
	return true
}

//newMultigrid builds up to maxLevels levels (0 means as many as possible).
func newMultigrid(op *operator, maxLevels, smooth int) *multigrid {
	mg := &multigrid{smooth: smooth}
	mg.levels = append(mg.levels, newLevel(op))
	for coarsenable(op.n) && (maxLevels <= 0 || len(mg.levels) < maxLevels) {
		op = coarsen(op)
		mg.levels = append(mg.levels, newLevel(op))
	}
	return mg
}

//harmonic returns the series combination of two edge coefficients.
func harmonic(a, b float64) float64 {
	if a+b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

//coarsen returns the operator rediscretized on a grid with twice the spacing.
//Each coarse edge spans two fine edges, whose coefficients are combined in
//series. The reaction term is injected.
func coarsen(op *operator) *operator {
	var n [3]int
	var h [3]float64
	for a := 0; a < 3; a++ {
		n[a] = (op.n[a]-1)/2 + 1
		h[a] = 2 * op.h[a]
	}
	l := n[0] * n[1] * n[2]
	a1 := make([]float64, l)
	a2 := make([]float64, l)
	a3 := make([]float64, l)
	c := make([]float64, l)
	fnx, fnxy := op.n[0], op.n[0]*op.n[1]
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				ci := k*n[0]*n[1] + j*n[0] + i
				fi := 2*k*fnxy + 2*j*fnx + 2*i
				c[ci] = op.c[fi]
				if i < n[0]-1 {
					a1[ci] = harmonic(op.a1[fi], op.a1[fi+1])
				}
				if j < n[1]-1 {
					a2[ci] = harmonic(op.a2[fi], op.a2[fi+fnx])
				}
				if k < n[2]-1 {
					a3[ci] = harmonic(op.a3[fi], op.a3[fi+fnxy])
				}
			}
		}
	}
	return newOperator(n, h, a1, a2, a3, c)
}

//fullWeight is the 1D full weighting stencil.
var fullWeight = [3]float64{0.5, 1, 0.5}

//restrict puts the full weighting restriction of the fine vector r in the
//coarse vector b.
func restrict(fine, coarse *operator, r, b []float64) {
	for i := range b {
		b[i] = 0
	}
	fnx, fnxy := fine.n[0], fine.n[0]*fine.n[1]
	cnx, cnxy := coarse.n[0], coarse.n[0]*coarse.n[1]
	coarse.eachInterior(func(ci int) {
		k := ci / cnxy
		j := (ci - k*cnxy) / cnx
		i := ci - k*cnxy - j*cnx
		center := 2*k*fnxy + 2*j*fnx + 2*i
		sum := 0.0
		for dk := -1; dk <= 1; dk++ {
			for dj := -1; dj <= 1; dj++ {
				w := fullWeight[dk+1] * fullWeight[dj+1]
				row := center + dk*fnxy + dj*fnx
				sum += w * (0.5*r[row-1] + r[row] + 0.5*r[row+1])
			}
		}
		b[ci] = sum / 8
	})
}

//prolongAdd adds the trilinear interpolation of the coarse vector e to the
//interior of the fine vector x.
func prolongAdd(fine, coarse *operator, e, x []float64) {
	cnx, cnxy := coarse.n[0], coarse.n[0]*coarse.n[1]
	fnx, fnxy := fine.n[0], fine.n[0]*fine.n[1]
	fine.eachInterior(func(fi int) {
		k := fi / fnxy
		j := (fi - k*fnxy) / fnx
		i := fi - k*fnxy - j*fnx
		val := 0.0
		for _, kk := range parents(k) {
			for _, jj := range parents(j) {
				for _, ii := range parents(i) {
					val += kk.w * jj.w * ii.w * e[kk.i*cnxy+jj.i*cnx+ii.i]
				}
			}
		}
		x[fi] += val
	})
}

type parent struct {
	i int
	w float64
}

//parents returns the coarse indices that contribute to fine index f, with
//their weights.
func parents(f int) []parent {
	if f%2 == 0 {
		return []parent{{f / 2, 1}}
	}
	return []parent{{f / 2, 0.5}, {f/2 + 1, 0.5}}
}

//vcycle improves the approximation x to the solution of A x = b on level l.
func (mg *multigrid) vcycle(l int, b, x []float64) {
	lv := mg.levels[l]
	ps := linearPoints{op: lv.op, b: b}
	if l == len(mg.levels)-1 {
		for s := 0; s < coarseSweeps; s++ {
			gsrbSweep(ps, x, false)
			gsrbSweep(ps, x, true)
		}
		return
	}
	for s := 0; s < mg.smooth; s++ {
		gsrbSweep(ps, x, false)
	}
	lv.op.residual(b, x, lv.r)
	next := mg.levels[l+1]
	restrict(lv.op, next.op, lv.r, next.b)
	for i := range next.x {
		next.x[i] = 0
	}
	mg.vcycle(l+1, next.b, next.x)
	prolongAdd(lv.op, next.op, next.x, x)
	for s := 0; s < mg.smooth; s++ {
		gsrbSweep(ps, x, true)
	}
}

//precondition applies one V-cycle with a zero initial guess.
func (mg *multigrid) precondition(r, z []float64) {
	for i := range z {
		z[i] = 0
	}
	mg.vcycle(0, r, z)
}

//mgSolve solves A x = b with V-cycles. x must be zero on the boundary.
func mgSolve(op *operator, b, x []float64, o *Options) Stats {
	mg := newMultigrid(op, o.Levels(), o.Smooth())
	r := make([]float64, len(x))
	r0 := op.residual(b, x, r)
	st := Stats{Initial: r0, Residual: r0}
	if r0 == 0 {
		st.Converged = true
		return st
	}
	for st.Iterations < o.MaxIter() {
		mg.vcycle(0, b, x)
		st.Iterations++
		st.Residual = op.residual(b, x, r)
		o.Log().WithField("iteration", st.Iterations).Debugf("%s residual %g", MG, st.Residual/r0)
		if st.Residual/r0 < o.Tol() {
			st.Converged = true
			break
		}
	}
	return st
}

//cgmgSolve solves A x = b with conjugate gradients preconditioned by one
//V-cycle per iteration.
func cgmgSolve(op *operator, b, x []float64, o *Options) Stats {
	mg := newMultigrid(op, o.Levels(), o.Smooth())
	return pcg(op, b, x, mg, CGMG.String(), o)
}

//cghsSolve solves A x = b with Jacobi preconditioned conjugate gradients.
func cghsSolve(op *operator, b, x []float64, o *Options) Stats {
	return pcg(op, b, x, jacobi{op}, CGHS.String(), o)
}
