/*
 * cg.go, part of pmg.
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
	"gonum.org/v1/gonum/floats"
)

//preconditioner puts an approximation of A^-1 r in z. Both vectors are zero
//on the boundary.
type preconditioner interface {
	precondition(r, z []float64)
}

//jacobi is the diagonal preconditioner.
type jacobi struct {
	op *operator
}

func (p jacobi) precondition(r, z []float64) {
	for i := range z {
		z[i] = 0
	}
	p.op.eachInterior(func(idx int) {
		z[idx] = r[idx] / p.op.diag[idx]
	})
}

//pcg solves A x = b with the preconditioned conjugate gradient method.
//x is the initial guess and must be zero on the boundary; b is only read
//on the interior.
func pcg(op *operator, b, x []float64, pre preconditioner, name string, o *Options) Stats {
	n := len(x)
	r := make([]float64, n)
	z := make([]float64, n)
	p := make([]float64, n)
	q := make([]float64, n)
	st := Stats{}
	res := op.residual(b, x, r)
	st.Initial, st.Residual = res, res
	if res == 0 {
		st.Converged = true
		return st
	}
	ref := res
	pre.precondition(r, z)
	copy(p, z)
	rz := floats.Dot(r, z)
	for st.Iterations < o.MaxIter() {
		op.apply(p, q)
		pq := floats.Dot(p, q)
		if pq <= 0 {
			//The operator or the preconditioner is not positive definite
			//in this direction, there is nothing left to gain.
			o.Log().Warnf("%s: breakdown at iteration %d", name, st.Iterations)
			break
		}
		alpha := rz / pq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		st.Iterations++
		st.Residual = floats.Norm(r, 2)
		o.Log().WithField("iteration", st.Iterations).Debugf("%s residual %g", name, st.Residual/ref)
		if st.Residual/ref < o.Tol() {
			st.Converged = true
			break
		}
		pre.precondition(r, z)
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		floats.AddScaledTo(p, z, beta, p)
	}
	return st
}
