/*
 * operator.go, part of pmg.
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

	"gonum.org/v1/gonum/floats"
)

//operator is the 7-point finite volume discretization of
// -div(a grad u) + c u
//on a grid with n points per axis. Only interior points are unknowns,
//the outer layer holds Dirichlet data.
//a1[idx] is the coefficient of the edge between idx and idx+1 along x,
//and so on for a2 (y) and a3 (z).
type operator struct {
	n          [3]int
	h          [3]float64
	a1, a2, a3 []float64
	c          []float64
	ih2        [3]float64
	diag       []float64
}

func newOperator(n [3]int, h [3]float64, a1, a2, a3, c []float64) *operator {
	op := &operator{n: n, h: h, a1: a1, a2: a2, a3: a3, c: c}
	for a := 0; a < 3; a++ {
		op.ih2[a] = 1.0 / (h[a] * h[a])
	}
	op.diag = make([]float64, len(c))
	op.eachInterior(func(idx int) {
		op.diag[idx] = op.diagLaplacian(idx) + c[idx]
	})
	return op
}

func (op *operator) len() int {
	return op.n[0] * op.n[1] * op.n[2]
}

//eachInterior calls f with the flat index of every interior point, x fastest.
func (op *operator) eachInterior(f func(idx int)) {
	nx, ny, nz := op.n[0], op.n[1], op.n[2]
	nxy := nx * ny
	for k := 1; k < nz-1; k++ {
		for j := 1; j < ny-1; j++ {
			base := k*nxy + j*nx
			for i := 1; i < nx-1; i++ {
				f(base + i)
			}
		}
	}
}

//diagLaplacian returns the diagonal of the second order part at idx.
func (op *operator) diagLaplacian(idx int) float64 {
	nx := op.n[0]
	nxy := nx * op.n[1]
	return (op.a1[idx-1]+op.a1[idx])*op.ih2[0] +
		(op.a2[idx-nx]+op.a2[idx])*op.ih2[1] +
		(op.a3[idx-nxy]+op.a3[idx])*op.ih2[2]
}

//laplacianAt returns the second order part of the operator applied to u at idx.
func (op *operator) laplacianAt(u []float64, idx int) float64 {
	nx := op.n[0]
	nxy := nx * op.n[1]
	ui := u[idx]
	return (op.a1[idx-1]*(ui-u[idx-1])+op.a1[idx]*(ui-u[idx+1]))*op.ih2[0] +
		(op.a2[idx-nx]*(ui-u[idx-nx])+op.a2[idx]*(ui-u[idx+nx]))*op.ih2[1] +
		(op.a3[idx-nxy]*(ui-u[idx-nxy])+op.a3[idx]*(ui-u[idx+nxy]))*op.ih2[2]
}

//applyAt returns (Au)[idx].
func (op *operator) applyAt(u []float64, idx int) float64 {
	return op.laplacianAt(u, idx) + op.c[idx]*u[idx]
}

//apply puts Au in out. Boundary entries of out are set to zero.
func (op *operator) apply(u, out []float64) {
	zeroBoundary(op.n, out)
	op.eachInterior(func(idx int) {
		out[idx] = op.applyAt(u, idx)
	})
}

//residual puts b-Au in r (zero on the boundary) and returns its 2-norm.
func (op *operator) residual(b, u, r []float64) float64 {
	zeroBoundary(op.n, r)
	op.eachInterior(func(idx int) {
		r[idx] = b[idx] - op.applyAt(u, idx)
	})
	return floats.Norm(r, 2)
}

//withReaction returns an operator with the same second order part and
//reaction coefficient c.
func (op *operator) withReaction(c []float64) *operator {
	return newOperator(op.n, op.h, op.a1, op.a2, op.a3, c)
}

//zeroBoundary sets the outer layer of v to zero.
func zeroBoundary(n [3]int, v []float64) {
	nx, ny, nz := n[0], n[1], n[2]
	nxy := nx * ny
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			base := k*nxy + j*nx
			if k == 0 || k == nz-1 || j == 0 || j == ny-1 {
				for i := 0; i < nx; i++ {
					v[base+i] = 0
				}
				continue
			}
			v[base] = 0
			v[base+nx-1] = 0
		}
	}
}

//nonlinearOperator is -div(a grad u) + c sinh(u).
type nonlinearOperator struct {
	lin *operator //the second order part, with zero reaction term
	c   []float64
}

func newNonlinearOperator(n [3]int, h [3]float64, a1, a2, a3, c []float64) *nonlinearOperator {
	return &nonlinearOperator{
		lin: newOperator(n, h, a1, a2, a3, make([]float64, len(c))),
		c:   c,
	}
}

//residual puts f-N(u) in r and returns its 2-norm.
func (nop *nonlinearOperator) residual(f, u, r []float64) float64 {
	zeroBoundary(nop.lin.n, r)
	nop.lin.eachInterior(func(idx int) {
		r[idx] = f[idx] - nop.lin.laplacianAt(u, idx) - nop.c[idx]*math.Sinh(u[idx])
	})
	return floats.Norm(r, 2)
}

//jacobian returns the linearization of the operator around u.
func (nop *nonlinearOperator) jacobian(u []float64) *operator {
	jc := make([]float64, len(u))
	nop.lin.eachInterior(func(idx int) {
		if nop.c[idx] != 0 {
			jc[idx] = nop.c[idx] * math.Cosh(u[idx])
		}
	})
	return nop.lin.withReaction(jc)
}
