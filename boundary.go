/*
 * boundary.go, part of pmg.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pmg

import (
	"math"

	"github.com/rmera/pmg/mesh"
)

//BoundaryValue returns the potential, in kT/e, at pos (A) given by the analytical
//boundary condition bc. The focusing condition has no analytical form, so it
//returns an error, as do unknown conditions.
func (P *Problem) BoundaryValue(pos [3]float64, bc BoundaryCondition) (float64, error) {
	pbe := P.pbe
	switch bc {
	case Zero:
		return 0, nil
	case SingleDH:
		size := 1e-10 * pbe.SoluteRadius()
		q := ElementaryCharge * pbe.SoluteCharge()
		dist := 1e-10 * math.Sqrt(dist2(pos, pbe.SoluteCenter()))
		val := q / (4 * math.Pi * VacuumPermittivity * pbe.SolventDiel() * dist)
		val *= screening(1e10*pbe.Xkappa(), dist, size)
		return val * ElementaryCharge / (Boltzmann * pbe.Temperature()), nil
	case MultipleDH:
		xkappa := 1e10 * pbe.Xkappa()
		atoms := pbe.Atoms()
		pot := 0.0
		for i := 0; i < atoms.Len(); i++ {
			at := atoms.Atom(i)
			dist := 1e-10 * math.Sqrt(dist2(pos, atoms.Position(i)))
			pot += at.Charge / dist * screening(xkappa, dist, 1e-10*at.Radius)
		}
		return pot * ElementaryCharge * ElementaryCharge /
			(Boltzmann * pbe.Temperature() * 4 * math.Pi * VacuumPermittivity * pbe.SolventDiel()), nil
	case Focus:
		return 0, newError(ErrFocusBoundary, "BoundaryValue", "")
	}
	return 0, newError(ErrBadBoundaryCondition, "BoundaryValue", "%d", int(bc))
}

//screening returns the Debye-Huckel attenuation for a sphere of radius size
//at distance dist, all in SI units.
func screening(xkappa, dist, size float64) float64 {
	if xkappa == 0 {
		return 1
	}
	return math.Exp(-xkappa*(dist-size)) / (1 + xkappa*size)
}

//fillBoundary puts on the six faces the values of the analytical boundary
//condition of the problem.
func (P *Problem) fillBoundary() error {
	g := P.geom
	n := g.N
	bc := P.params.Boundary
	var err error
	value := func(i, j, k int) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = P.BoundaryValue(g.Point(i, j, k), bc)
		return v
	}
	for k := 0; k < n[mesh.Z]; k++ {
		for j := 0; j < n[mesh.Y]; j++ {
			*P.bnd.XFace(j, k) = mesh.Face{Lo: value(0, j, k), Hi: value(n[mesh.X]-1, j, k)}
		}
	}
	for k := 0; k < n[mesh.Z]; k++ {
		for i := 0; i < n[mesh.X]; i++ {
			*P.bnd.YFace(i, k) = mesh.Face{Lo: value(i, 0, k), Hi: value(i, n[mesh.Y]-1, k)}
		}
	}
	for j := 0; j < n[mesh.Y]; j++ {
		for i := 0; i < n[mesh.X]; i++ {
			*P.bnd.ZFace(i, j) = mesh.Face{Lo: value(i, j, 0), Hi: value(i, j, n[mesh.Z]-1)}
		}
	}
	return errDecorate(err, "fillBoundary")
}
