/*
 * energy.go, part of pmg.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package pmg

import (
	"math"

	"github.com/rmera/pmg/mesh"
	"github.com/sirupsen/logrus"
)

//All the energies below are in kT, and only count the grid points
//allowed by the partition mask.

//Energy returns the total electrostatic energy. For linear problems it is the
//fixed charge energy, plus the external energy if withExternal is true.
//The total energy of nonlinear problems is not implemented: a warning is
//logged and 0 is returned.
func (P *Problem) Energy(withExternal bool) (float64, error) {
	if err := P.check("Energy", true); err != nil {
		return 0, err
	}
	if P.params.Nonlinear {
		P.log.Warn("total energy of nonlinear problems not implemented, returning 0")
		return 0, nil
	}
	e, err := P.QFEnergy()
	if err != nil {
		return 0, errDecorate(err, "Energy")
	}
	if withExternal {
		e += P.extEnergy
	}
	return e, nil
}

//QFEnergy returns the energy of the fixed charges in the potential,
//1/2 sum_i q_i u(r_i), with u interpolated at the atom positions.
//Atoms too close to the mesh limits to be interpolated are skipped, with
//a warning unless the problem is focused.
func (P *Problem) QFEnergy() (float64, error) {
	if err := P.check("QFEnergy", true); err != nil {
		return 0, err
	}
	g := P.geom
	atoms := P.pbe.Atoms()
	e := 0.0
	for i := 0; i < atoms.Len(); i++ {
		pos := atoms.Position(i)
		st := g.StencilAt(pos)
		if !st.InBounds(g) {
			if !P.focusing() {
				P.log.WithFields(logrus.Fields{"atom": i, "position": pos}).Warn("atom off the mesh, ignored in the energy")
			}
			continue
		}
		e += atoms.Atom(i).Charge * st.InterpolateMasked(g, P.u, P.pvec)
	}
	return 0.5 * e, nil
}

//DielEnergy returns the energy stored in the dielectric,
//1/2 int eps (grad u)^2, with the dielectric coefficients obtained with method.
//They are computed in scratch arrays, so the coefficients used by the
//solver are not changed.
func (P *Problem) DielEnergy(method DielectricMethod) (float64, error) {
	if err := P.check("DielEnergy", true); err != nil {
		return 0, err
	}
	g := P.geom
	var eps [3][]float64
	for a := range eps {
		eps[a] = make([]float64, g.Len())
	}
	if err := P.dielectric(method, eps); err != nil {
		return 0, errDecorate(err, "DielEnergy")
	}
	n, h := g.N, g.H
	e := 0.0
	for k := 0; k < n[mesh.Z]-1; k++ {
		for j := 0; j < n[mesh.Y]-1; j++ {
			for i := 0; i < n[mesh.X]-1; i++ {
				idx := g.Index(i, j, k)
				next := [3]int{g.Index(i+1, j, k), g.Index(i, j+1, k), g.Index(i, j, k+1)}
				for a, nidx := range next {
					pv := 0.5 * (P.pvec[idx] + P.pvec[nidx])
					e += eps[a][idx] * pv * sq((P.u[idx]-P.u[nidx])/h[a])
				}
			}
		}
	}
	return 0.5 * e * g.CellVolume() / P.pbe.Zmagic(), nil
}

//QMEnergy returns the energy of the mobile ions in the potential:
//-int kappa2 (cosh u - 1) for nonlinear problems, and -1/2 int kappa2 u^2
//for linear ones. Points where the ions are excluded don't contribute.
func (P *Problem) QMEnergy() (float64, error) {
	if err := P.check("QMEnergy", true); err != nil {
		return 0, err
	}
	e := 0.0
	for i, u := range P.u {
		w := P.pvec[i] * P.ccf[i]
		if w <= 0 {
			continue
		}
		if P.params.Nonlinear {
			e += w * (math.Cosh(u) - 1)
		} else {
			e += 0.5 * w * u * u
		}
	}
	return -e * P.geom.CellVolume() / P.pbe.Zmagic(), nil
}
