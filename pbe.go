/*
 * pbe.go, part of pmg.
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
)

//Ion is a species of mobile ion in the solvent.
type Ion struct {
	Charge float64 //e
	Conc   float64 //M
	Radius float64 //A
}

//PBEParams contains the physical parameters of a Poisson-Boltzmann problem.
type PBEParams struct {
	Temperature   float64 //K
	SoluteDiel    float64
	SolventDiel   float64
	SolventRadius float64 //A, radius of the solvent probe
	Ions          []Ion
	SpherePoints  int //points used to sample probe positions around each atom.
}

//DefaultPBEParams returns parameters for a solute with dielectric constant 2,
//in water at 298.15 K, without mobile ions.
func DefaultPBEParams() *PBEParams {
	return &PBEParams{
		Temperature:   DefaultTemperature,
		SoluteDiel:    2.0,
		SolventDiel:   78.54,
		SolventRadius: 1.4,
		SpherePoints:  DefaultSpherePoints,
	}
}

//PBE contains the atoms and the physical parameters of a problem, plus the
//quantities derived from them.
type PBE struct {
	atoms  AtomModel
	acc    *Accessibility
	p      PBEParams
	irad   float64
	istr   float64
	xkappa float64
	zmagic float64
	center [3]float64
	radius float64
	charge float64
}

//NewPBE builds a PBE object for the atoms in mol, with the parameters
//in p (DefaultPBEParams if nil).
func NewPBE(mol AtomModel, p *PBEParams) (*PBE, error) {
	if p == nil {
		p = DefaultPBEParams()
	}
	if mol == nil || mol.Len() == 0 {
		return nil, newError(ErrNoAtoms, "NewPBE", "")
	}
	P := &PBE{atoms: mol, p: *p}
	P.p.Ions = append([]Ion(nil), p.Ions...)
	if P.p.Temperature == 0 {
		P.p.Temperature = DefaultTemperature
	}
	switch {
	case !finite(P.p.Temperature, P.p.SoluteDiel, P.p.SolventDiel, P.p.SolventRadius):
		return nil, newError(ErrBadParams, "NewPBE", "non-finite parameters %+v", P.p)
	case P.p.Temperature < 0:
		return nil, newError(ErrBadParams, "NewPBE", "temperature %g", P.p.Temperature)
	case P.p.SoluteDiel <= 0 || P.p.SolventDiel <= 0:
		return nil, newError(ErrBadParams, "NewPBE", "dielectric constants %g and %g", P.p.SoluteDiel, P.p.SolventDiel)
	case P.p.SolventRadius < 0:
		return nil, newError(ErrBadParams, "NewPBE", "solvent radius %g", P.p.SolventRadius)
	}
	for i := 0; i < mol.Len(); i++ {
		at, pos := mol.Atom(i), mol.Position(i)
		if !finite(pos[0], pos[1], pos[2], at.Charge, at.Radius) {
			return nil, newError(ErrBadParams, "NewPBE", "atom %d has position %v, charge %g and radius %g", i, pos, at.Charge, at.Radius)
		}
		if at.Radius < 0 {
			return nil, newError(ErrBadParams, "NewPBE", "atom %d has a negative radius", i)
		}
	}
	for _, ion := range P.p.Ions {
		if !finite(ion.Charge, ion.Conc, ion.Radius) || ion.Conc < 0 || ion.Radius < 0 {
			return nil, newError(ErrBadParams, "NewPBE", "ion with concentration %g and radius %g", ion.Conc, ion.Radius)
		}
		P.istr += 0.5 * ion.Conc * ion.Charge * ion.Charge
		P.irad = math.Max(P.irad, ion.Radius)
	}
	P.zmagic = zmagic(P.p.Temperature)
	P.xkappa = inverseDebyeLength(P.istr, P.p.SolventDiel, P.p.Temperature)
	P.acc = NewAccessibility(mol, math.Max(P.irad, P.p.SolventRadius), P.p.SpherePoints)
	P.soluteGeometry()
	return P, nil
}

//soluteGeometry obtains the center of the bounding box of the atoms, the radius
//of the smallest sphere around that center containing all atoms,
//and the net charge.
func (P *PBE) soluteGeometry() {
	n := P.atoms.Len()
	lo, hi := bounds(P.atoms)
	for a := 0; a < 3; a++ {
		P.center[a] = 0.5 * (lo[a] + hi[a])
	}
	for i := 0; i < n; i++ {
		P.charge += P.atoms.Atom(i).Charge
	}
	for i := 0; i < n; i++ {
		d := math.Sqrt(dist2(P.center, P.atoms.Position(i))) + P.atoms.Atom(i).Radius
		P.radius = math.Max(P.radius, d)
	}
}

//Atoms returns the atomic model.
func (P *PBE) Atoms() AtomModel { return P.atoms }

//Acc returns the accessibility object built for the atoms.
func (P *PBE) Acc() *Accessibility { return P.acc }

func (P *PBE) SoluteDiel() float64    { return P.p.SoluteDiel }
func (P *PBE) SolventDiel() float64   { return P.p.SolventDiel }
func (P *PBE) SolventRadius() float64 { return P.p.SolventRadius }
func (P *PBE) Temperature() float64   { return P.p.Temperature }

//IonRadius returns the largest radius among the mobile ions.
func (P *PBE) IonRadius() float64 { return P.irad }

//IonicStrength returns the ionic strength, in M.
func (P *PBE) IonicStrength() float64 { return P.istr }

//Xkappa returns the inverse Debye length, in 1/A.
func (P *PBE) Xkappa() float64 { return P.xkappa }

//Zkappa2 returns the screening coefficient of the dimensionless equation,
//the solvent dielectric times the squared inverse Debye length.
func (P *PBE) Zkappa2() float64 { return P.p.SolventDiel * P.xkappa * P.xkappa }

//Zmagic returns the factor that scales charge densities into the source term
//of the dimensionless equation.
func (P *PBE) Zmagic() float64 { return P.zmagic }

func (P *PBE) SoluteCenter() [3]float64 { return P.center }
func (P *PBE) SoluteRadius() float64    { return P.radius }
func (P *PBE) SoluteCharge() float64    { return P.charge }

//bounds returns the corners of the bounding box of the atoms in mol.
func bounds(mol AtomModel) (lo, hi [3]float64) {
	if m, ok := mol.(*Molecule); ok {
		return m.Coords.Bounds()
	}
	for i := 0; i < mol.Len(); i++ {
		p := mol.Position(i)
		for a := 0; a < 3; a++ {
			if i == 0 || p[a] < lo[a] {
				lo[a] = p[a]
			}
			if i == 0 || p[a] > hi[a] {
				hi[a] = p[a]
			}
		}
	}
	return lo, hi
}

func finite(v ...float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
