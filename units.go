/*
 * units.go, part of pmg.
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

import "math"

//Physical constants, in SI units.
const (
	ElementaryCharge   = 1.6021773e-19 //C
	Boltzmann          = 1.380658e-23  //J/K
	VacuumPermittivity = 8.8541878e-12 //C^2/(J m)
	Avogadro           = 6.0221367e23
)

//DefaultTemperature is used when a PBE is built with a zero temperature.
const DefaultTemperature = 298.15

//zmagic returns the factor that turns charge densities in e/A^3 into the
//right hand side of the dimensionless Poisson-Boltzmann equation,
//that is, 4 pi times the Bjerrum length in vacuum, in A.
func zmagic(temp float64) float64 {
	return 1.0e10 * ElementaryCharge * ElementaryCharge / (VacuumPermittivity * Boltzmann * temp)
}

//inverseDebyeLength returns the inverse Debye length (1/A) of a solvent
//with dielectric constant epsw and ionic strength istr (M), at temperature temp.
func inverseDebyeLength(istr, epsw, temp float64) float64 {
	k2 := 2.0 * istr * 1000.0 * Avogadro * ElementaryCharge * ElementaryCharge /
		(VacuumPermittivity * epsw * Boltzmann * temp)
	return 1.0e-10 * math.Sqrt(k2)
}

//BjerrumLength returns the distance, in A, at which the Coulomb interaction
//of two unit charges in a medium with dielectric constant eps equals kT.
func BjerrumLength(eps, temp float64) float64 {
	return zmagic(temp) / (4 * math.Pi * eps)
}
