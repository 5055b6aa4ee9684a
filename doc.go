/*
 * doc.go, part of pmg.
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

/*
Package pmg sets up and post-processes Poisson-Boltzmann calculations on
Cartesian meshes.

A calculation starts from an atomic model (positions, charges and radii,
usually read from a PQR file with PQRFileRead) and a PBE, which holds the
physical parameters of the solvent and solute. A Problem puts both on a mesh:

	pbe, err := pmg.NewPBE(mol, pmg.DefaultPBEParams())
	params := pmg.DefaultParams()
	params.SetLength([3]float64{30, 30, 30})
	params.Center = pbe.SoluteCenter()
	coarse, err := pmg.New(params, pbe)
	err = coarse.FillCo(pmg.Unsmoothed)
	_, err = coarse.Solve()

A coarse solution can be focused on a finer mesh nested in the coarse one.
The boundary values of the fine problem are interpolated from the coarse
potential, and the energy of the charges outside the fine mesh is kept as the
external energy:

	fine, err := pmg.NewFocus(fineParams, pbe, coarse) //coarse can't be used after this
	err = fine.FillCo(pmg.Unsmoothed)
	_, err = fine.Solve()
	energy, err := fine.Energy(true)

All energies are in units of kT, potentials in kT/e and lengths in Angstrom.
*/
package pmg
