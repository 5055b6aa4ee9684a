/*
 * acc.go, part of pmg.
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

//DefaultSpherePoints is the number of probe positions tried around each atom
//when building the molecular surface.
const DefaultSpherePoints = 200

//Accessibility answers whether points in space are reachable by the solvent
//or by mobile ions. Atoms are stored in a cell list, so each query only looks at
//nearby atoms.
type Accessibility struct {
	pos      [][3]float64
	rad      []float64
	maxProbe float64
	cell     float64
	lo       [3]float64
	n        [3]int
	cells    [][]int
	sphere   [][3]float64
}

//NewAccessibility builds the accessibility object for the atoms in mol.
//Queries with probes larger than maxProbe are answered correctly, but
//without the help of the cell list. npoints is the number of points
//used to sample the probe positions around each atom.
func NewAccessibility(mol AtomModel, maxProbe float64, npoints int) *Accessibility {
	A := &Accessibility{maxProbe: maxProbe}
	if npoints <= 0 {
		npoints = DefaultSpherePoints
	}
	A.sphere = spherePoints(npoints)
	n := mol.Len()
	A.pos = make([][3]float64, n)
	A.rad = make([]float64, n)
	maxRad := 0.0
	for i := 0; i < n; i++ {
		A.pos[i] = mol.Position(i)
		A.rad[i] = mol.Atom(i).Radius
		maxRad = math.Max(maxRad, A.rad[i])
	}
	if n == 0 {
		return A
	}
	var hi [3]float64
	A.lo, hi = bounds(mol)
	if !finite(A.lo[0], A.lo[1], A.lo[2], hi[0], hi[1], hi[2]) {
		//No cell list, every query looks at all the atoms.
		A.maxProbe = -1
		return A
	}
	A.cell = maxRad + maxProbe
	if !(A.cell > 0) || math.IsInf(A.cell, 0) {
		A.cell = 1
	}
	for a := 0; a < 3; a++ {
		A.n[a] = int((hi[a]-A.lo[a])/A.cell) + 1
	}
	A.cells = make([][]int, A.n[0]*A.n[1]*A.n[2])
	for i, p := range A.pos {
		c := A.cellOf(p)
		//NaN coordinates give meaningless cells.
		for a := range c {
			c[a] = min(max(c[a], 0), A.n[a]-1)
		}
		idx := (c[2]*A.n[1]+c[1])*A.n[0] + c[0]
		A.cells[idx] = append(A.cells[idx], i)
	}
	return A
}

func (A *Accessibility) cellOf(p [3]float64) [3]int {
	var c [3]int
	for a := 0; a < 3; a++ {
		c[a] = int(math.Floor((p[a] - A.lo[a]) / A.cell))
	}
	return c
}

//near calls f with the index of every atom that could be within reach+radius of p,
//with reach <= maxProbe. Iteration stops when f returns false.
func (A *Accessibility) near(p [3]float64, reach float64, f func(i int) bool) {
	if reach > A.maxProbe {
		for i := range A.pos {
			if !f(i) {
				return
			}
		}
		return
	}
	c := A.cellOf(p)
	var lo, hi [3]int
	for a := 0; a < 3; a++ {
		lo[a] = max(c[a]-1, 0)
		hi[a] = min(c[a]+1, A.n[a]-1)
		if lo[a] > hi[a] {
			return
		}
	}
	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				for _, at := range A.cells[(k*A.n[1]+j)*A.n[0]+i] {
					if !f(at) {
						return
					}
				}
			}
		}
	}
}

func dist2(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

//IvdwAcc returns 0 if p is inside the van der Waals sphere of some atom inflated by
//probe, and 1 otherwise.
func (A *Accessibility) IvdwAcc(p [3]float64, probe float64) float64 {
	acc := 1.0
	A.near(p, probe, func(i int) bool {
		r := A.rad[i] + probe
		if dist2(p, A.pos[i]) < r*r {
			acc = 0
			return false
		}
		return true
	})
	return acc
}

//VdwAcc returns 0 if p is inside the van der Waals sphere of some atom, and 1 otherwise.
func (A *Accessibility) VdwAcc(p [3]float64) float64 {
	return A.IvdwAcc(p, 0)
}

//MolAcc returns 1 if p is outside the molecular (solvent-excluded) surface defined
//by a spherical probe of radius probe, and 0 if it is inside.
//A point in the shell between the van der Waals and the solvent-accessible
//surfaces is accessible if it lies within a probe placed on the solvent-accessible
//surface of a nearby atom, without touching any other atom.
func (A *Accessibility) MolAcc(p [3]float64, probe float64) float64 {
	if A.IvdwAcc(p, probe) == 1 {
		return 1
	}
	if A.VdwAcc(p) == 0 {
		return 0
	}
	p2 := probe * probe
	acc := 0.0
	A.near(p, probe, func(i int) bool {
		r := A.rad[i] + probe
		if dist2(p, A.pos[i]) >= r*r {
			return true
		}
		for _, s := range A.sphere {
			var c [3]float64
			for a := 0; a < 3; a++ {
				c[a] = A.pos[i][a] + r*s[a]
			}
			if dist2(c, p) >= p2 {
				continue
			}
			if A.probeFree(c, probe, i) {
				acc = 1
				return false
			}
		}
		return true
	})
	return acc
}

//probeFree returns true if a probe of radius probe centered in c overlaps no atom
//other than self, on whose inflated surface c lies.
func (A *Accessibility) probeFree(c [3]float64, probe float64, self int) bool {
	free := true
	A.near(c, probe, func(i int) bool {
		if i == self {
			return true
		}
		r := A.rad[i] + probe
		if dist2(c, A.pos[i]) < r*r {
			free = false
			return false
		}
		return true
	})
	return free
}

//spherePoints returns n points roughly evenly spread on the unit sphere,
//placed along a golden-angle spiral.
func spherePoints(n int) [][3]float64 {
	ret := make([][3]float64, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := range ret {
		z := 1 - (2*float64(i)+1)/float64(n)
		r := math.Sqrt(1 - z*z)
		phi := golden * float64(i)
		ret[i] = [3]float64{r * math.Cos(phi), r * math.Sin(phi), z}
	}
	return ret
}
