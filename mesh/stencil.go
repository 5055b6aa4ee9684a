/*
 * stencil.go, part of pmg.
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

package mesh

import "math"

//Stencil is the set of 8 grid points surrounding a continuous position,
//with the fractional offsets of the position from the Lo corner.
//Interpolation and charge deposition use the same weights, so
//one is the transpose of the other.
type Stencil struct {
	Lo [3]int
	Hi [3]int
	D  [3]float64
}

//StencilAt returns the stencil for p. The corners are not checked
//against the grid limits, use InBounds for that.
func (g *Geometry) StencilAt(p [3]float64) Stencil {
	var s Stencil
	for a := 0; a < 3; a++ {
		f := (p[a] - g.min[a]) / g.H[a]
		s.Lo[a] = int(math.Floor(f))
		s.Hi[a] = int(math.Ceil(f))
		s.D[a] = f - float64(s.Lo[a])
	}
	return s
}

//ClampedStencilAt is like StencilAt, but the corners are clamped to the grid.
//It is meant for points that are on the grid up to rounding errors.
func (g *Geometry) ClampedStencilAt(p [3]float64) Stencil {
	var s Stencil
	for a := 0; a < 3; a++ {
		f := (p[a] - g.min[a]) / g.H[a]
		s.Hi[a] = int(math.Ceil(f))
		if s.Hi[a] > g.N[a]-1 {
			s.Hi[a] = g.N[a] - 1
		}
		s.Lo[a] = int(math.Floor(f))
		if s.Lo[a] < 0 {
			s.Lo[a] = 0
		}
		s.D[a] = f - float64(s.Lo[a])
	}
	return s
}

//InBounds returns true if all 8 corners of the stencil are grid points of g.
func (s Stencil) InBounds(g *Geometry) bool {
	for a := 0; a < 3; a++ {
		if s.Hi[a] >= g.N[a] || s.Lo[a] < 0 {
			return false
		}
	}
	return true
}

//Each calls f with the flat index and the trilinear weight of each of the 8 corners.
//When the position sits on a grid plane, the Hi corner gets a zero weight and
//the Lo one gets the full weight.
func (s Stencil) Each(g *Geometry, f func(idx int, w float64)) {
	for c := 0; c < 8; c++ {
		var ijk [3]int
		w := 1.0
		for a := 0; a < 3; a++ {
			if c&(1<<uint(a)) != 0 {
				ijk[a] = s.Hi[a]
				w *= s.D[a]
			} else {
				ijk[a] = s.Lo[a]
				w *= 1.0 - s.D[a]
			}
		}
		f(g.Index(ijk[X], ijk[Y], ijk[Z]), w)
	}
}

//Interpolate returns the trilinear interpolation of field at the stencil position.
func (s Stencil) Interpolate(g *Geometry, field []float64) float64 {
	val := 0.0
	s.Each(g, func(idx int, w float64) {
		val += w * field[idx]
	})
	return val
}

//InterpolateMasked is Interpolate with each corner value multiplied by the
//corresponding element of mask.
func (s Stencil) InterpolateMasked(g *Geometry, field, mask []float64) float64 {
	val := 0.0
	s.Each(g, func(idx int, w float64) {
		val += w * field[idx] * mask[idx]
	})
	return val
}

//Deposit adds value to field, split among the corners with the trilinear weights.
func (s Stencil) Deposit(g *Geometry, field []float64, value float64) {
	s.Each(g, func(idx int, w float64) {
		field[idx] += w * value
	})
}
