/*
 * mesh.go, part of pmg.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package mesh contains the geometry of the axis-aligned structured grids
//used by pmg, plus the trilinear stencils that move data between
//continuous positions and grid points.
package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//Tolerance is the slack allowed when checking that a mesh lies inside
//another one, or that a point lies inside a box.
const Tolerance = 1e-14

//Axis names, used to index the per-axis arrays.
const (
	X = iota
	Y
	Z
)

//Box is a closed axis-aligned box.
type Box struct {
	Min [3]float64
	Max [3]float64
}

//Contains returns true if p is inside the closed box. Points within
//Tolerance, relative to the size of the coordinates, of a face
//are inside, so the limits of a mesh contain all its points.
func (b Box) Contains(p [3]float64) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-slack(b.Min[i]) || p[i] > b.Max[i]+slack(b.Max[i]) {
			return false
		}
	}
	return true
}

func slack(x float64) float64 {
	return Tolerance * math.Max(1, math.Abs(x))
}

//Geometry is a structured grid with N[i] points along axis i, spaced H[i]
//and centered in Center.
type Geometry struct {
	N      [3]int
	H      [3]float64
	Center [3]float64
	min    [3]float64
	max    [3]float64
	coords [3][]float64
}

//New returns the geometry for a grid with the given point counts, spacings
//and center. Counts must be at least 3 and spacings positive.
func New(n [3]int, h, center [3]float64) (*Geometry, error) {
	g := &Geometry{N: n, H: h, Center: center}
	for a := 0; a < 3; a++ {
		if n[a] < 3 {
			return nil, fmt.Errorf("mesh.New: axis %d has %d points, at least 3 are needed", a, n[a])
		}
		if !(h[a] > 0) || math.IsInf(h[a], 0) {
			return nil, fmt.Errorf("mesh.New: axis %d has invalid spacing %g", a, h[a])
		}
		half := float64(n[a]-1) * h[a] / 2.0
		g.min[a] = center[a] - half
		g.max[a] = center[a] + half
		//The end points are exactly the limits.
		g.coords[a] = floats.Span(make([]float64, n[a]), g.min[a], g.max[a])
	}
	return g, nil
}

//FromOrigin returns the geometry of a grid given its lower corner instead
//of its center, as grid files store it.
func FromOrigin(n [3]int, h, origin [3]float64) (*Geometry, error) {
	var c [3]float64
	for a := 0; a < 3; a++ {
		c[a] = origin[a] + float64(n[a]-1)*h[a]/2.0
	}
	return New(n, h, c)
}

//Len returns the total number of grid points.
func (g *Geometry) Len() int {
	return g.N[X] * g.N[Y] * g.N[Z]
}

//Index returns the position of point (i,j,k) in the flat arrays.
//x runs fastest, z slowest.
func (g *Geometry) Index(i, j, k int) int {
	return k*g.N[X]*g.N[Y] + j*g.N[X] + i
}

//IJK is the inverse of Index.
func (g *Geometry) IJK(idx int) (int, int, int) {
	nxy := g.N[X] * g.N[Y]
	k := idx / nxy
	rem := idx - k*nxy
	j := rem / g.N[X]
	return rem - j*g.N[X], j, k
}

//Min returns the lower limit of the grid along axis.
func (g *Geometry) Min(axis int) float64 { return g.min[axis] }

//Max returns the upper limit of the grid along axis.
func (g *Geometry) Max(axis int) float64 { return g.max[axis] }

//Mins returns the lower corner of the grid.
func (g *Geometry) Mins() [3]float64 { return g.min }

//Maxs returns the upper corner of the grid.
func (g *Geometry) Maxs() [3]float64 { return g.max }

//Coord returns the coordinate of the ith point along axis.
func (g *Geometry) Coord(axis, i int) float64 { return g.coords[axis][i] }

//Coords returns the coordinate array along axis. The slice
//belongs to the geometry and must not be modified.
func (g *Geometry) Coords(axis int) []float64 { return g.coords[axis] }

//Point returns the position of grid point (i,j,k).
func (g *Geometry) Point(i, j, k int) [3]float64 {
	return [3]float64{g.coords[X][i], g.coords[Y][j], g.coords[Z][k]}
}

//Box returns the physical extent of the grid.
func (g *Geometry) Box() Box {
	return Box{Min: g.min, Max: g.max}
}

//CellVolume returns hx*hy*hz
func (g *Geometry) CellVolume() float64 {
	return g.H[X] * g.H[Y] * g.H[Z]
}

//Uniform returns true if the spacing is the same along the 3 axes.
func (g *Geometry) Uniform() bool {
	return g.H[X] == g.H[Y] && g.H[Y] == g.H[Z]
}

//Contains returns true if the extent of inner is inside the extent of g,
//allowing tol of slack on each side.
func (g *Geometry) Contains(inner *Geometry, tol float64) bool {
	for a := 0; a < 3; a++ {
		if inner.max[a]-g.max[a] > tol || g.min[a]-inner.min[a] > tol {
			return false
		}
	}
	return true
}

//OnMesh returns true if p lies strictly inside the grid.
func (g *Geometry) OnMesh(p [3]float64) bool {
	for a := 0; a < 3; a++ {
		if p[a] <= g.min[a] || p[a] >= g.max[a] {
			return false
		}
	}
	return true
}

func (g *Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d points, spacing (%g, %g, %g), min (%g, %g, %g), max (%g, %g, %g)",
		g.N[X], g.N[Y], g.N[Z], g.H[X], g.H[Y], g.H[Z],
		g.min[X], g.min[Y], g.min[Z], g.max[X], g.max[Y], g.max[Z])
}

//Count returns the number of points c*2^(nlev+1)+1, which allows nlev
//coarsenings of a multigrid hierarchy.
func Count(c, nlev int) int {
	return c*(1<<uint(nlev+1)) + 1
}

//Levels returns the largest number of levels that a multigrid hierarchy can
//use with n points, that is, how many times n-1 can be halved while keeping at
//least 3 points.
func Levels(n int) int {
	l := 1
	for m := n - 1; m%2 == 0 && m/2 >= 2; m /= 2 {
		l++
	}
	return l
}
