/*
 * face.go, part of pmg.
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

//Face holds the boundary data for one point of a pair of opposite faces:
//Dirichlet values on the low and high face, and the flux slots, which
//are always zero for now.
type Face struct {
	Lo     float64
	Hi     float64
	LoFlux float64
	HiFlux float64
}

//Boundary contains the boundary data for the 6 faces of a grid.
//X holds the x=min/x=max pair indexed by (j,k), Y the y pair indexed by (i,k)
//and Z the z pair indexed by (i,j). The first index runs fastest.
type Boundary struct {
	X []Face
	Y []Face
	Z []Face
	n [3]int
}

//NewBoundary allocates zeroed boundary data for a grid with n points per axis.
func NewBoundary(n [3]int) *Boundary {
	return &Boundary{
		X: make([]Face, n[Y]*n[Z]),
		Y: make([]Face, n[X]*n[Z]),
		Z: make([]Face, n[X]*n[Y]),
		n: n,
	}
}

//XFace returns the face pair normal to x that contains (j,k).
func (b *Boundary) XFace(j, k int) *Face { return &b.X[k*b.n[Y]+j] }

//YFace returns the face pair normal to y that contains (i,k).
func (b *Boundary) YFace(i, k int) *Face { return &b.Y[k*b.n[X]+i] }

//ZFace returns the face pair normal to z that contains (i,j).
func (b *Boundary) ZFace(i, j int) *Face { return &b.Z[j*b.n[X]+i] }

//IsBoundary returns true if (i,j,k) is on the outer layer of the grid.
func (b *Boundary) IsBoundary(i, j, k int) bool {
	return i == 0 || j == 0 || k == 0 || i == b.n[X]-1 || j == b.n[Y]-1 || k == b.n[Z]-1
}

//Value returns the Dirichlet value at boundary point (i,j,k).
//Edges and corners belong to more than one face; the x faces
//take precedence, then the y faces.
//It panics if the point is not on the boundary.
func (b *Boundary) Value(i, j, k int) float64 {
	switch {
	case i == 0:
		return b.XFace(j, k).Lo
	case i == b.n[X]-1:
		return b.XFace(j, k).Hi
	case j == 0:
		return b.YFace(i, k).Lo
	case j == b.n[Y]-1:
		return b.YFace(i, k).Hi
	case k == 0:
		return b.ZFace(i, j).Lo
	case k == b.n[Z]-1:
		return b.ZFace(i, j).Hi
	}
	panic("mesh.Boundary.Value: point not on the boundary")
}

//Apply writes the Dirichlet values into the outer layer of field, which must
//be co-indexed with g.
func (b *Boundary) Apply(g *Geometry, field []float64) {
	nx, ny, nz := g.N[X], g.N[Y], g.N[Z]
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if !b.IsBoundary(i, j, k) {
					continue
				}
				field[g.Index(i, j, k)] = b.Value(i, j, k)
			}
		}
	}
}
