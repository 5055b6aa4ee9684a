/*
 * fillco.go, part of pmg.
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

//Marks left by the atoms on grid points (ionTag) and edge midpoints (edgeTag).
//Larger marks win when atoms overlap.
const (
	tagNone        byte = iota
	tagIonExcluded      //point inside an atom inflated by the ion radius
	tagSAS              //midpoint inside an atom inflated by the solvent radius
	tagVdW              //midpoint inside the van der Waals radius of an atom
)

//FillCo fills the coefficient arrays of the problem from its atoms: the
//dielectric at the edge midpoints, obtained with method, the ionic screening
//term, and the charge density. Unless the problem comes from focusing, it
//also fills the boundary data with the analytical boundary condition.
//Atoms on or outside the mesh limits are ignored, with a warning unless the
//problem is focused.
func (P *Problem) FillCo(method DielectricMethod) error {
	if P.destroyed {
		return newError(ErrDestroyed, "FillCo", "")
	}
	if err := validDielectric(method); err != nil {
		return errDecorate(err, "FillCo")
	}
	P.filled, P.solved = false, false
	for a := 0; a < 3; a++ {
		zero(P.a[a])
		zeroTags(P.edgeTag[a])
	}
	zero(P.ccf)
	zero(P.fcf)
	zeroTags(P.ionTag)

	g := P.geom
	atoms := P.pbe.Atoms()
	zmagic := P.pbe.Zmagic()
	vol := g.CellVolume()
	for i := 0; i < atoms.Len(); i++ {
		pos := atoms.Position(i)
		if !g.OnMesh(pos) {
			if !P.focusing() {
				P.log.WithFields(logrus.Fields{"atom": i, "position": pos, "min": g.Mins(), "max": g.Maxs()}).Warn("atom off the mesh, ignored")
			}
			continue
		}
		at := atoms.Atom(i)
		var rel [3]float64
		for a := 0; a < 3; a++ {
			rel[a] = pos[a] - g.Min(a)
		}
		P.markAtom(rel, at.Radius)
		g.StencilAt(pos).Deposit(g, P.fcf, at.Charge*zmagic/vol)
	}

	zkappa2 := P.pbe.Zkappa2()
	for idx, t := range P.ionTag {
		if t == tagIonExcluded {
			P.ccf[idx] = 0
		} else {
			P.ccf[idx] = zkappa2
		}
	}
	if err := P.dielectric(method, P.a); err != nil {
		return errDecorate(err, "FillCo")
	}
	if !P.focusing() {
		if err := P.fillBoundary(); err != nil {
			return errDecorate(err, "FillCo")
		}
	}
	P.filled = true
	return nil
}

func validDielectric(method DielectricMethod) error {
	if method != Unsmoothed && method != Smoothed {
		return newError(ErrBadDielectricMethod, "validDielectric", "%d", int(method))
	}
	return nil
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}

func zeroTags(s []byte) {
	for i := range s {
		s[i] = tagNone
	}
}

//searchRange returns the indexes of the grid points within d of x along an axis
//with n points spaced h, x measured from the first point.
func searchRange(x, d, h float64, n int) (int, int) {
	lo := int(math.Ceil((x - d) / h))
	hi := int(math.Floor((x + d) / h))
	return max(lo, 0), min(hi, n-1)
}

//markAtom tags the grid points and edge midpoints close to an atom of radius arad
//at rel, given relative to the lower corner of the mesh.
//Only the points inside a box around the largest inflated radius are tested.
func (P *Problem) markAtom(rel [3]float64, arad float64) {
	g := P.geom
	h, n := g.H, g.N
	irad, srad := P.pbe.IonRadius(), P.pbe.SolventRadius()
	itot2 := (irad + arad) * (irad + arad)
	stot2 := (srad + arad) * (srad + arad)
	arad2 := arad * arad
	rtot := math.Max(irad+arad, srad+arad)
	rtot2 := math.Max(itot2, stot2)

	imin, imax := searchRange(rel[0], rtot+0.5*h[0], h[0], n[0])
	for i := imin; i <= imax; i++ {
		dx2 := sq(rel[0] - h[0]*float64(i))
		dy := 0.5 * h[1]
		if rtot2 > dx2 {
			dy += math.Sqrt(rtot2 - dx2)
		}
		jmin, jmax := searchRange(rel[1], dy, h[1], n[1])
		for j := jmin; j <= jmax; j++ {
			dy2 := sq(rel[1] - h[1]*float64(j))
			dz := 0.5 * h[2]
			if rtot2 > dx2+dy2 {
				dz += math.Sqrt(rtot2 - dx2 - dy2)
			}
			kmin, kmax := searchRange(rel[2], dz, h[2], n[2])
			for k := kmin; k <= kmax; k++ {
				dz2 := sq(rel[2] - h[2]*float64(k))
				idx := g.Index(i, j, k)
				if dx2+dy2+dz2 <= itot2 {
					P.ionTag[idx] = tagIonExcluded
				}
				P.markEdge(mesh.X, idx, sq((float64(i)+0.5)*h[0]-rel[0])+dy2+dz2, stot2, arad2)
				P.markEdge(mesh.Y, idx, dx2+sq((float64(j)+0.5)*h[1]-rel[1])+dz2, stot2, arad2)
				P.markEdge(mesh.Z, idx, dx2+dy2+sq((float64(k)+0.5)*h[2]-rel[2]), stot2, arad2)
			}
		}
	}
}

func (P *Problem) markEdge(axis, idx int, d2, stot2, arad2 float64) {
	if d2 > stot2 {
		return
	}
	t := tagSAS
	if d2 <= arad2 {
		t = tagVdW
	}
	if t > P.edgeTag[axis][idx] {
		P.edgeTag[axis][idx] = t
	}
}

func sq(x float64) float64 { return x * x }

//dielectric puts in dst the dielectric coefficients at the edge midpoints,
//obtained from the marks left by FillCo with the given method.
//Only edges close to the solvent-accessible surface need the (expensive)
//molecular surface test.
func (P *Problem) dielectric(method DielectricMethod, dst [3][]float64) error {
	if err := validDielectric(method); err != nil {
		return errDecorate(err, "dielectric")
	}
	g := P.geom
	acc := P.pbe.Acc()
	srad := P.pbe.SolventRadius()
	epsp, epsw := P.pbe.SoluteDiel(), P.pbe.SolventDiel()
	n := g.N
	for k := 0; k < n[mesh.Z]; k++ {
		for j := 0; j < n[mesh.Y]; j++ {
			for i := 0; i < n[mesh.X]; i++ {
				idx := g.Index(i, j, k)
				point := g.Point(i, j, k)
				a000 := -1.0 //accessibility at the point, computed once if needed.
				for a := 0; a < 3; a++ {
					switch P.edgeTag[a][idx] {
					case tagNone:
						dst[a][idx] = epsw
					case tagVdW:
						dst[a][idx] = epsp
					case tagSAS:
						mid := point
						mid[a] += 0.5 * g.H[a]
						accmid := acc.MolAcc(mid, srad)
						if method == Unsmoothed {
							if accmid == 0 {
								dst[a][idx] = epsp
							} else {
								dst[a][idx] = epsw
							}
							continue
						}
						if a000 < 0 {
							a000 = acc.MolAcc(point, srad)
						}
						hi := point
						hi[a] += g.H[a]
						accf := (a000 + accmid + acc.MolAcc(hi, srad)) / 3.0
						dst[a][idx] = epsw * epsp / ((1-accf)*epsw + accf*epsp)
					}
				}
			}
		}
	}
	return nil
}
