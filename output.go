/*
 * output.go, part of pmg.
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
	"fmt"
	"strings"

	"github.com/rmera/pmg/dx"
	"github.com/rmera/pmg/mesh"
	"github.com/sirupsen/logrus"
)

//DataKind selects one of the fields that can be obtained from a problem.
type DataKind int

const (
	Potential     DataKind = iota //kT/e
	ChargeDensity                 //source term, e/A^3 scaled as in the equation
	Kappa                         //ionic screening term
	DielX                         //dielectric at the x edge midpoints
	DielY
	DielZ
	MolAccess      //molecular surface accessibility
	VdwAccess      //van der Waals accessibility
	InflatedAccess //ion-inflated van der Waals accessibility
)

var dataKindNames = [...]string{"pot", "charge", "kappa", "dielx", "diely", "dielz", "smol", "vdw", "ivdw"}

func (d DataKind) String() string {
	if d < 0 || int(d) >= len(dataKindNames) {
		return fmt.Sprintf("data(%d)", int(d))
	}
	return dataKindNames[d]
}

//ParseDataKind returns the kind of data with the given name, as
//returned by DataKind.String.
func ParseDataKind(s string) (DataKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range dataKindNames {
		if v == s {
			return DataKind(i), nil
		}
	}
	return -1, newError(ErrBadDataKind, "ParseDataKind", "%q", s)
}

//Data returns a copy of the field of the given kind, co-indexed with the mesh.
//The potential needs a solved problem, the rest only filled coefficients.
func (P *Problem) Data(kind DataKind) ([]float64, error) {
	if err := P.check("Data", kind == Potential); err != nil {
		return nil, err
	}
	var src []float64
	switch kind {
	case Potential:
		src = P.u
	case ChargeDensity:
		//The density is stored scaled for the equation.
		ret := make([]float64, len(P.fcf))
		z := P.pbe.Zmagic()
		for i, v := range P.fcf {
			ret[i] = v / z
		}
		return ret, nil
	case Kappa:
		src = P.ccf
	case DielX, DielY, DielZ:
		src = P.a[kind-DielX]
	case MolAccess, VdwAccess, InflatedAccess:
		ret := make([]float64, P.geom.Len())
		var parm float64
		switch kind {
		case MolAccess:
			parm = P.pbe.SolventRadius()
		case InflatedAccess:
			parm = P.pbe.IonRadius()
		}
		err := P.FillAccessibility(ret, SurfaceMethod(kind-MolAccess), parm)
		return ret, errDecorate(err, "Data")
	default:
		return nil, newError(ErrBadDataKind, "Data", "%d", int(kind))
	}
	return append([]float64(nil), src...), nil
}

//FillAccessibility puts in dst, co-indexed with the mesh, the accessibility
//of each grid point according to the surface method. parm is the probe
//radius, ignored for the van der Waals surface.
func (P *Problem) FillAccessibility(dst []float64, method SurfaceMethod, parm float64) error {
	if P.destroyed {
		return newError(ErrDestroyed, "FillAccessibility", "")
	}
	g := P.geom
	if len(dst) != g.Len() {
		return newError(ErrBadParams, "FillAccessibility", "%d values for a mesh of %d points", len(dst), g.Len())
	}
	var f func(p [3]float64) float64
	acc := P.pbe.Acc()
	switch method {
	case MolecularSurface:
		f = func(p [3]float64) float64 { return acc.MolAcc(p, parm) }
	case VdwSurface:
		f = acc.VdwAcc
	case InflatedVdwSurface:
		f = func(p [3]float64) float64 { return acc.IvdwAcc(p, parm) }
	default:
		return newError(ErrBadSurfaceMethod, "FillAccessibility", "%d", int(method))
	}
	P.log.WithFields(logrus.Fields{"method": int(method), "probe": parm}).Debug("filling accessibility")
	n := g.N
	for k := 0; k < n[mesh.Z]; k++ {
		for j := 0; j < n[mesh.Y]; j++ {
			for i := 0; i < n[mesh.X]; i++ {
				dst[g.Index(i, j, k)] = f(g.Point(i, j, k))
			}
		}
	}
	return nil
}

//Grid returns the field of the given kind with the geometry of the mesh,
//ready to be written to a file.
func (P *Problem) Grid(kind DataKind) (*dx.Grid, error) {
	data, err := P.Data(kind)
	if err != nil {
		return nil, errDecorate(err, "Grid")
	}
	return dx.FromGeometry(P.geom, data), nil
}
