/*
 * params.go, part of pmg.
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

	"github.com/rmera/pmg/mesh"
	"github.com/rmera/pmg/solver"
	"github.com/sirupsen/logrus"
)

//BoundaryCondition selects how the Dirichlet data on the outer faces of a mesh
//is obtained. The numbering is the one used in input files.
type BoundaryCondition int

const (
	Zero       BoundaryCondition = 0 //zero potential
	SingleDH   BoundaryCondition = 1 //Debye-Huckel potential of a single sphere containing the solute
	MultipleDH BoundaryCondition = 2 //sum of the Debye-Huckel potentials of every atom
	Focus      BoundaryCondition = 4 //interpolated from a coarser solution
)

func (b BoundaryCondition) String() string {
	switch b {
	case Zero:
		return "zero"
	case SingleDH:
		return "sdh"
	case MultipleDH:
		return "mdh"
	case Focus:
		return "focus"
	}
	return fmt.Sprintf("bc(%d)", int(b))
}

//ParseBoundaryCondition returns the boundary condition with the given name
//(zero, sdh, mdh, focus) or numeric key.
func ParseBoundaryCondition(s string) (BoundaryCondition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, b := range []BoundaryCondition{Zero, SingleDH, MultipleDH, Focus} {
		if s == b.String() || s == fmt.Sprint(int(b)) {
			return b, nil
		}
	}
	return -1, newError(ErrBadBoundaryCondition, "ParseBoundaryCondition", "%q", s)
}

//DielectricMethod selects how the dielectric coefficients at the edge
//midpoints are obtained from the molecular surface.
type DielectricMethod int

const (
	Unsmoothed DielectricMethod = 0 //surface test at the edge midpoint
	Smoothed   DielectricMethod = 1 //harmonic average over three points of the edge
)

//SurfaceMethod selects the surface definition for accessibility maps.
type SurfaceMethod int

const (
	MolecularSurface   SurfaceMethod = 0
	VdwSurface         SurfaceMethod = 1
	InflatedVdwSurface SurfaceMethod = 2
)

//Params contains the mesh and solver parameters for a Problem.
type Params struct {
	N         [3]int
	H         [3]float64 //A
	Center    [3]float64 //A
	Boundary  BoundaryCondition
	Method    solver.Method
	Nonlinear bool
	Tol       float64 //relative residual for the solver
	MaxIter   int
	Levels    int //maximum multigrid levels, 0 for as many as possible
	Log       logrus.FieldLogger
}

//DefaultParams returns parameters for a linear problem on a 65x65x65 mesh with
//0.5 A spacing centered in the origin, single sphere Debye-Huckel boundary
//conditions, and the CGMG solver.
func DefaultParams() *Params {
	return &Params{
		N:        [3]int{65, 65, 65},
		H:        [3]float64{0.5, 0.5, 0.5},
		Boundary: SingleDH,
		Method:   solver.CGMG,
		Tol:      1e-6,
		MaxIter:  500,
		Log:      logrus.StandardLogger(),
	}
}

//SetLength sets the spacings so the mesh spans glen along each axis.
func (p *Params) SetLength(glen [3]float64) {
	for a := 0; a < 3; a++ {
		p.H[a] = glen[a] / float64(p.N[a]-1)
	}
}

//Geometry returns the mesh described by the parameters.
func (p *Params) Geometry() (*mesh.Geometry, error) {
	g, err := mesh.New(p.N, p.H, p.Center)
	if err != nil {
		return nil, newError(ErrBadParams, "Geometry", "%v", err)
	}
	return g, nil
}

func (p *Params) check() error {
	switch p.Boundary {
	case Zero, SingleDH, MultipleDH, Focus:
	default:
		return newError(ErrBadBoundaryCondition, "check", "%d", int(p.Boundary))
	}
	if p.Tol < 0 || p.MaxIter < 0 || p.Levels < 0 {
		return newError(ErrBadParams, "check", "tolerance %g, iterations %d, levels %d", p.Tol, p.MaxIter, p.Levels)
	}
	return nil
}

func (p *Params) solverOptions(log logrus.FieldLogger) *solver.Options {
	o := solver.DefaultOptions()
	o.Tol(p.Tol)
	o.MaxIter(p.MaxIter)
	o.Levels(p.Levels)
	o.Log(log)
	return o
}
