/*
 * problem.go, part of pmg.
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
	"github.com/rmera/pmg/mesh"
	"github.com/rmera/pmg/solver"
	"github.com/sirupsen/logrus"
)

//Problem is a Poisson-Boltzmann problem on one mesh. It owns the coefficient
//arrays, the boundary data, the partition mask and the potential.
type Problem struct {
	params Params
	pbe    *PBE
	geom   *mesh.Geometry
	a      [3][]float64 //dielectric at the +1/2 edge midpoints
	ccf    []float64
	fcf    []float64
	u      []float64
	//Surface marks set by FillCo, kept so the dielectric can be
	//rebuilt with another method.
	ionTag  []byte
	edgeTag [3][]byte
	bnd     *mesh.Boundary
	pvec    []float64

	extEnergy float64
	filled    bool
	solved    bool
	destroyed bool
	log       logrus.FieldLogger
}

//New returns a problem for the atoms and physical parameters in pbe, on
//the mesh and with the solver settings given in params. The focusing
//boundary condition is not allowed here, use NewFocus for that.
func New(params *Params, pbe *PBE) (*Problem, error) {
	if params != nil && params.Boundary == Focus {
		return nil, newError(ErrFocusBoundary, "New", "use NewFocus to build a focused problem")
	}
	P, err := newProblem(params, pbe)
	return P, errDecorate(err, "New")
}

func newProblem(params *Params, pbe *PBE) (*Problem, error) {
	if params == nil {
		params = DefaultParams()
	}
	if pbe == nil {
		return nil, newError(ErrBadParams, "newProblem", "nil PBE")
	}
	if err := params.check(); err != nil {
		return nil, errDecorate(err, "newProblem")
	}
	g, err := params.Geometry()
	if err != nil {
		return nil, errDecorate(err, "newProblem")
	}
	P := &Problem{params: *params, pbe: pbe, geom: g, log: params.Log}
	if P.log == nil {
		P.log = logrus.StandardLogger()
	}
	n := g.Len()
	for a := 0; a < 3; a++ {
		P.a[a] = make([]float64, n)
		P.edgeTag[a] = make([]byte, n)
	}
	P.ccf = make([]float64, n)
	P.fcf = make([]float64, n)
	P.u = make([]float64, n)
	P.ionTag = make([]byte, n)
	P.pvec = make([]float64, n)
	P.bnd = mesh.NewBoundary(g.N)
	P.ClearPartition()
	P.log.WithFields(logrus.Fields{"mesh": g.String(), "bc": P.params.Boundary.String()}).Debug("new problem")
	return P, nil
}

//check returns an error if the problem can't be used for an operation that
//needs the coefficients filled, and, if solved is true, the potential computed.
func (P *Problem) check(caller string, solved bool) error {
	switch {
	case P.destroyed:
		return newError(ErrDestroyed, caller, "")
	case !P.filled:
		return newError(ErrNotFilled, caller, "")
	case solved && !P.solved:
		return newError(ErrNotSolved, caller, "")
	}
	return nil
}

//Destroy releases the arrays of the problem. Every later call on it returns an error.
func (P *Problem) Destroy() {
	P.a = [3][]float64{}
	P.edgeTag = [3][]byte{}
	P.ccf, P.fcf, P.u, P.pvec, P.ionTag = nil, nil, nil, nil, nil
	P.bnd = nil
	P.filled, P.solved = false, false
	P.destroyed = true
}

//Destroyed returns true if the problem was destroyed, either directly or by
//focusing a new problem from it.
func (P *Problem) Destroyed() bool { return P.destroyed }

//Geometry returns the mesh of the problem.
func (P *Problem) Geometry() *mesh.Geometry { return P.geom }

//Params returns a copy of the parameters of the problem.
func (P *Problem) Params() Params { return P.params }

//PBE returns the physical parameters of the problem.
func (P *Problem) PBE() *PBE { return P.pbe }

//Boundary returns the Dirichlet data of the problem. It is only meaningful
//after FillCo, or right after NewFocus.
func (P *Problem) Boundary() *mesh.Boundary { return P.bnd }

//ExternalEnergy returns the energy of the charges outside the mesh, obtained from
//a coarser problem when focusing. It is zero for problems built with New.
func (P *Problem) ExternalEnergy() float64 { return P.extEnergy }

//Filled returns true if the coefficient arrays are ready for the solver.
func (P *Problem) Filled() bool { return P.filled }

//Solved returns true if the potential has been computed.
func (P *Problem) Solved() bool { return P.solved }

//Solve computes the potential with the method given in the parameters.
//Not converging is not an error, but it is logged, and reported in the
//returned statistics.
func (P *Problem) Solve() (solver.Stats, error) {
	if err := P.check("Solve", false); err != nil {
		return solver.Stats{}, err
	}
	sys := &solver.System{
		Geom:      P.geom,
		A1:        P.a[0],
		A2:        P.a[1],
		A3:        P.a[2],
		CCF:       P.ccf,
		FCF:       P.fcf,
		U:         P.u,
		Boundary:  P.bnd,
		Nonlinear: P.params.Nonlinear,
	}
	st, err := solver.Solve(P.params.Method, sys, P.params.solverOptions(P.log))
	if err != nil {
		return st, newError(ErrBadParams, "Solve", "%v", err)
	}
	P.solved = true
	P.log.WithFields(logrus.Fields{"method": P.params.Method.String(), "iterations": st.Iterations}).Info("potential computed")
	return st, nil
}

//SetPotential replaces the potential with a copy of u, for instance one
//read from a file, so the observables can be obtained from it.
//The coefficients must have been filled.
func (P *Problem) SetPotential(u []float64) error {
	if err := P.check("SetPotential", false); err != nil {
		return err
	}
	if len(u) != len(P.u) {
		return newError(ErrBadParams, "SetPotential", "%d values for a mesh of %d points", len(u), len(P.u))
	}
	copy(P.u, u)
	P.solved = true
	return nil
}

//focusing returns true if the boundary data comes from a coarser problem.
func (P *Problem) focusing() bool { return P.params.Boundary == Focus }
