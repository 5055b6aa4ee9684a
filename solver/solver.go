/*
 * solver.go, part of pmg.
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

//Package solver solves the discretized Poisson-Boltzmann equation
//
// -div(eps grad u) + kappa2 u = f      (linear)
// -div(eps grad u) + kappa2 sinh(u) = f (nonlinear)
//
//on a Cartesian mesh with Dirichlet data on the outer layer of points.
//The method is selected with a Method key.
package solver

import (
	"fmt"
	"strings"

	"github.com/rmera/pmg/mesh"
	"github.com/sirupsen/logrus"
)

//Method selects the algorithm used by Solve. The numbering is stable and
//is the one used in input files.
type Method int

const (
	CGMG   Method = iota //Conjugate gradient preconditioned with a multigrid V-cycle.
	Newton               //Inexact Newton with CGMG inner solves.
	MG                   //Multigrid V-cycles.
	CGHS                 //Jacobi-preconditioned conjugate gradient.
	SOR                  //Successive over-relaxation.
	GSRB                 //Red-black Gauss-Seidel.
	WJAC                 //Weighted Jacobi.
	RICH                 //Richardson.
)

var methodNames = [...]string{"cgmg", "newton", "mg", "cghs", "sor", "gsrb", "wjac", "rich"}

func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

func (m Method) valid() bool {
	return m >= CGMG && m <= RICH
}

//ParseMethod returns the method with the given name (case insensitive) or
//numeric key.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range methodNames {
		if v == s || fmt.Sprint(i) == s {
			return Method(i), nil
		}
	}
	return -1, Error{fmt.Sprintf("%s: %q", ErrUnknownMethod, s), []string{"ParseMethod"}, true}
}

//System is a discretized problem. All slices are co-indexed with Geom.
//U holds the initial guess on input and the solution on output; its
//outer layer is overwritten with the data in Boundary.
type System struct {
	Geom      *mesh.Geometry
	A1        []float64 //edge coefficients along x
	A2        []float64
	A3        []float64
	CCF       []float64 //screening coefficient
	FCF       []float64 //source
	U         []float64
	Boundary  *mesh.Boundary
	Nonlinear bool
}

func (s *System) check() error {
	if s == nil || s.Geom == nil || s.Boundary == nil {
		return Error{ErrIncompleteSystem, []string{"check"}, true}
	}
	l := s.Geom.Len()
	for _, v := range [][]float64{s.A1, s.A2, s.A3, s.CCF, s.FCF, s.U} {
		if len(v) != l {
			return Error{fmt.Sprintf("%s: array of length %d for a mesh of %d points", ErrIncompleteSystem, len(v), l), []string{"check"}, true}
		}
	}
	return nil
}

//Stats describes a solver run. Residuals are 2-norms over the
//interior points.
type Stats struct {
	Iterations int
	Initial    float64
	Residual   float64
	Converged  bool
}

//Options contains options for the solvers.
type Options struct {
	tol     float64
	maxIter int
	smooth  int
	omega   float64
	levels  int
	log     logrus.FieldLogger
}

//DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{
		tol:     1e-6,
		maxIter: 500,
		smooth:  2,
		omega:   1.5,
		levels:  0,
		log:     logrus.StandardLogger(),
	}
}

//Tol sets the convergence tolerance, relative to the initial residual, if
//a value is given, and returns the current one.
func (o *Options) Tol(tol ...float64) float64 {
	if len(tol) > 0 && tol[0] > 0 {
		o.tol = tol[0]
	}
	return o.tol
}

//MaxIter sets the maximum number of iterations (outer ones, for Newton),
//if given, and returns the current one.
func (o *Options) MaxIter(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		o.maxIter = n[0]
	}
	return o.maxIter
}

//Smooth sets the number of pre- and post-smoothing sweeps for the multigrid
//methods, if given, and returns the current one.
func (o *Options) Smooth(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		o.smooth = n[0]
	}
	return o.smooth
}

//Omega sets the SOR relaxation parameter, if given. It has to be in (0,2).
func (o *Options) Omega(w ...float64) float64 {
	if len(w) > 0 && w[0] > 0 && w[0] < 2 {
		o.omega = w[0]
	}
	return o.omega
}

//Levels sets the maximum number of multigrid levels, if given. 0 means
//as many as the mesh allows.
func (o *Options) Levels(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		o.levels = n[0]
	}
	return o.levels
}

//Log sets the logger, if given, and returns the current one.
func (o *Options) Log(l ...logrus.FieldLogger) logrus.FieldLogger {
	if len(l) > 0 && l[0] != nil {
		o.log = l[0]
	}
	return o.log
}

//Solve solves sys with method m, leaving the solution in sys.U.
//An unknown method returns an error and nothing is computed.
//Failing to converge is not an error; check Stats.Converged.
func Solve(m Method, sys *System, o *Options) (Stats, error) {
	if !m.valid() {
		return Stats{}, Error{fmt.Sprintf("%s: %d", ErrUnknownMethod, int(m)), []string{"Solve"}, true}
	}
	if err := sys.check(); err != nil {
		return Stats{}, errDecorate(err, "Solve")
	}
	if o == nil {
		o = DefaultOptions()
	}
	if sys.Nonlinear && (m == CGMG || m == CGHS) {
		return Stats{}, Error{fmt.Sprintf("%s: %s", ErrNonlinearCG, m), []string{"Solve"}, true}
	}
	g := sys.Geom
	sys.Boundary.Apply(g, sys.U)
	var st Stats
	if sys.Nonlinear {
		nop := newNonlinearOperator(g.N, g.H, sys.A1, sys.A2, sys.A3, sys.CCF)
		switch m {
		case Newton:
			st = newton(nop, sys.FCF, sys.U, cgmgSolve, o)
		case MG:
			st = newton(nop, sys.FCF, sys.U, mgSolve, o)
		default:
			st = relax(m, nonlinearPoints{nop: nop, f: sys.FCF}, sys.U, o)
		}
	} else {
		op := newOperator(g.N, g.H, sys.A1, sys.A2, sys.A3, sys.CCF)
		switch m {
		case SOR, GSRB, WJAC, RICH:
			st = relax(m, linearPoints{op: op, b: sys.FCF}, sys.U, o)
		default:
			st = correct(m, op, sys.FCF, sys.U, o)
		}
	}
	entry := o.Log().WithFields(logrus.Fields{"method": m.String(), "iterations": st.Iterations, "residual": st.Residual})
	if st.Converged {
		entry.Debug("solver converged")
	} else {
		entry.Warn("solver did not converge")
	}
	return st, nil
}

//linearSolver solves A x = b for x, zero on the boundary.
type linearSolver func(op *operator, b, x []float64, o *Options) Stats

//correct solves the linear problem A u = f, with Dirichlet data in u, by
//solving for a correction that vanishes on the boundary.
func correct(m Method, op *operator, f, u []float64, o *Options) Stats {
	r := make([]float64, len(u))
	op.residual(f, u, r)
	e := make([]float64, len(u))
	var st Stats
	switch m {
	case CGMG:
		st = cgmgSolve(op, r, e, o)
	case Newton:
		//A single Newton step on a linear problem is a linear solve.
		st = cgmgSolve(op, r, e, o)
	case MG:
		st = mgSolve(op, r, e, o)
	case CGHS:
		st = cghsSolve(op, r, e, o)
	}
	op.eachInterior(func(idx int) {
		u[idx] += e[idx]
	})
	return st
}

//newton solves N(u) = f with damped Newton iterations, each linearized
//problem solved by inner.
func newton(nop *nonlinearOperator, f, u []float64, inner linearSolver, o *Options) Stats {
	n := len(u)
	r := make([]float64, n)
	du := make([]float64, n)
	trial := make([]float64, n)
	res := nop.residual(f, u, r)
	st := Stats{Initial: res, Residual: res}
	if res == 0 {
		st.Converged = true
		return st
	}
	io := *o
	io.tol = 1e-3
	for st.Iterations < o.MaxIter() {
		J := nop.jacobian(u)
		for i := range du {
			du[i] = 0
		}
		inner(J, r, du, &io)
		//Halve the step until the residual decreases.
		step := 1.0
		var newRes float64
		for s := 0; s < 20; s++ {
			copy(trial, u)
			J.eachInterior(func(idx int) {
				trial[idx] += step * du[idx]
			})
			newRes = nop.residual(f, trial, r)
			if newRes < res {
				break
			}
			step /= 2
		}
		copy(u, trial)
		res = newRes
		st.Iterations++
		st.Residual = res
		o.Log().WithFields(logrus.Fields{"iteration": st.Iterations, "step": step}).Debugf("newton residual %g", res/st.Initial)
		if res/st.Initial < o.Tol() {
			st.Converged = true
			break
		}
	}
	return st
}

//Error is the error type for the solver package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}

//Messages for the errors returned by the package.
const (
	ErrUnknownMethod    = "pmg/solver: unknown solver method"
	ErrIncompleteSystem = "pmg/solver: incomplete system"
	ErrNonlinearCG      = "pmg/solver: conjugate gradient methods need a linear problem"
)
