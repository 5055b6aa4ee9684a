/*
 * input.go, part of pmg.
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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rmera/pmg"
	"github.com/rmera/pmg/dx"
	"github.com/rmera/pmg/mesh"
	"github.com/rmera/pmg/solver"
	"github.com/sirupsen/logrus"
)

//Input is a calculation file. Every elec block after the first one
//is focused from the previous block.
type Input struct {
	Molecule      string      `toml:"molecule"`
	Temperature   float64     `toml:"temperature"`
	SoluteDiel    float64     `toml:"solute_diel"`
	SolventDiel   float64     `toml:"solvent_diel"`
	SolventRadius float64     `toml:"solvent_radius"`
	SpherePoints  int         `toml:"sphere_points"`
	Ions          []IonInput  `toml:"ion"`
	Elec          []ElecInput `toml:"elec"`

	dir string //the molecule path is relative to the input file
	md  toml.MetaData
}

type IonInput struct {
	Charge float64 `toml:"charge"`
	Conc   float64 `toml:"conc"`
	Radius float64 `toml:"radius"`
}

//ElecInput describes one mesh. Either Grid (spacings) or Glen (lengths)
//must be given. An empty Center puts the mesh on the center of the solute.
type ElecInput struct {
	Name      string     `toml:"name"`
	Dime      [3]int     `toml:"dime"`
	Grid      [3]float64 `toml:"grid"`
	Glen      [3]float64 `toml:"glen"`
	Center    []float64  `toml:"center"`
	BC        string     `toml:"bcfl"`
	Method    string     `toml:"method"`
	Surface   string     `toml:"srfm"`
	Nonlinear bool       `toml:"nonlinear"`
	Tol       float64    `toml:"tol"`
	MaxIter   int        `toml:"maxiter"`
	Write     []string   `toml:"write"`
	Partition *BoxInput  `toml:"partition"`
}

//BoxInput is a closed box. Observables are restricted to it.
type BoxInput struct {
	Min [3]float64 `toml:"min"`
	Max [3]float64 `toml:"max"`
}

//ReadInput decodes the calculation file name. Unknown keys are errors.
func ReadInput(name string) (*Input, error) {
	in := new(Input)
	md, err := toml.DecodeFile(name, in)
	if err != nil {
		return nil, fmt.Errorf("pmg: reading input %s: %w", name, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("pmg: unknown keys in %s: %s", name, strings.Join(keys, ", "))
	}
	in.md = md
	in.dir = filepath.Dir(name)
	if in.Molecule == "" {
		return nil, fmt.Errorf("pmg: no molecule in %s", name)
	}
	if len(in.Elec) == 0 {
		return nil, fmt.Errorf("pmg: no elec blocks in %s", name)
	}
	return in, nil
}

//pbeParams returns the physical parameters, with defaults for the
//keys not present in the file.
func (in *Input) pbeParams() *pmg.PBEParams {
	p := pmg.DefaultPBEParams()
	if in.md.IsDefined("temperature") {
		p.Temperature = in.Temperature
	}
	if in.md.IsDefined("solute_diel") {
		p.SoluteDiel = in.SoluteDiel
	}
	if in.md.IsDefined("solvent_diel") {
		p.SolventDiel = in.SolventDiel
	}
	if in.md.IsDefined("solvent_radius") {
		p.SolventRadius = in.SolventRadius
	}
	if in.SpherePoints > 0 {
		p.SpherePoints = in.SpherePoints
	}
	for _, v := range in.Ions {
		p.Ions = append(p.Ions, pmg.Ion{Charge: v.Charge, Conc: v.Conc, Radius: v.Radius})
	}
	return p
}

func (e *ElecInput) params(pbe *pmg.PBE, log logrus.FieldLogger) (*pmg.Params, pmg.DielectricMethod, error) {
	p := pmg.DefaultParams()
	p.Log = log
	p.N = e.Dime
	switch {
	case e.Grid != [3]float64{}:
		p.H = e.Grid
	case e.Glen != [3]float64{}:
		p.SetLength(e.Glen)
	default:
		return nil, 0, fmt.Errorf("neither grid nor glen given")
	}
	switch len(e.Center) {
	case 0:
		p.Center = pbe.SoluteCenter()
	case 3:
		copy(p.Center[:], e.Center)
	default:
		return nil, 0, fmt.Errorf("center needs 3 values, got %d", len(e.Center))
	}
	var err error
	if e.BC != "" {
		if p.Boundary, err = pmg.ParseBoundaryCondition(e.BC); err != nil {
			return nil, 0, err
		}
	}
	if e.Method != "" {
		if p.Method, err = solver.ParseMethod(e.Method); err != nil {
			return nil, 0, err
		}
	}
	p.Nonlinear = e.Nonlinear
	if e.Tol > 0 {
		p.Tol = e.Tol
	}
	if e.MaxIter > 0 {
		p.MaxIter = e.MaxIter
	}
	diel := pmg.Smoothed
	switch strings.ToLower(e.Surface) {
	case "", "smol":
	case "mol":
		diel = pmg.Unsmoothed
	default:
		return nil, 0, fmt.Errorf("unknown surface method %q", e.Surface)
	}
	return p, diel, nil
}

//Result contains the observables of one elec block, in kT.
type Result struct {
	Name     string
	Energy   float64
	QF       float64
	Diel     float64
	QM       float64
	External float64
	Solver   solver.Stats
	Files    []string
}

func (r Result) String() string {
	return fmt.Sprintf("%s: total %.6g kT (qf %.6g, diel %.6g, qm %.6g, external %.6g), %d iterations, residual %.3g",
		r.Name, r.Energy, r.QF, r.Diel, r.QM, r.External, r.Solver.Iterations, r.Solver.Residual)
}

//Run performs the calculations in in, writing the requested maps to
//outdir with the extension format, and printing the results to out.
func Run(in *Input, outdir, format string, out io.Writer, log logrus.FieldLogger) ([]Result, error) {
	molname := in.Molecule
	if !filepath.IsAbs(molname) {
		molname = filepath.Join(in.dir, molname)
	}
	mol, err := pmg.PQRFileRead(molname)
	if err != nil {
		return nil, err
	}
	pbe, err := pmg.NewPBE(mol, in.pbeParams())
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"atoms": mol.Len(), "charge": pbe.SoluteCharge(), "ionic strength": pbe.IonicStrength()}).Info("molecule read")
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, err
	}
	var prev *pmg.Problem
	results := make([]Result, 0, len(in.Elec))
	for i := range in.Elec {
		e := &in.Elec[i]
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("elec%d", i)
		}
		elog := log.WithField("elec", name)
		params, diel, err := e.params(pbe, elog)
		if err != nil {
			return results, fmt.Errorf("pmg: elec %s: %w", name, err)
		}
		var P *pmg.Problem
		if prev == nil {
			P, err = pmg.New(params, pbe)
		} else {
			P, err = pmg.NewFocus(params, pbe, prev)
		}
		if err != nil {
			return results, err
		}
		r, err := solve(P, diel, e.Partition)
		if err != nil {
			return results, err
		}
		r.Name = name
		for _, w := range e.Write {
			fname, err := writeMap(P, w, filepath.Join(outdir, name), format)
			if err != nil {
				return results, err
			}
			r.Files = append(r.Files, fname)
		}
		fmt.Fprintln(out, r)
		results = append(results, r)
		prev = P
	}
	return results, nil
}

func solve(P *pmg.Problem, diel pmg.DielectricMethod, part *BoxInput) (Result, error) {
	var r Result
	if err := P.FillCo(diel); err != nil {
		return r, err
	}
	var err error
	if r.Solver, err = P.Solve(); err != nil {
		return r, err
	}
	if part != nil {
		if err = P.SetPartition(mesh.Box{Min: part.Min, Max: part.Max}); err != nil {
			return r, err
		}
		defer P.ClearPartition()
	}
	if r.Energy, err = P.Energy(true); err != nil {
		return r, err
	}
	if r.QF, err = P.QFEnergy(); err != nil {
		return r, err
	}
	if r.Diel, err = P.DielEnergy(diel); err != nil {
		return r, err
	}
	if r.QM, err = P.QMEnergy(); err != nil {
		return r, err
	}
	r.External = P.ExternalEnergy()
	return r, nil
}

//writeMap writes the field with the given name of P to the file
//prefix-name.format and returns the file name.
func writeMap(P *pmg.Problem, name, prefix, format string) (string, error) {
	kind, err := pmg.ParseDataKind(name)
	if err != nil {
		return "", err
	}
	gr, err := P.Grid(kind)
	if err != nil {
		return "", err
	}
	fname := fmt.Sprintf("%s-%s.%s", prefix, kind, strings.TrimPrefix(format, "."))
	return fname, dx.WriteFile(fname, gr, fmt.Sprintf("%s on %s", kind, P.Geometry()))
}
