/*
 * atom.go, part of pmg.
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
	"fmt"

	v3 "github.com/rmera/pmg/v3"
)

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

//Atom contains the information of an atom that is relevant for electrostatics,
//plus some identification fields.
type Atom struct {
	Name    string  //PDB name of the atom
	Id      int     //The PDB index of the atom
	Molname string  //PDB name of the residue or molecule (3-letter code for residues)
	Molid   int     //PDB index of the corresponding residue or molecule
	Chain   string  //One-character PDB name for a chain.
	Charge  float64 //Partial charge on an atom, in e
	Radius  float64 //Radius used to build the molecular surface, in A
	Symbol  string
	Het     bool //is the atom an hetatm in the pdb file? (if applicable)
}

//Copy puts a copy of A in N.
func (N *Atom) Copy(A *Atom) {
	if N == nil || A == nil {
		panic(ErrNilAtom)
	}
	*N = *A
}

//Topology contains information about a molecular system, but not coordinates.
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the atoms in ats. The slice is not copied.
func NewTopology(ats []*Atom) *Topology {
	return &Topology{Atoms: ats}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(ErrAtomOutOfRange)
	}
	return T.Atoms[i]
}

//AppendAtom appends an atom at the end of the reference
func (T *Topology) AppendAtom(at *Atom) {
	T.Atoms = append(T.Atoms, at)
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	//if T.Atoms is nil, return len(T.Atoms) will panic, so I will let that happen for now.
	return len(T.Atoms)
}

//Charge returns the total charge of the topology.
func (T *Topology) Charge() float64 {
	q := 0.0
	for _, at := range T.Atoms {
		q += at.Charge
	}
	return q
}

//Molecule contains all the info for a molecule in a single state:
//a topology and a set of coordinates.
type Molecule struct {
	*Topology
	Coords *v3.Matrix
}

//NewMolecule makes a molecule with ats atoms and coords coordinates.
//It returns an error if the number of atoms and coordinates differ.
func NewMolecule(coords *v3.Matrix, ats *Topology) (*Molecule, error) {
	if ats == nil || coords == nil {
		return nil, newError(ErrMismatchedCoordinates, "NewMolecule", "nil topology or coordinates")
	}
	if ats.Len() != coords.NVecs() {
		return nil, newError(ErrMismatchedCoordinates, "NewMolecule", "%d atoms and %d coordinates", ats.Len(), coords.NVecs())
	}
	return &Molecule{Topology: ats, Coords: coords}, nil
}

//Position returns the coordinates of the ith atom.
func (M *Molecule) Position(i int) [3]float64 {
	return M.Coords.Vec(i)
}

//Check returns an error if the molecule has no atoms, or some of them
//have a negative radius or non-finite data.
func (M *Molecule) Check() error {
	if M.Len() == 0 {
		return newError(ErrNoAtoms, "Check", "")
	}
	for i, at := range M.Atoms {
		p := M.Position(i)
		if !finite(p[0], p[1], p[2], at.Charge, at.Radius) {
			return newError(ErrBadParams, "Check", "atom %d (%s) has position %v, charge %g and radius %g", i, at.Name, p, at.Charge, at.Radius)
		}
		if at.Radius < 0 {
			return newError(ErrBadParams, "Check", "atom %d (%s) has a negative radius %g", i, at.Name, at.Radius)
		}
	}
	return nil
}

//String returns a summary of the molecule.
func (M *Molecule) String() string {
	return fmt.Sprintf("Molecule with %d atoms and net charge %.4f e", M.Len(), M.Charge())
}

//PanicMsg is the type used for all the panics raised in the pmg package.
type PanicMsg string

//Error returns a string with an error message
func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilAtom        = PanicMsg("pmg: Attempted to copy from or to a nil Atom")
	ErrAtomOutOfRange = PanicMsg("pmg: Tried to access an atom out of range")
)
