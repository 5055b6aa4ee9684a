/*
 * interfaces.go, part of pmg.
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

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// AtomModel is an ordered set of atoms with positions. It is all
// a Problem needs to know about the solute: the charge and radius
// of each atom come from Atom(i), and its position from Position(i).
type AtomModel interface {
	Atomer

	//Position returns the cartesian coordinates of the ith atom, in A.
	Position(i int) [3]float64
}

//Errorer is the interface for errors in pmg.
//The Decorate method allows the functions that receive an error
//from another function to add their names, so the call chain
//can be followed when the error is finally printed.
type Errorer interface {
	Error() string

	//Decorate adds dec to the decoration slice of the error,
	//and returns the slice. If dec is empty, it just returns the slice.
	Decorate(dec string) []string
}

//CriticalErrorer is an Errorer that knows whether the program can go on.
type CriticalErrorer interface {
	Errorer
	Critical() bool
}
