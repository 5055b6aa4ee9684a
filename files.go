/*
 * files.go, part of pmg.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/pmg/v3"
)

//PQRFileRead reads the atoms in the PQR file pqrname and returns a Molecule.
func PQRFileRead(pqrname string) (*Molecule, error) {
	pqrfile, err := os.Open(pqrname)
	if err != nil {
		return nil, err
	}
	defer pqrfile.Close()
	mol, err := PQRRead(pqrfile)
	if err != nil {
		err = errDecorate(err, "PQRFileRead "+pqrname)
	}
	return mol, err
}

//PQRRead reads the ATOM and HETATM records of a PQR file from pqr.
//After the record name, a record contains, separated by spaces, the atom
//serial number, the atom name, the residue name, an optional chain
//identifier, the residue number, the coordinates, the charge and the radius.
//Radii that are zero or negative are taken from a table of
//van der Waals radii, using the element guessed from the atom name.
func PQRRead(pqr io.Reader) (*Molecule, error) {
	bufiopqr := bufio.NewReader(pqr)
	var atoms []*Atom
	var coords []float64
	lnumber := 0
	for {
		line, err := bufiopqr.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, newError(ErrPQRFormat, "PQRRead", "reading line %d: %v", lnumber+1, err)
		}
		if line != "" {
			lnumber++
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			at, c, perr := readPQRLine(line)
			if perr != nil {
				return nil, newError(ErrPQRFormat, "PQRRead", "line %d: %v", lnumber, perr)
			}
			atoms = append(atoms, at)
			coords = append(coords, c[:]...)
		}
		if err == io.EOF {
			break
		}
	}
	if len(atoms) == 0 {
		return nil, newError(ErrNoAtoms, "PQRRead", "no ATOM or HETATM records")
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, newError(ErrPQRFormat, "PQRRead", "%v", err)
	}
	return NewMolecule(mcoords, NewTopology(atoms))
}

//readPQRLine parses a valid ATOM or HETATM line of a PQR file and returns an Atom
//and its coordinates.
func readPQRLine(line string) (*Atom, [3]float64, error) {
	var coords [3]float64
	fields := strings.Fields(line)
	//The record name can be glued to the serial number in large files.
	if len(fields[0]) > 6 {
		fields = append([]string{fields[0][:6], fields[0][6:]}, fields[1:]...)
	}
	//10 fields without a chain ID, 11 with one.
	if len(fields) != 10 && len(fields) != 11 {
		return nil, coords, fmt.Errorf("expected 10 or 11 fields, found %d", len(fields))
	}
	var numbers [5]float64
	var err error
	nf := len(fields)
	for i := 0; i < 5; i++ {
		numbers[i], err = strconv.ParseFloat(fields[nf-5+i], 64)
		if err != nil {
			return nil, coords, fmt.Errorf("field %d: %v", nf-5+i+1, err)
		}
		if !finite(numbers[i]) {
			return nil, coords, fmt.Errorf("field %d: non-finite value %q", nf-5+i+1, fields[nf-5+i])
		}
	}
	at := new(Atom)
	at.Het = fields[0] == "HETATM"
	if at.Id, err = strconv.Atoi(fields[1]); err != nil {
		return nil, coords, fmt.Errorf("atom serial number: %v", err)
	}
	at.Name = fields[2]
	at.Molname = fields[3]
	if nf == 11 {
		at.Chain = fields[4]
	}
	if at.Molid, err = strconv.Atoi(fields[nf-6]); err != nil {
		return nil, coords, fmt.Errorf("residue number: %v", err)
	}
	copy(coords[:], numbers[:3])
	at.Charge = numbers[3]
	at.Radius = numbers[4]
	at.Symbol, _ = symbolFromName(at.Name)
	if at.Radius <= 0 {
		r, ok := VdwRadius(at.Symbol)
		if !ok {
			return nil, coords, fmt.Errorf("no radius for atom %s and no element to take it from", at.Name)
		}
		at.Radius = r
	}
	return at, coords, nil
}

//PQRFileWrite writes mol in PQR format to the file pqrname.
func PQRFileWrite(pqrname string, mol AtomModel) error {
	out, err := os.Create(pqrname)
	if err != nil {
		return err
	}
	defer out.Close()
	return errDecorate(PQRWrite(out, mol), "PQRFileWrite "+pqrname)
}

//PQRWrite writes mol in PQR format to out. Fields are separated by at least one
//space, so the output can be read by PQRRead.
func PQRWrite(out io.Writer, mol AtomModel) error {
	w := bufio.NewWriter(out)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		c := mol.Position(i)
		record := "ATOM  "
		if at.Het {
			record = "HETATM"
		}
		chain := at.Chain
		if chain == "" {
			chain = " "
		}
		_, err := fmt.Fprintf(w, "%6s%5d %-4s %3s %1s %4d    %8.3f %8.3f %8.3f %7.4f %6.4f\n",
			record, at.Id, at.Name, at.Molname, chain, at.Molid, c[0], c[1], c[2], at.Charge, at.Radius)
		if err != nil {
			return newError(ErrPQRFormat, "PQRWrite", "%v", err)
		}
	}
	if _, err := fmt.Fprintln(w, "END"); err != nil {
		return newError(ErrPQRFormat, "PQRWrite", "%v", err)
	}
	return w.Flush()
}
