/*
 * netcdf.go, part of pmg.
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

package dx

import (
	"fmt"

	"github.com/ctessum/cdf"
)

//Global attributes holding the mesh geometry, in x, y, z order.
const (
	attrOrigin  = "origin"
	attrSpacing = "spacing"
)

//Variable is the name of the variable used by WriteFile and ReadFile.
const Variable = "data"

//WriteNetCDF writes gr as the variable name of a new netCDF file. The mesh
//origin and spacing are stored as global attributes; the variable has
//dimensions (nz, ny, nx).
func WriteNetCDF(f cdf.ReaderWriterAt, gr *Grid, name, description string) error {
	if len(gr.Data) != gr.len() {
		return Error{fmt.Sprintf("%s: %d values for %d points", ErrDataSize, len(gr.Data), gr.len()), "", []string{"WriteNetCDF"}, true}
	}
	h := cdf.NewHeader([]string{"nx", "ny", "nz"}, []int{gr.N[0], gr.N[1], gr.N[2]})
	h.AddAttribute("", "comment", "Scalar field on a regular mesh, written by pmg")
	h.AddAttribute("", attrOrigin, gr.Min[:])
	h.AddAttribute("", attrSpacing, gr.H[:])
	h.AddVariable(name, []string{"nz", "ny", "nx"}, []float64{0})
	h.AddAttribute(name, "description", description)
	h.Define()
	nc, err := cdf.Create(f, h)
	if err != nil {
		return Error{err.Error(), "", []string{"cdf.Create", "WriteNetCDF"}, true}
	}
	end := nc.Header.Lengths(name)
	start := make([]int, len(end))
	w := nc.Writer(name, start, end)
	if _, err := w.Write(gr.Data); err != nil {
		return Error{err.Error(), "", []string{"Write", "WriteNetCDF"}, true}
	}
	return nil
}

//ReadNetCDF reads the variable name from a netCDF file written by WriteNetCDF.
func ReadNetCDF(f cdf.ReaderWriterAt, name string) (*Grid, error) {
	nc, err := cdf.Open(f)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"cdf.Open", "ReadNetCDF"}, true}
	}
	dims := nc.Header.Lengths(name)
	if len(dims) != 3 {
		return nil, Error{fmt.Sprintf("%s: variable %q has %d dimensions", ErrFormat, name, len(dims)), "", []string{"ReadNetCDF"}, true}
	}
	gr := &Grid{N: [3]int{dims[2], dims[1], dims[0]}}
	for attr, dst := range map[string]*[3]float64{attrOrigin: &gr.Min, attrSpacing: &gr.H} {
		v, ok := nc.Header.GetAttribute("", attr).([]float64)
		if !ok || len(v) != 3 {
			return nil, Error{fmt.Sprintf("%s: missing attribute %q", ErrFormat, attr), "", []string{"ReadNetCDF"}, true}
		}
		copy(dst[:], v)
	}
	r := nc.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, Error{err.Error(), "", []string{"Read", "ReadNetCDF"}, true}
	}
	switch data := buf.(type) {
	case []float64:
		gr.Data = data
	case []float32:
		gr.Data = make([]float64, len(data))
		for i, v := range data {
			gr.Data[i] = float64(v)
		}
	default:
		return nil, Error{fmt.Sprintf("%s: variable %q is not floating point", ErrFormat, name), "", []string{"ReadNetCDF"}, true}
	}
	if len(gr.Data) != gr.len() {
		return nil, Error{fmt.Sprintf("%s: %d values for %d points", ErrDataSize, len(gr.Data), gr.len()), "", []string{"ReadNetCDF"}, true}
	}
	return gr, nil
}
