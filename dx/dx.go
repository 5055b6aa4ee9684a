/*
 * dx.go, part of pmg.
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

//Package dx reads and writes scalar fields on regular meshes, in the
//OpenDX, UHBD and netCDF formats.
package dx

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/pmg/mesh"
)

//Grid is a scalar field on a regular mesh. Data is indexed
//k*nx*ny + j*nx + i, as in the mesh package.
type Grid struct {
	N    [3]int
	H    [3]float64
	Min  [3]float64
	Data []float64
}

//FromGeometry returns a Grid for data on g. data is not copied.
func FromGeometry(g *mesh.Geometry, data []float64) *Grid {
	return &Grid{N: g.N, H: g.H, Min: g.Mins(), Data: data}
}

//Geometry returns the mesh the grid is defined on.
func (gr *Grid) Geometry() (*mesh.Geometry, error) {
	return mesh.FromOrigin(gr.N, gr.H, gr.Min)
}

func (gr *Grid) len() int {
	return gr.N[0] * gr.N[1] * gr.N[2]
}

//MaxPoints is the largest number of points accepted in a grid file.
const MaxPoints = 1 << 28

//WriteDX writes gr to w in OpenDX format. The title goes into the
//comment header.
func WriteDX(w io.Writer, gr *Grid, title string) error {
	if len(gr.Data) != gr.len() {
		return Error{fmt.Sprintf("%s: %d values for %d points", ErrDataSize, len(gr.Data), gr.len()), "", []string{"WriteDX"}, true}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Grid data from pmg\n")
	fmt.Fprintf(bw, "# \n")
	fmt.Fprintf(bw, "# %s\n", title)
	fmt.Fprintf(bw, "# \n")
	fmt.Fprintf(bw, "object 1 class gridpositions counts %d %d %d\n", gr.N[2], gr.N[1], gr.N[0])
	fmt.Fprintf(bw, "origin %12.6E %12.6E %12.6E\n", gr.Min[2], gr.Min[1], gr.Min[0])
	fmt.Fprintf(bw, "delta %12.6E %12.6E %12.6E\n", 0.0, 0.0, gr.H[2])
	fmt.Fprintf(bw, "delta %12.6E %12.6E %12.6E\n", 0.0, gr.H[1], 0.0)
	fmt.Fprintf(bw, "delta %12.6E %12.6E %12.6E\n", gr.H[0], 0.0, 0.0)
	fmt.Fprintf(bw, "object 2 class gridconnections counts %d %d %d\n", gr.N[2], gr.N[1], gr.N[0])
	fmt.Fprintf(bw, "object 3 class array type double rank 0 items %d data follows\n", gr.len())
	icol := 0
	for _, v := range gr.Data {
		fmt.Fprintf(bw, "%12.6E ", v)
		icol++
		if icol == 3 {
			icol = 0
			bw.WriteString("\n")
		}
	}
	if icol != 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("attribute \"dep\" string \"positions\"\n")
	bw.WriteString("object \"regular positions regular connections\" class field\n")
	bw.WriteString("component \"positions\" value 1\n")
	bw.WriteString("component \"connections\" value 2\n")
	bw.WriteString("component \"data\" value 3\n")
	return bw.Flush()
}

//tokens splits a text stream in whitespace-separated words,
//dropping lines that start with '#'.
type tokens struct {
	s     *bufio.Scanner
	words []string
	line  int
}

func newTokens(r io.Reader) *tokens {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	return &tokens{s: s}
}

func (t *tokens) next() (string, error) {
	for len(t.words) == 0 {
		if !t.s.Scan() {
			if err := t.s.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		t.line++
		l := strings.TrimSpace(t.s.Text())
		if strings.HasPrefix(l, "#") {
			continue
		}
		t.words = strings.Fields(l)
	}
	w := t.words[0]
	t.words = t.words[1:]
	return w, nil
}

func (t *tokens) errorf(format string, args ...interface{}) error {
	return Error{fmt.Sprintf("%s (line %d): ", ErrFormat, t.line) + fmt.Sprintf(format, args...), "", []string{"ReadDX"}, true}
}

//expect reads the given words in order.
func (t *tokens) expect(words ...string) error {
	for _, want := range words {
		got, err := t.next()
		if err != nil {
			return t.errorf("expected %q: %v", want, err)
		}
		if got != want {
			return t.errorf("expected %q, found %q", want, got)
		}
	}
	return nil
}

func (t *tokens) readInt() (int, error) {
	w, err := t.next()
	if err != nil {
		return 0, t.errorf("expected an integer: %v", err)
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, t.errorf("expected an integer, found %q", w)
	}
	return v, nil
}

func (t *tokens) readFloat() (float64, error) {
	w, err := t.next()
	if err != nil {
		return 0, t.errorf("expected a number: %v", err)
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, t.errorf("expected a number, found %q", w)
	}
	return v, nil
}

//floats reads n numbers. The slice grows as the numbers are read, so
//a wrong count in a short file fails without a large allocation.
func (t *tokens) floats(n int) ([]float64, error) {
	ret := make([]float64, 0, min(n, 4096))
	for i := 0; i < n; i++ {
		v, err := t.readFloat()
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

//ReadDX reads a scalar field in the OpenDX format written by WriteDX.
//Only the position, connection and data objects are read.
func ReadDX(r io.Reader) (*Grid, error) {
	t := newTokens(r)
	gr := new(Grid)
	if err := t.expect("object", "1", "class", "gridpositions", "counts"); err != nil {
		return nil, err
	}
	for a := 2; a >= 0; a-- {
		n, err := t.readInt()
		if err != nil {
			return nil, err
		}
		if n < 1 || n > MaxPoints {
			return nil, t.errorf("invalid count %d", n)
		}
		gr.N[a] = n
	}
	if gr.N[1] > MaxPoints/gr.N[0] || gr.N[2] > MaxPoints/(gr.N[0]*gr.N[1]) {
		return nil, t.errorf("%dx%dx%d points, more than %d", gr.N[2], gr.N[1], gr.N[0], MaxPoints)
	}
	if err := t.expect("origin"); err != nil {
		return nil, err
	}
	origin, err := t.floats(3)
	if err != nil {
		return nil, err
	}
	gr.Min = [3]float64{origin[2], origin[1], origin[0]}
	//The deltas come in z, y, x order, each one a row with a single
	//non-zero element.
	for a := 2; a >= 0; a-- {
		if err := t.expect("delta"); err != nil {
			return nil, err
		}
		d, err := t.floats(3)
		if err != nil {
			return nil, err
		}
		col := a
		for c, v := range d {
			if c != col && v != 0 {
				return nil, t.errorf("only orthogonal meshes are supported")
			}
		}
		gr.H[a] = d[col]
	}
	if err := t.expect("object", "2", "class", "gridconnections", "counts"); err != nil {
		return nil, err
	}
	for a := 2; a >= 0; a-- {
		n, err := t.readInt()
		if err != nil {
			return nil, err
		}
		if n != gr.N[a] {
			return nil, t.errorf("connection counts don't match the positions")
		}
	}
	if err := t.expect("object", "3", "class", "array", "type", "double", "rank", "0", "items"); err != nil {
		return nil, err
	}
	items, err := t.readInt()
	if err != nil {
		return nil, err
	}
	if items != gr.len() {
		return nil, t.errorf("%d items for %d points", items, gr.len())
	}
	if err := t.expect("data", "follows"); err != nil {
		return nil, err
	}
	if gr.Data, err = t.floats(items); err != nil {
		return nil, err
	}
	return gr, nil
}

//Error is the error type for the dx package.
type Error struct {
	message  string
	filename string //the input file that has problems, if any.
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("%s: %s", err.filename, err.message)
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

//FileName returns the file to which the failing operation was applied.
func (err Error) FileName() string { return err.filename }

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
	ErrFormat        = "pmg/dx: format problem"
	ErrDataSize      = "pmg/dx: data size doesn't match the mesh"
	ErrNonUniform    = "pmg/dx: can't write UHBD mesh with non-uniform spacing"
	ErrUnknownFormat = "pmg/dx: unknown grid file format"
)
