/*
 * uhbd.go, part of pmg.
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
	"bufio"
	"fmt"
	"io"
	"math"
)

//uniform returns true if the three spacings of gr are equal.
func (gr *Grid) uniform() bool {
	const tol = 1e-12
	return math.Abs(gr.H[0]-gr.H[1]) < tol && math.Abs(gr.H[0]-gr.H[2]) < tol
}

//WriteUHBD writes gr to w in the UHBD grid format. UHBD only supports
//meshes with the same spacing along the three axes.
func WriteUHBD(w io.Writer, gr *Grid, title string) error {
	if !gr.uniform() {
		return Error{fmt.Sprintf("%s: %v", ErrNonUniform, gr.H), "", []string{"WriteUHBD"}, true}
	}
	if len(gr.Data) != gr.len() {
		return Error{fmt.Sprintf("%s: %d values for %d points", ErrDataSize, len(gr.Data), gr.len()), "", []string{"WriteUHBD"}, true}
	}
	nx, ny, nz := gr.N[0], gr.N[1], gr.N[2]
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%72s\n", title)
	fmt.Fprintf(bw, "%12.6E%12.6E%7d%7d%7d%7d%7d\n", 1.0, 0.0, -1, 0, nz, 1, nz)
	fmt.Fprintf(bw, "%7d%7d%7d%12.6E%12.6E%12.6E%12.6E\n", nx, ny, nz, gr.H[0], gr.Min[0], gr.Min[1], gr.Min[2])
	fmt.Fprintf(bw, "%12.6E%12.6E%12.6E%12.6E\n", 0.0, 0.0, 0.0, 0.0)
	fmt.Fprintf(bw, "%12.6E%12.6E%7d%7d", 0.0, 0.0, 0, 0)
	icol := 0
	for k := 0; k < nz; k++ {
		fmt.Fprintf(bw, "\n%7d%7d%7d\n", k+1, nx, ny)
		icol = 0
		for _, v := range gr.Data[k*nx*ny : (k+1)*nx*ny] {
			icol++
			fmt.Fprintf(bw, " %12.6E", v)
			if icol == 6 {
				icol = 0
				bw.WriteString("\n")
			}
		}
	}
	if icol != 0 {
		bw.WriteString("\n")
	}
	return bw.Flush()
}
