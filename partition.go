/*
 * partition.go, part of pmg.
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

import "github.com/rmera/pmg/mesh"

//SetPartition restricts the observables to the grid points inside the closed box.
//The coefficients must have been filled. The restriction stays until
//ClearPartition is called.
func (P *Problem) SetPartition(box mesh.Box) error {
	if err := P.check("SetPartition", false); err != nil {
		return err
	}
	g := P.geom
	n := g.N
	for k := 0; k < n[mesh.Z]; k++ {
		for j := 0; j < n[mesh.Y]; j++ {
			for i := 0; i < n[mesh.X]; i++ {
				idx := g.Index(i, j, k)
				if box.Contains(g.Point(i, j, k)) {
					P.pvec[idx] = 1
				} else {
					P.pvec[idx] = 0
				}
			}
		}
	}
	return nil
}

//ClearPartition removes any restriction on the observables.
func (P *Problem) ClearPartition() {
	for i := range P.pvec {
		P.pvec[i] = 1
	}
}

//Partition returns the mask of points that contribute to the observables.
//The slice belongs to the problem.
func (P *Problem) Partition() []float64 { return P.pvec }

func (P *Problem) invertPartition() {
	for i, v := range P.pvec {
		P.pvec[i] = 1 - v
	}
}
