/*
 * stats.go, part of pmg.
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

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//FieldStats summarizes the values of a field on a mesh.
type FieldStats struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	//Integral is the sum of the values times the volume of a cell.
	Integral float64
}

//Summarize returns the statistics of data, sampled on cells of volume vol.
//The weights, if not nil, multiply each value, as a partition mask does.
func Summarize(data, weights []float64, vol float64) FieldStats {
	var fs FieldStats
	fs.N = len(data)
	if fs.N == 0 {
		return fs
	}
	fs.Min = floats.Min(data)
	fs.Max = floats.Max(data)
	fs.Mean, fs.StdDev = stat.MeanStdDev(data, weights)
	if weights == nil {
		fs.Integral = floats.Sum(data) * vol
	} else {
		fs.Integral = floats.Dot(data, weights) * vol
	}
	return fs
}

func (fs FieldStats) String() string {
	return fmt.Sprintf("points %d min %.6g max %.6g mean %.6g sd %.6g integral %.6g", fs.N, fs.Min, fs.Max, fs.Mean, fs.StdDev, fs.Integral)
}

//Stats returns the statistics of the field of the given kind, weighted by
//the partition mask.
func (P *Problem) Stats(kind DataKind) (FieldStats, error) {
	data, err := P.Data(kind)
	if err != nil {
		return FieldStats{}, errDecorate(err, "Stats")
	}
	return Summarize(data, P.pvec, P.geom.CellVolume()), nil
}
