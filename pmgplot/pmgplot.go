/*
 * pmgplot.go, part of pmg.
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

//Package pmgplot draws planar slices and line profiles of fields
//on regular meshes.
package pmgplot

import (
	"fmt"
	"math"

	"github.com/rmera/pmg/dx"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Size is the width and height of the saved plots.
var Size = 5 * vg.Inch

var axisNames = [3]string{"x", "y", "z"}

//slice is a plane of a grid, perpendicular to one axis. It
//implements plotter.GridXYZ.
type slice struct {
	gr   *dx.Grid
	axis int
	idx  int
	c, r int //the axes along columns and rows
}

func newSlice(gr *dx.Grid, axis, idx int) (*slice, error) {
	if err := checkGrid(gr); err != nil {
		return nil, err
	}
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("pmgplot: invalid axis %d", axis)
	}
	if idx < 0 || idx >= gr.N[axis] {
		return nil, fmt.Errorf("pmgplot: plane %d out of range for %d points along %s", idx, gr.N[axis], axisNames[axis])
	}
	s := &slice{gr: gr, axis: axis, idx: idx}
	switch axis {
	case 0:
		s.c, s.r = 1, 2
	case 1:
		s.c, s.r = 0, 2
	default:
		s.c, s.r = 0, 1
	}
	return s, nil
}

func checkGrid(gr *dx.Grid) error {
	if gr == nil {
		return fmt.Errorf("pmgplot: nil grid")
	}
	if len(gr.Data) != gr.N[0]*gr.N[1]*gr.N[2] || len(gr.Data) == 0 {
		return fmt.Errorf("pmgplot: %d values for a %dx%dx%d grid", len(gr.Data), gr.N[0], gr.N[1], gr.N[2])
	}
	return nil
}

func (s *slice) Dims() (c, r int) { return s.gr.N[s.c], s.gr.N[s.r] }

func (s *slice) Z(c, r int) float64 {
	var ijk [3]int
	ijk[s.axis] = s.idx
	ijk[s.c] = c
	ijk[s.r] = r
	n := s.gr.N
	return s.gr.Data[ijk[2]*n[0]*n[1]+ijk[1]*n[0]+ijk[0]]
}

func (s *slice) X(c int) float64 { return s.gr.Min[s.c] + float64(c)*s.gr.H[s.c] }

func (s *slice) Y(r int) float64 { return s.gr.Min[s.r] + float64(r)*s.gr.H[s.r] }

//Range returns the smallest and largest values in the plane.
func (s *slice) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	nc, nr := s.Dims()
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			v := s.Z(c, r)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

//Slice saves to filename a heat map of the plane of gr perpendicular
//to axis (0, 1 or 2 for x, y, z) at the point idx along that axis.
//The colors diverge around zero, so the sign of a potential can be
//read off the plot. The format is taken from the file extension.
func Slice(gr *dx.Grid, axis, idx int, title, filename string) error {
	s, err := newSlice(gr, axis, idx)
	if err != nil {
		return err
	}
	lo, hi := s.Range()
	lim := math.Max(math.Abs(lo), math.Abs(hi))
	if lim == 0 || math.IsNaN(lim) || math.IsInf(lim, 0) {
		lim = 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-lim)
	cm.SetMax(lim)
	hm := plotter.NewHeatMap(s, cm.Palette(255))
	hm.Min, hm.Max = -lim, lim

	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = fmt.Sprintf("%s (%s = %.3g), range [%.3g, %.3g]", title, axisNames[axis], gr.Min[axis]+float64(idx)*gr.H[axis], lo, hi)
	p.X.Label.Text = axisNames[s.c]
	p.Y.Label.Text = axisNames[s.r]
	p.Add(hm)
	return p.Save(Size, Size, filename)
}

//Line saves to filename a plot of the values of gr along axis, on
//the mesh line through the point with indexes at. The index along
//axis in at is ignored.
func Line(gr *dx.Grid, axis int, at [3]int, title, filename string) error {
	if err := checkGrid(gr); err != nil {
		return err
	}
	if axis < 0 || axis > 2 {
		return fmt.Errorf("pmgplot: invalid axis %d", axis)
	}
	for a, v := range at {
		if a != axis && (v < 0 || v >= gr.N[a]) {
			return fmt.Errorf("pmgplot: index %d out of range along %s", v, axisNames[a])
		}
	}
	n := gr.N
	pts := make(plotter.XYs, n[axis])
	for l := range pts {
		at[axis] = l
		pts[l].X = gr.Min[axis] + float64(l)*gr.H[axis]
		pts[l].Y = gr.Data[at[2]*n[0]*n[1]+at[1]*n[0]+at[0]]
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = axisNames[axis]
	p.Add(plotter.NewGrid())
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(l)
	return p.Save(Size, Size, filename)
}
