/*
 * pmgplot_test.go, part of pmg.
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

package pmgplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/pmg/dx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//testGrid has the value i+10j+100k at each point.
func testGrid() *dx.Grid {
	gr := &dx.Grid{N: [3]int{3, 4, 5}, H: [3]float64{1, 0.5, 0.25}, Min: [3]float64{-1, -1, -1}}
	gr.Data = make([]float64, 60)
	for k := 0; k < 5; k++ {
		for j := 0; j < 4; j++ {
			for i := 0; i < 3; i++ {
				gr.Data[k*12+j*3+i] = float64(i + 10*j + 100*k)
			}
		}
	}
	return gr
}

func TestSliceIndexing(Te *testing.T) {
	gr := testGrid()
	s, err := newSlice(gr, 0, 2)
	require.NoError(Te, err)
	c, r := s.Dims()
	assert.Equal(Te, 4, c)
	assert.Equal(Te, 5, r)
	assert.Equal(Te, 2.0+10*3+100*1, s.Z(3, 1))
	assert.Equal(Te, 0.5, s.X(3))
	assert.Equal(Te, -0.75, s.Y(1))

	s, err = newSlice(gr, 2, 4)
	require.NoError(Te, err)
	c, r = s.Dims()
	assert.Equal(Te, 3, c)
	assert.Equal(Te, 4, r)
	lo, hi := s.Range()
	assert.Equal(Te, 400.0, lo)
	assert.Equal(Te, 432.0, hi)

	_, err = newSlice(gr, 1, 4)
	assert.Error(Te, err)
	_, err = newSlice(gr, 3, 0)
	assert.Error(Te, err)
	_, err = newSlice(&dx.Grid{N: [3]int{2, 2, 2}}, 0, 0)
	assert.Error(Te, err)
}

func TestSave(Te *testing.T) {
	gr := testGrid()
	dir := Te.TempDir()
	name := filepath.Join(dir, "slice.png")
	require.NoError(Te, Slice(gr, 1, 2, "test", name))
	fi, err := os.Stat(name)
	require.NoError(Te, err)
	assert.True(Te, fi.Size() > 0)

	//A constant plane still gets a palette.
	for i := range gr.Data {
		gr.Data[i] = 0
	}
	require.NoError(Te, Slice(gr, 2, 0, "zero", filepath.Join(dir, "zero.svg")))

	name = filepath.Join(dir, "line.png")
	require.NoError(Te, Line(testGrid(), 2, [3]int{1, 1, 0}, "profile", name))
	_, err = os.Stat(name)
	assert.NoError(Te, err)
	assert.Error(Te, Line(gr, 0, [3]int{0, 7, 0}, "bad", name))
}
