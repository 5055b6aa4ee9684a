/*
 * cmd_test.go, part of pmg.
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

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/pmg"
	"github.com/rmera/pmg/dx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPQR = `ATOM      1  N   ALA A   1       0.000   0.000   0.000  1.0000 1.5000
ATOM      2  O   ALA A   1       3.000   0.000   0.000 -1.0000 1.5000
END
`

const testInput = `molecule = "mol.pqr"
solute_diel = 2.0

[[ion]]
charge = 1.0
conc = 0.1
radius = 2.0

[[ion]]
charge = -1.0
conc = 0.1
radius = 2.0

[[elec]]
name = "coarse"
dime = [17, 17, 17]
grid = [1.0, 1.0, 1.0]
bcfl = "mdh"
srfm = "mol"

[[elec]]
name = "fine"
dime = [17, 17, 17]
glen = [8.0, 8.0, 8.0]
write = ["pot", "charge"]
partition = {min = [-1.0, -1.0, -1.0], max = [1.0, 1.0, 1.0]}
`

//writeFiles puts the test molecule and the input in a temporary directory,
//and returns the name of the input file.
func writeFiles(Te *testing.T, input string) string {
	dir := Te.TempDir()
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "mol.pqr"), []byte(testPQR), 0o644))
	name := filepath.Join(dir, "input.toml")
	require.NoError(Te, os.WriteFile(name, []byte(input), 0o644))
	return name
}

func TestReadInput(Te *testing.T) {
	name := writeFiles(Te, testInput)
	in, err := ReadInput(name)
	require.NoError(Te, err)
	require.Len(Te, in.Elec, 2)
	require.Len(Te, in.Ions, 2)
	assert.Equal(Te, [3]int{17, 17, 17}, in.Elec[0].Dime)
	assert.Equal(Te, [3]float64{-1, -1, -1}, in.Elec[1].Partition.Min)

	p := in.pbeParams()
	assert.Equal(Te, 2.0, p.SoluteDiel)
	assert.Equal(Te, pmg.DefaultPBEParams().SolventDiel, p.SolventDiel)
	assert.Equal(Te, pmg.DefaultTemperature, p.Temperature)

	_, err = ReadInput(writeFiles(Te, testInput+"bogus = 1\n"))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "bogus")
	_, err = ReadInput(writeFiles(Te, "molecule = \"mol.pqr\"\n"))
	assert.Error(Te, err)
	_, err = ReadInput(filepath.Join(Te.TempDir(), "none.toml"))
	assert.Error(Te, err)
}

func TestElecParams(Te *testing.T) {
	log := logrus.New()
	e := ElecInput{Dime: [3]int{9, 9, 9}, Center: []float64{1, 2, 3}}
	_, _, err := e.params(nil, log)
	assert.Error(Te, err)

	e.Glen = [3]float64{8, 16, 4}
	e.BC = "zero"
	e.Method = "gsrb"
	p, diel, err := e.params(nil, log)
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{1, 2, 0.5}, p.H)
	assert.Equal(Te, [3]float64{1, 2, 3}, p.Center)
	assert.Equal(Te, pmg.Zero, p.Boundary)
	assert.Equal(Te, pmg.Smoothed, diel)

	for _, bad := range []ElecInput{
		{Dime: e.Dime, Grid: [3]float64{1, 1, 1}, Center: []float64{1}},
		{Dime: e.Dime, Grid: [3]float64{1, 1, 1}, Center: []float64{0, 0, 0}, BC: "mirror"},
		{Dime: e.Dime, Grid: [3]float64{1, 1, 1}, Center: []float64{0, 0, 0}, Method: "fft"},
		{Dime: e.Dime, Grid: [3]float64{1, 1, 1}, Center: []float64{0, 0, 0}, Surface: "spline"},
	} {
		_, _, err := bad.params(nil, log)
		assert.Error(Te, err)
	}
}

func TestRun(Te *testing.T) {
	in, err := ReadInput(writeFiles(Te, testInput))
	require.NoError(Te, err)
	log := logrus.New()
	log.SetOutput(io.Discard)
	outdir := filepath.Join(Te.TempDir(), "maps")
	var buf bytes.Buffer
	res, err := Run(in, outdir, "dx.gz", &buf, log)
	require.NoError(Te, err)
	require.Len(Te, res, 2)
	assert.Equal(Te, "coarse", res[0].Name)
	assert.Empty(Te, res[0].Files)
	//The self energies of the charges dominate.
	assert.True(Te, res[0].Energy > 0)
	require.Len(Te, res[1].Files, 2)
	assert.Equal(Te, filepath.Join(outdir, "fine-pot.dx.gz"), res[1].Files[0])
	gr, err := dx.ReadFile(res[1].Files[0])
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{17, 17, 17}, gr.N)
	assert.InDelta(Te, 0.5, gr.H[0], 1e-12)
	assert.Contains(Te, buf.String(), "coarse: total")
	assert.Contains(Te, buf.String(), "fine: total")
}

func TestCommands(Te *testing.T) {
	name := writeFiles(Te, strings.Replace(testInput, `write = ["pot", "charge"]`, `write = ["pot"]`, 1))
	outdir := filepath.Join(Te.TempDir(), "out")
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"run", "--log-level", "error", "--format", "dx", "-o", outdir, name})
	require.NoError(Te, Root.Execute())
	assert.Contains(Te, buf.String(), "fine: total")
	pot := filepath.Join(outdir, "fine-pot.dx")
	_, err := os.Stat(pot)
	require.NoError(Te, err)

	buf.Reset()
	Root.SetArgs([]string{"stats", pot})
	require.NoError(Te, Root.Execute())
	assert.Contains(Te, buf.String(), "points 4913")

	buf.Reset()
	Root.SetArgs([]string{"stats", "--bins", "4", "--json", pot})
	require.NoError(Te, Root.Execute())
	assert.Contains(Te, buf.String(), `"total":4913`)

	png := filepath.Join(outdir, "pot.png")
	Root.SetArgs([]string{"plot", "--axis", "1", "--out", png, pot})
	require.NoError(Te, Root.Execute())
	_, err = os.Stat(png)
	assert.NoError(Te, err)

	Root.SetArgs([]string{"plot", "--axis", "5", pot})
	assert.Error(Te, Root.Execute())
	Root.SetArgs([]string{"run", "--log-level", "loud", name})
	assert.Error(Te, Root.Execute())
}

func TestPlotName(Te *testing.T) {
	assert.Equal(Te, "a/pot.png", plotName("a/pot.dx"))
	assert.Equal(Te, "pot.png", plotName("pot.dx.gz"))
	assert.Equal(Te, "pot.png", plotName("pot.nc"))
}
