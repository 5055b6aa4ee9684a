package dx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/pmg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(n [3]int, h [3]float64) *Grid {
	gr := &Grid{N: n, H: h, Min: [3]float64{-1.5, 2.25, -10}}
	gr.Data = make([]float64, n[0]*n[1]*n[2])
	for i := range gr.Data {
		gr.Data[i] = float64(i)*0.125 - 3
	}
	return gr
}

func TestDXRoundTrip(Te *testing.T) {
	gr := testGrid([3]int{5, 4, 3}, [3]float64{0.5, 0.75, 1.0})
	var buf bytes.Buffer
	require.NoError(Te, WriteDX(&buf, gr, "test potential"))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(Te, "# Grid data from pmg", lines[0])
	assert.Equal(Te, "# test potential", lines[2])
	assert.Equal(Te, "object 1 class gridpositions counts 3 4 5", lines[4])
	assert.Equal(Te, "origin -1.000000E+01 2.250000E+00 -1.500000E+00", lines[5])
	assert.Equal(Te, "delta 0.000000E+00 0.000000E+00 1.000000E+00", lines[6])
	assert.Equal(Te, "delta 5.000000E-01 0.000000E+00 0.000000E+00", lines[8])
	assert.Equal(Te, "object 3 class array type double rank 0 items 60 data follows", lines[10])
	//60 values, 3 per line.
	assert.Len(Te, strings.Fields(lines[11]), 3)
	assert.Equal(Te, "attribute \"dep\" string \"positions\"", lines[31])
	assert.Equal(Te, "component \"data\" value 3", lines[35])

	read, err := ReadDX(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, gr.N, read.N)
	for a := 0; a < 3; a++ {
		assert.InDelta(Te, gr.H[a], read.H[a], 1e-6)
		assert.InDelta(Te, gr.Min[a], read.Min[a], 1e-6)
	}
	require.Len(Te, read.Data, len(gr.Data))
	for i := range gr.Data {
		assert.InDelta(Te, gr.Data[i], read.Data[i], 1e-5)
	}
}

func TestDXPartialLastLine(Te *testing.T) {
	gr := testGrid([3]int{3, 3, 3}, [3]float64{1, 1, 1})
	var buf bytes.Buffer
	require.NoError(Te, WriteDX(&buf, gr, ""))
	//27 values fill 9 lines exactly, so no blank line before the trailer.
	assert.NotContains(Te, buf.String(), "\n\n")
	//20 values leave a partial line, which is closed.
	gr = testGrid([3]int{5, 2, 2}, [3]float64{1, 1, 1})
	buf.Reset()
	require.NoError(Te, WriteDX(&buf, gr, ""))
	assert.NotContains(Te, buf.String(), "\n\n")
	assert.Contains(Te, buf.String(), " \nattribute")
	read, err := ReadDX(&buf)
	require.NoError(Te, err)
	assert.Len(Te, read.Data, 20)
}

func TestDXMalformed(Te *testing.T) {
	_, err := ReadDX(strings.NewReader("# just a comment\n"))
	assert.Error(Te, err)
	_, err = ReadDX(strings.NewReader("object 1 class gridpositions counts 2 2 2\norigin 0 0 0\n"))
	assert.Error(Te, err)
	gr := testGrid([3]int{3, 3, 3}, [3]float64{1, 1, 1})
	var buf bytes.Buffer
	require.NoError(Te, WriteDX(&buf, gr, ""))
	//Drop the data.
	cut := strings.Index(buf.String(), "data follows") + len("data follows")
	_, err = ReadDX(strings.NewReader(buf.String()[:cut]))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrFormat)
	//Counts whose product doesn't fit in memory, or in an int.
	for _, counts := range []string{"2097152 2097152 2097152", "1000000 1000000 1000000", "1 1 -3", "99999999999999999999 1 1"} {
		_, err = ReadDX(strings.NewReader("object 1 class gridpositions counts " + counts + "\norigin 0 0 0\n"))
		require.Error(Te, err, counts)
		assert.Contains(Te, err.Error(), ErrFormat)
	}
	//A sane header with fewer values than it claims.
	short := strings.Replace(buf.String()[:cut], "counts 3 3 3", "counts 300 300 300", 2)
	short = strings.Replace(short, "items 27", "items 27000000", 1)
	_, err = ReadDX(strings.NewReader(short + "\n1 2 3\n"))
	assert.Error(Te, err)
	//Wrong data size.
	gr.Data = gr.Data[:5]
	assert.Error(Te, WriteDX(&buf, gr, ""))
}

func TestGeometry(Te *testing.T) {
	g, err := mesh.New([3]int{9, 9, 5}, [3]float64{0.5, 0.5, 1}, [3]float64{1, 2, 3})
	require.NoError(Te, err)
	gr := FromGeometry(g, make([]float64, g.Len()))
	g2, err := gr.Geometry()
	require.NoError(Te, err)
	for a := 0; a < 3; a++ {
		assert.InDelta(Te, g.Center[a], g2.Center[a], 1e-12)
		assert.InDelta(Te, g.Max(a), g2.Max(a), 1e-12)
	}
}

func TestUHBD(Te *testing.T) {
	gr := testGrid([3]int{3, 3, 2}, [3]float64{0.5, 0.75, 1.0})
	var buf bytes.Buffer
	err := WriteUHBD(&buf, gr, "title")
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrNonUniform)
	assert.Equal(Te, 0, buf.Len())

	gr.H = [3]float64{0.5, 0.5, 0.5}
	require.NoError(Te, WriteUHBD(&buf, gr, "title"))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(Te, fmt.Sprintf("%72s", "title"), lines[0])
	assert.Equal(Te, "1.000000E+000.000000E+00     -1      0      2      1      2", lines[1])
	assert.Equal(Te, "      3      3      25.000000E-01-1.500000E+002.250000E+00-1.000000E+01", lines[2])
	assert.Equal(Te, "0.000000E+000.000000E+00      0      0", lines[4])
	assert.Equal(Te, "      1      3      3", lines[5])
	//9 values per plane: a full line of 6 and one of 3.
	assert.Len(Te, strings.Fields(lines[6]), 6)
	assert.Len(Te, strings.Fields(lines[7]), 3)
	assert.Equal(Te, "      2      3      3", lines[8])
	assert.Equal(Te, "", lines[len(lines)-1])
}

func TestCompressedRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	gr := testGrid([3]int{5, 5, 5}, [3]float64{1, 1, 1})
	for _, name := range []string{"pot.dx", "pot.dx.gz", "pot.dx.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(Te, WriteFile(path, gr, name))
		read, err := ReadFile(path)
		require.NoError(Te, err, name)
		assert.Equal(Te, gr.N, read.N)
		for i := range gr.Data {
			assert.InDelta(Te, gr.Data[i], read.Data[i], 1e-5)
		}
	}
	plain, err := os.Stat(filepath.Join(dir, "pot.dx"))
	require.NoError(Te, err)
	gz, err := os.Stat(filepath.Join(dir, "pot.dx.gz"))
	require.NoError(Te, err)
	assert.Less(Te, gz.Size(), plain.Size())
}

func TestNetCDFRoundTrip(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "pot.nc")
	gr := testGrid([3]int{4, 3, 2}, [3]float64{0.5, 0.75, 1.0})
	require.NoError(Te, WriteFile(path, gr, "potential in kT/e"))
	read, err := ReadFile(path)
	require.NoError(Te, err)
	assert.Equal(Te, gr.N, read.N)
	assert.Equal(Te, gr.H, read.H)
	assert.Equal(Te, gr.Min, read.Min)
	assert.Equal(Te, gr.Data, read.Data)
}

func TestFormatFromName(Te *testing.T) {
	for name, want := range map[string]Format{"a.dx": OpenDX, "a.DX.gz": OpenDX, "b.grd": UHBD, "c.uhbd.zst": UHBD, "d.nc": NetCDF} {
		f, err := FormatFromName(name)
		require.NoError(Te, err)
		assert.Equal(Te, want, f, name)
	}
	_, err := FormatFromName("pot.txt")
	assert.Error(Te, err)
	_, err = ReadFile(filepath.Join(Te.TempDir(), "a.grd"))
	assert.Error(Te, err)
}
