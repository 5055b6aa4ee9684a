/*
 * files.go, part of pmg.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Format is a grid file format.
type Format int

const (
	OpenDX Format = iota
	UHBD
	NetCDF
)

//FormatFromName guesses the format of a file from its extension, after
//removing a compression suffix, if any.
func FormatFromName(name string) (Format, error) {
	base := strings.ToLower(name)
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".gz"), ".zst")
	switch filepath.Ext(base) {
	case ".dx":
		return OpenDX, nil
	case ".grd", ".uhbd":
		return UHBD, nil
	case ".nc":
		return NetCDF, nil
	}
	return -1, Error{ErrUnknownFormat, name, []string{"FormatFromName"}, true}
}

//Why couldn't *zstd.Decoder implement io.ReadCloser?
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//stackedWriter closes the compressor, then the file.
type stackedWriter struct {
	io.WriteCloser
	f *os.File
}

func (s stackedWriter) Close() error {
	err := s.WriteCloser.Close()
	if ferr := s.f.Close(); err == nil {
		err = ferr
	}
	return err
}

type stackedReader struct {
	io.ReadCloser
	f *os.File
}

func (s stackedReader) Close() error {
	err := s.ReadCloser.Close()
	if ferr := s.f.Close(); err == nil {
		err = ferr
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//Create creates the file name for writing. Names ending in .gz are
//compressed with gzip, and names ending in .zst with zstd.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		w, err = gzip.NewWriterLevel(f, gzip.BestCompression)
	case ".zst":
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	default:
		w = nopWriteCloser{f}
	}
	if err != nil {
		f.Close()
		return nil, Error{err.Error(), name, []string{"Create"}, true}
	}
	return stackedWriter{w, f}, nil
}

//Open opens the file name for reading, decompressing it according to its
//suffix, as in Create.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	in := bufio.NewReader(f)
	var r io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		r, err = gzip.NewReader(in)
	case ".zst":
		var d *zstd.Decoder
		d, err = zstd.NewReader(in)
		if err == nil {
			r = zstdReadCloser{d}
		}
	default:
		r = io.NopCloser(in)
	}
	if err != nil {
		f.Close()
		return nil, Error{err.Error(), name, []string{"Open"}, true}
	}
	return stackedReader{r, f}, nil
}

//WriteFile writes gr to the file name, in the format given by its extension.
//The title goes in the header of the text formats, and in the description
//of the netCDF variable. netCDF files can't be compressed.
func WriteFile(name string, gr *Grid, title string) error {
	format, err := FormatFromName(name)
	if err != nil {
		return errDecorate(err, "WriteFile")
	}
	if format == NetCDF {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		return errDecorate(WriteNetCDF(f, gr, Variable, title), "WriteFile")
	}
	w, err := Create(name)
	if err != nil {
		return errDecorate(err, "WriteFile")
	}
	switch format {
	case OpenDX:
		err = WriteDX(w, gr, title)
	case UHBD:
		err = WriteUHBD(w, gr, title)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return errDecorate(err, "WriteFile")
}

//ReadFile reads an OpenDX file, possibly compressed, or a netCDF file
//written by WriteFile.
func ReadFile(name string) (*Grid, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	switch format {
	case NetCDF:
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		gr, err := ReadNetCDF(f, Variable)
		return gr, errDecorate(err, "ReadFile")
	case OpenDX:
		r, err := Open(name)
		if err != nil {
			return nil, errDecorate(err, "ReadFile")
		}
		defer r.Close()
		gr, err := ReadDX(r)
		if e, ok := err.(Error); ok {
			e.filename = name
			err = e
		}
		return gr, errDecorate(err, "ReadFile")
	}
	return nil, Error{ErrUnknownFormat + ": UHBD files can only be written", name, []string{"ReadFile"}, true}
}
