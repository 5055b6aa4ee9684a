/*
 * histo.go, part of pmg.
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

//Package histo builds histograms of the values of a field, optionally
//weighted, for instance by a partition mask.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Values outside the dividers are not counted,
//but they are reported by Outside.
type Data struct {
	normalized bool
	total      float64 //weight of the counted values
	outside    float64 //weight of the values left out
	dividers   []float64
	histo      []float64
}

//Uniform returns n+1 dividers splitting [lo, hi] in n bins of equal width.
func Uniform(lo, hi float64, n int) []float64 {
	if n < 1 {
		panic("histo.Uniform: at least one bin is needed")
	}
	if hi <= lo {
		//A degenerate range still gets a bin around it.
		lo, hi = lo-0.5, lo+0.5
	}
	d := make([]float64, n+1)
	floats.Span(d, lo, hi)
	//The last value would fall outside the half-open last bin.
	d[n] = math.Nextafter(hi, math.Inf(1))
	return d
}

//NewData returns a histogram of rawdata with the given dividers. weights
//can be nil, otherwise it must have the length of rawdata. Neither slice
//is modified.
func NewData(dividers, rawdata, weights []float64) (*Data, error) {
	if len(dividers) < 2 {
		return nil, fmt.Errorf("histo: at least 2 dividers needed, got %d", len(dividers))
	}
	for i := 1; i < len(dividers); i++ {
		if dividers[i] <= dividers[i-1] {
			return nil, fmt.Errorf("histo: dividers must increase, got %v", dividers)
		}
	}
	if weights != nil && len(weights) != len(rawdata) {
		return nil, fmt.Errorf("histo: %d weights for %d values", len(weights), len(rawdata))
	}
	d := &Data{dividers: append([]float64(nil), dividers...)}
	d.histo = make([]float64, len(dividers)-1)
	d.AddData(rawdata, weights)
	return d, nil
}

//AddData adds the values, with the given weights, to the histogram. weights
//can be nil, in which case each value weights 1.
func (D *Data) AddData(rawdata, weights []float64) {
	if len(rawdata) == 0 {
		return
	}
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	lo, hi := D.dividers[0], D.dividers[len(D.dividers)-1]
	x := make([]float64, 0, len(rawdata))
	var w []float64
	if weights != nil {
		w = make([]float64, 0, len(rawdata))
	}
	//stat.Histogram panics on values out of range, and wants them sorted.
	for i, v := range rawdata {
		wi := 1.0
		if weights != nil {
			wi = weights[i]
		}
		if v < lo || v >= hi {
			D.outside += wi
			continue
		}
		x = append(x, v)
		if w != nil {
			w = append(w, wi)
		}
	}
	if w != nil {
		sort.Sort(byValue{x, w})
	} else {
		sort.Float64s(x)
	}
	if len(x) > 0 {
		floats.Add(D.histo, stat.Histogram(nil, D.dividers, x, w))
	}
	D.total = floats.Sum(D.histo)
	if norma {
		D.Normalize()
	}
}

type byValue struct {
	x, w []float64
}

func (b byValue) Len() int           { return len(b.x) }
func (b byValue) Less(i, j int) bool { return b.x[i] < b.x[j] }
func (b byValue) Swap(i, j int) {
	b.x[i], b.x[j] = b.x[j], b.x[i]
	b.w[i], b.w[j] = b.w[j], b.w[i]
}

//Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize scales the histogram so it adds up to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize undoes Normalize.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := D.total
	if normalize {
		n = 1 / D.total
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

//Total returns the weight of the values counted in the histogram.
func (D *Data) Total() float64 { return D.total }

//Outside returns the weight of the values that fell outside the dividers.
func (D *Data) Outside() float64 { return D.outside }

//Dividers returns a copy of the dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

//View returns the bins. The slice belongs to the histogram.
func (D *Data) View() []float64 {
	return D.histo
}

//String prints one bin per line.
func (D *Data) String() string {
	lines := make([]string, 0, len(D.histo)+1)
	lines = append(lines, fmt.Sprintf("total %.6g, outside %.6g, normalized %v", D.total, D.outside, D.normalized))
	for i, v := range D.histo {
		lines = append(lines, fmt.Sprintf("%12.5g %12.5g %12.5g", D.dividers[i], D.dividers[i+1], v))
	}
	return strings.Join(lines, "\n")
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      float64   `json:"total"`
	Outside    float64   `json:"outside"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{D.normalized, D.total, D.outside, D.dividers, D.histo})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.outside = a.Outside
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}
