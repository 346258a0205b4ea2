/*
 * histo.go, part of deltaconf.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//Package histo implements simple histograms, used to summarize the
//distribution of errors in a run.
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

//Data is a histogram. The bins are given by a sorted slice of dividers,
//so bin i spans [dividers[i], dividers[i+1]). Values out of the range of the
//dividers are only counted, as under or over.
type Data struct {
	normalized bool
	total      int
	under      int
	over       int
	dividers   []float64
	histo      []float64
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Under      int       `json:"under"`
	Over       int       `json:"over"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Normalized: D.normalized,
		Total:      D.total,
		Under:      D.under,
		Over:       D.over,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Histo) != len(a.Dividers)-1 {
		return fmt.Errorf("histo: %d bins for %d dividers", len(a.Histo), len(a.Dividers))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.under = a.Under
	D.over = a.Over
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//String prints a -hopefully- pretty string representation of
//the histogram, one bin per line.
func (D *Data) String() string {
	lines := make([]string, 0, len(D.histo)+2)
	format := "%9.0f"
	if D.normalized {
		format = "%9.3f"
	}
	if D.under > 0 {
		lines = append(lines, fmt.Sprintf("%17s %9d", fmt.Sprintf("< %.2f", D.dividers[0]), D.under))
	}
	for i, v := range D.histo {
		lines = append(lines, fmt.Sprintf("%7.2f - %7.2f "+format, D.dividers[i], D.dividers[i+1], v))
	}
	if D.over > 0 {
		lines = append(lines, fmt.Sprintf("%17s %9d", fmt.Sprintf(">= %.2f", D.dividers[len(D.dividers)-1]), D.over))
	}
	return strings.Join(lines, "\n")
}

//Uniform returns n+1 dividers for n bins of the same width between lo and hi.
func Uniform(lo, hi float64, n int) []float64 {
	if n < 1 || !(hi > lo) {
		panic("histo.Uniform: need at least one bin and hi > lo")
	}
	return floats.Span(make([]float64, n+1), lo, hi)
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//Neither slice is modified. It panics if there are less than 2 dividers, or
//they are not sorted.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: need at least 2 sorted dividers")
	}
	d := new(Data)
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata)
	}
	return d
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		switch {
		case math.IsNaN(v):
			continue
		case v < D.dividers[0]:
			D.under++
		case v >= D.dividers[last]:
			D.over++
		default:
			//first divider larger than v, the bin is the previous one.
			j := sort.SearchFloat64s(D.dividers, v)
			if j == len(D.dividers) || D.dividers[j] != v {
				j--
			}
			D.histo[j]++
		}
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//ReHisto replaces the contents of the histogram with the values in rawdata,
//which is not modified.
func (D *Data) ReHisto(rawdata []float64) {
	data := make([]float64, 0, len(rawdata))
	for _, v := range rawdata {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	sort.Float64s(data)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(data, D.dividers[0])
	D.total = len(data)
	D.over = len(data) - maxi
	D.under = mini
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, data[mini:maxi], nil)
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize divides each bin by the total number of values added.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

//normalizes or un-normalizes the histogram depending
//on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//Total returns the number of values added to the histogram, including
//those out of the range of the dividers.
func (D *Data) Total() int { return D.total }

//Under returns the number of values smaller than the first divider.
func (D *Data) Under() int { return D.under }

//Over returns the number of values equal or larger than the last divider.
func (D *Data) Over() int { return D.over }

//Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 {
	ret := make([]float64, len(D.dividers))
	copy(ret, D.dividers)
	return ret
}

//View returns the bins of the histogram, which must not be modified.
func (D *Data) View() []float64 {
	return D.histo
}

//Sum returns the sum of the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}
