/*
 * histo_test.go, part of deltaconf.
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

package histo

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestHisto(Te *testing.T) {
	dividers := []float64{0, 1, 2, 3, 4, 8}
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1, -1}
	D := NewData(dividers, rawdata)
	fmt.Println(D.String())
	want := []float64{2, 6, 2, 7, 9}
	for i, v := range D.View() {
		if v != want[i] {
			Te.Errorf("bin %d: %f, want %f", i, v, want[i])
		}
	}
	if D.Over() != 3 || D.Under() != 1 || D.Total() != len(rawdata) {
		Te.Errorf("wrong counts over %d under %d total %d", D.Over(), D.Under(), D.Total())
	}
	E := NewData(dividers, nil)
	E.AddData(rawdata...)
	for i, v := range E.View() {
		if v != want[i] {
			Te.Errorf("AddData, bin %d: %f, want %f", i, v, want[i])
		}
	}
	if E.Over() != 3 || E.Under() != 1 {
		Te.Errorf("AddData: wrong counts over %d under %d", E.Over(), E.Under())
	}
	if rawdata[0] != 1 || rawdata[len(rawdata)-1] != -1 {
		Te.Error("the raw data was modified")
	}
}

func TestNormalize(Te *testing.T) {
	D := NewData(Uniform(0, 4, 4), []float64{0.5, 1.5, 1.5, 3})
	D.Normalize()
	D.Normalize()
	if D.View()[1] != 0.5 {
		Te.Errorf("normalized bin should be 0.5, got %f", D.View()[1])
	}
	D.AddData(2.5, 2.5, 2.5, 2.5)
	if !D.Normalized() || D.View()[2] != 0.5 {
		Te.Errorf("adding data should keep the histogram normalized: %v", D.View())
	}
	D.UnNormalize()
	if D.Sum() != 8 {
		Te.Errorf("sum should be 8, got %f", D.Sum())
	}
}

func TestHistoJSON(Te *testing.T) {
	D := NewData([]float64{0, 0.5, 1, 2, 4.184}, []float64{0.1, 0.7, 3, 9})
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("JSON:", string(j))
	D2 := new(Data)
	if err := json.Unmarshal(j, D2); err != nil {
		Te.Fatal(err)
	}
	if D2.String() != D.String() {
		Te.Errorf("JSON round trip changed the histogram:\n%s\n%s", D, D2)
	}
	if err := json.Unmarshal([]byte(`{"dividers": [0, 1], "histo": [1, 2]}`), D2); err == nil {
		Te.Error("bins and dividers don't match, it should fail")
	}
}
