/*
 * json_test.go, part of deltaconf.
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

package chemjson

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rmera/deltaconf"
)

func water(Te *testing.T) *deltaconf.Batch {
	confs := make([]*deltaconf.Conformer, 0, 3)
	for i := 0; i < 3; i++ {
		d := float64(i) * 0.01
		c, err := deltaconf.NewConformerFlat(fmt.Sprintf("w%d", i), []float64{0, 0, 0, 0.96 + d, 0, 0, -0.24, 0.93 + d, 0}, -76.4+d)
		if err != nil {
			Te.Fatal(err)
		}
		confs = append(confs, c)
	}
	M, err := deltaconf.NewMolecule("water", "InChI=1S/H2O/h1H2", []int{8, 1, 1}, confs)
	if err != nil {
		Te.Fatal(err)
	}
	B, err := deltaconf.Assemble(M)
	if err != nil {
		Te.Fatal(err)
	}
	return B
}

func TestBatchRoundTrip(Te *testing.T) {
	B := water(Te)
	var buf bytes.Buffer
	if err := SendBatch(B, &buf); err != nil {
		Te.Fatal(err)
	}
	fmt.Print(buf.String())
	h, coords, err := DecodeBatch(bufio.NewReader(&buf))
	if err != nil {
		Te.Fatal(err)
	}
	if h.Molecule != "water" || h.Identifier != "InChI=1S/H2O/h1H2" || h.Atoms != 3 || len(h.Conformers) != 3 || h.Symbols[0] != "O" {
		Te.Errorf("wrong header %+v", h)
	}
	if len(coords) != 3 {
		Te.Fatalf("expected 3 conformers, got %d", len(coords))
	}
	for i, c := range coords {
		want := B.Frame(i).Flat(nil)
		got := c.Flat(nil)
		for j := range want {
			if want[j] != got[j] {
				Te.Errorf("conformer %d, coordinate %d: %f != %f", i, j, got[j], want[j])
			}
		}
	}
}

func TestTruncatedBatch(Te *testing.T) {
	B := water(Te)
	var buf bytes.Buffer
	if err := SendBatch(B, &buf); err != nil {
		Te.Fatal(err)
	}
	lines := bytes.SplitAfter(buf.Bytes(), []byte("\n"))
	short := bytes.Join(lines[:3], nil) //header and two conformers.
	_, coords, err := DecodeBatch(bufio.NewReader(bytes.NewReader(short)))
	if err == nil {
		Te.Fatal("a truncated request should fail")
	}
	if len(coords) != 2 || !err.InInput || err.Molecule != "water" {
		Te.Errorf("unexpected result %d %+v", len(coords), err)
	}
}

func TestResponse(Te *testing.T) {
	var buf bytes.Buffer
	R := &Response{Molecule: "water", Version: "v1", Energies: []float64{-76.4, -76.39, -76.38}}
	if err := R.Send(&buf); err != nil {
		Te.Fatal(err)
	}
	got, err := DecodeResponse(buf.Bytes())
	if err != nil {
		Te.Fatal(err)
	}
	if got.Version != "v1" || len(got.Energies) != 3 || got.Energies[2] != -76.38 {
		Te.Errorf("wrong response %+v", got)
	}
	jerr := NewError("model", "Predict", errors.New("out of memory"))
	jerr.Molecule = "water"
	_, err = DecodeResponse(jerr.Marshal())
	var e *Error
	if !errors.As(err, &e) || !e.InModel || e.Message != "out of memory" {
		Te.Errorf("expected the model error back, got %v", err)
	}
	fmt.Println(err)
	if _, err := DecodeResponse([]byte("-76.4 -76.3")); err == nil {
		Te.Error("plain numbers are not a JSON response")
	}
}
