/*
 * molecule_test.go, part of deltaconf.
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

package deltaconf

import (
	"errors"
	"fmt"
	"math"
	"testing"

	v3 "github.com/rmera/deltaconf/v3"
)

//methane returns a 5-atom molecule with one conformer per given energy.
//All the coordinates of conformer i are set to i, so conformers can be told apart.
func methane(Te *testing.T, label string, energies ...float64) *Molecule {
	Te.Helper()
	species := []int{6, 1, 1, 1, 1}
	confs := make([]*Conformer, 0, len(energies))
	for i, e := range energies {
		flat := make([]float64, 3*len(species))
		for j := range flat {
			flat[j] = float64(i)
		}
		c, err := NewConformerFlat(fmt.Sprintf("c%d", i), flat, e)
		if err != nil {
			Te.Fatal(err)
		}
		confs = append(confs, c)
	}
	M, err := NewMolecule(label, "InChI=1S/CH4/h1H4", species, confs)
	if err != nil {
		Te.Fatal(err)
	}
	return M
}

func TestNewConformerFlat(Te *testing.T) {
	flat := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	c, err := NewConformerFlat("c0", flat, -1.5)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Len() != 3 {
		Te.Errorf("expected 3 atoms, got %d", c.Len())
	}
	coords := c.Coords()
	if coords.At(1, 0) != 1 || coords.At(2, 1) != 1 {
		Te.Errorf("coordinates not reshaped in runs of 3: %v", coords)
	}
	flat[3] = 99
	coords.Set(0, 0, 99)
	if c.Coords().At(1, 0) != 1 || c.Coords().At(0, 0) != 0 {
		Te.Error("a conformer should not change when its input or its returned coordinates do")
	}
	_, err = NewConformerFlat("bad", []float64{1, 2, 3, 4}, 0)
	if !errors.Is(err, ErrMalformedRecord) {
		Te.Errorf("expected a malformed record error, got %v", err)
	}
	if _, err = NewConformer("nil", nil, 0); !errors.Is(err, ErrMalformedRecord) {
		Te.Errorf("expected a malformed record error, got %v", err)
	}
}

func TestNewMoleculeShape(Te *testing.T) {
	good, _ := NewConformerFlat("c0", make([]float64, 15), 0)
	short, _ := NewConformerFlat("c1", make([]float64, 12), 0)
	_, err := NewMolecule("M1", "", []int{6, 1, 1, 1, 1}, []*Conformer{good, short})
	if !errors.Is(err, ErrMalformedRecord) {
		Te.Fatalf("expected a malformed record error, got %v", err)
	}
	var derr *Error
	if !errors.As(err, &derr) {
		Te.Fatalf("expected a *Error, got %T", err)
	}
	if derr.Molecule() != "M1" || derr.Conformer() != "c1" {
		Te.Errorf("the error should locate the record, got molecule %q conformer %q", derr.Molecule(), derr.Conformer())
	}
	fmt.Println(err)
	if _, err := NewMolecule("M2", "", []int{6, 1, 1, 1, 1}, []*Conformer{good, good}); !errors.Is(err, ErrMalformedRecord) {
		Te.Errorf("repeated conformer labels should be rejected, got %v", err)
	}
	if _, err := NewMolecule("M3", "", nil, nil); !errors.Is(err, ErrMalformedRecord) {
		Te.Errorf("empty species should be rejected, got %v", err)
	}
}

func TestMoleculeReadOnly(Te *testing.T) {
	M := methane(Te, "M1", -40.5, -40.499)
	sp := M.Species()
	sp[0] = 8
	if M.Species()[0] != 6 {
		Te.Error("changing the returned species changed the molecule")
	}
	confs := M.Conformers()
	confs[0] = nil
	if M.Reference() == nil || M.Reference().Label() != "c0" {
		Te.Error("changing the returned conformer slice changed the molecule")
	}
	if got := M.Symbols(); got[0] != "C" || got[4] != "H" {
		Te.Errorf("wrong symbols %v", got)
	}
}

func TestErrorDecorate(Te *testing.T) {
	err := MalformedRecord("M1", "c3", "attribute %q missing", "energy")
	err.SetSource("test.json")
	var e error = err
	ErrDecorate(e, "Read")
	deco := err.Decorate("")
	if len(deco) != 1 || deco[0] != "Read" {
		Te.Errorf("decorations not kept: %v", deco)
	}
	if !err.Critical() {
		Te.Error("malformed records are critical")
	}
	want := `malformed record in test.json, molecule "M1", conformer "c3": attribute "energy" missing`
	if err.Error() != want {
		Te.Errorf("got message %q, want %q", err.Error(), want)
	}
	nf := DatasetNotFound("nope.json", errors.New("no such file"))
	if !errors.Is(nf, ErrDatasetNotFound) || errors.Is(nf, ErrMalformedRecord) {
		Te.Errorf("wrong kind for %v", nf)
	}
}

func TestSymbol(Te *testing.T) {
	for z, want := range map[int]string{1: "H", 6: "C", 8: "O", 17: "Cl", 53: "I", 0: "X", 200: "X"} {
		if got := Symbol(z); got != want {
			Te.Errorf("Symbol(%d) = %s, want %s", z, got, want)
		}
	}
	if math.IsNaN(H2KJ) || H2KJ != 2625.5 {
		Te.Error("the Hartree to kJ/mol factor must be 2625.5")
	}
}

func TestSharedCoordinates(Te *testing.T) {
	A, _ := v3.NewMatrix([]float64{1, 2, 3})
	c, err := NewConformer("c0", A, 0)
	if err != nil {
		Te.Fatal(err)
	}
	A.Set(0, 0, 100)
	if c.Coords().At(0, 0) != 1 {
		Te.Error("NewConformer should copy the coordinates")
	}
}
