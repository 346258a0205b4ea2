/*
 * molecule.go, part of deltaconf.
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
	"fmt"

	v3 "github.com/rmera/deltaconf/v3"
)

//Conformer is one geometry of a molecule, with its reference energy.
//A Conformer doesn't change after it is created.
type Conformer struct {
	label  string
	coords *v3.Matrix
	energy float64 //Hartree
}

//NewConformer returns a conformer with the given label, a copy of coords,
//and energy (in Hartree).
func NewConformer(label string, coords *v3.Matrix, energy float64) (*Conformer, error) {
	if coords == nil {
		return nil, MalformedRecord("", label, "nil coordinates")
	}
	C := new(Conformer)
	C.label = label
	C.coords = v3.Zeros(coords.NVecs())
	C.coords.Copy(coords.Dense)
	C.energy = energy
	return C, nil
}

//NewConformerFlat is like NewConformer, but takes the coordinates as a flat slice
//of 3N values (atom after atom, x, y and z for each) which is reshaped into N
//triples. flat is copied.
func NewConformerFlat(label string, flat []float64, energy float64) (*Conformer, error) {
	if len(flat) == 0 {
		return nil, MalformedRecord("", label, "empty coordinate array")
	}
	if len(flat)%3 != 0 {
		return nil, MalformedRecord("", label, "coordinate array length %d is not a multiple of 3", len(flat))
	}
	data := make([]float64, len(flat))
	copy(data, flat)
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, MalformedRecord("", label, "%w", err)
	}
	return &Conformer{label: label, coords: coords, energy: energy}, nil
}

//Label returns the label of the conformer.
func (C *Conformer) Label() string { return C.label }

//Energy returns the reference energy of the conformer, in Hartree.
func (C *Conformer) Energy() float64 { return C.energy }

//Len returns the number of atoms in the conformer.
func (C *Conformer) Len() int { return C.coords.NVecs() }

//Coords returns a copy of the coordinates of the conformer.
func (C *Conformer) Coords() *v3.Matrix {
	ret := v3.Zeros(C.coords.NVecs())
	ret.Copy(C.coords.Dense)
	return ret
}

/**Type Molecule**/

//Molecule contains all the conformers of one chemical species. The conformers
//keep the order in which they were given, and the first one is the reference
//for energy differences. A Molecule doesn't change after it is created.
type Molecule struct {
	label      string
	identifier string
	species    []int
	conformers []*Conformer
}

//NewMolecule returns a molecule with the given label, identifier (i.e. an InChI, only
//used for display), species (atomic numbers, one per atom) and conformers.
//It returns an error if species is empty, a conformer is nil,
//its number of atoms differs from len(species), or two conformers have the same label.
func NewMolecule(label, identifier string, species []int, confs []*Conformer) (*Molecule, error) {
	if len(species) == 0 {
		return nil, MalformedRecord(label, "", "empty species array")
	}
	seen := make(map[string]bool, len(confs))
	for i, c := range confs {
		if c == nil {
			return nil, MalformedRecord(label, "", "conformer %d is nil", i)
		}
		if c.Len() != len(species) {
			return nil, MalformedRecord(label, c.label, "%d atoms in coordinates, %d in species", c.Len(), len(species))
		}
		if seen[c.label] {
			return nil, MalformedRecord(label, c.label, "repeated conformer label")
		}
		seen[c.label] = true
	}
	M := new(Molecule)
	M.label = label
	M.identifier = identifier
	M.species = make([]int, len(species))
	copy(M.species, species)
	M.conformers = make([]*Conformer, len(confs))
	copy(M.conformers, confs)
	return M, nil
}

//Label returns the label of the molecule.
func (M *Molecule) Label() string { return M.label }

//Identifier returns the identifier string (InChI) of the molecule.
func (M *Molecule) Identifier() string { return M.identifier }

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int { return len(M.species) }

//Species returns a copy of the atomic numbers of the molecule.
func (M *Molecule) Species() []int {
	ret := make([]int, len(M.species))
	copy(ret, M.species)
	return ret
}

//Symbols returns the element symbols of the atoms in the molecule.
func (M *Molecule) Symbols() []string {
	return Symbols(M.species)
}

//NConformers returns the number of conformers of the molecule.
func (M *Molecule) NConformers() int { return len(M.conformers) }

//Conformer returns the ith conformer. Panics if out of range.
func (M *Molecule) Conformer(i int) *Conformer {
	if i < 0 || i >= len(M.conformers) {
		panic(ErrConformerRange)
	}
	return M.conformers[i]
}

//Conformers returns the conformers of the molecule, in order.
//The slice is a copy, the conformers are not.
func (M *Molecule) Conformers() []*Conformer {
	ret := make([]*Conformer, len(M.conformers))
	copy(ret, M.conformers)
	return ret
}

//Reference returns the reference conformer (the first one), or nil if
//the molecule has no conformers.
func (M *Molecule) Reference() *Conformer {
	if len(M.conformers) == 0 {
		return nil
	}
	return M.conformers[0]
}

func (M *Molecule) String() string {
	return fmt.Sprintf("%s (%s): %d atoms, %d conformers", M.label, M.identifier, len(M.species), len(M.conformers))
}
