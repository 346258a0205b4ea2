/*
 * batch.go, part of deltaconf.
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

//Batch is the input for one call to a Predictor: the species of a molecule
//and the coordinates of all its conformers, with shape
//(conformers, atoms, 3). The coordinates are kept in one Matrix, conformer
//after conformer, so conformer i spans the vectors i*atoms to (i+1)*atoms-1.
type Batch struct {
	molecule   string
	identifier string
	labels     []string
	species    []int
	coords     *v3.Matrix
	nconf      int
	natoms     int
}

//Assemble packs the species and the coordinates of all the conformers of M
//in a Batch. Conformer i of the batch is M.Conformer(i).
func Assemble(M *Molecule) (*Batch, error) {
	if M == nil {
		panic(ErrNilMolecule)
	}
	if len(M.conformers) == 0 {
		return nil, fmt.Errorf("deltaconf: molecule %q: %w", M.label, ErrEmptyBatch)
	}
	B := new(Batch)
	B.molecule = M.label
	B.identifier = M.identifier
	B.nconf = len(M.conformers)
	B.natoms = len(M.species)
	B.species = M.Species()
	B.labels = make([]string, B.nconf)
	B.coords = v3.Zeros(B.nconf * B.natoms)
	for i, c := range M.conformers {
		B.labels[i] = c.label
		B.coords.SetMatrix(i*B.natoms, c.coords)
	}
	return B, nil
}

//Molecule returns the label of the molecule the batch was built from.
func (B *Batch) Molecule() string { return B.molecule }

//Identifier returns the identifier string of the molecule.
func (B *Batch) Identifier() string { return B.identifier }

//Len returns the number of conformers in the batch.
func (B *Batch) Len() int { return B.nconf }

//Atoms returns the number of atoms per conformer.
func (B *Batch) Atoms() int { return B.natoms }

//Shape returns the dimensions of the coordinate batch: conformers, atoms, 3.
func (B *Batch) Shape() (int, int, int) { return B.nconf, B.natoms, 3 }

//Species returns a copy of the species vector.
func (B *Batch) Species() []int {
	ret := make([]int, len(B.species))
	copy(ret, B.species)
	return ret
}

//Labels returns a copy of the conformer labels, in batch order.
func (B *Batch) Labels() []string {
	ret := make([]string, len(B.labels))
	copy(ret, B.labels)
	return ret
}

//Frame returns a view of the coordinates of the ith conformer in the batch.
//Panics if i is out of range. The view must not be modified.
func (B *Batch) Frame(i int) *v3.Matrix {
	if i < 0 || i >= B.nconf {
		panic(ErrConformerRange)
	}
	return B.coords.View(i*B.natoms, B.natoms)
}

//Flat returns a copy of the whole coordinate batch as a flat slice, row-major
//(conformer, then atom, then axis).
func (B *Batch) Flat() []float64 {
	return B.coords.Flat(nil)
}

//Float32 is like Flat, but the values are converted to float32.
func (B *Batch) Float32() []float32 {
	return B.coords.Copy32()
}
