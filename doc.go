/*
 * doc.go, part of deltaconf.
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

/*
Package deltaconf compares the relative energies of the conformers of a
molecule, as given by a reference dataset, with those predicted by an energy
model.

The model is only expected to be meaningful for energy differences between
conformers of the same molecule, so both reference and predicted absolute
energies (Hartree) are turned into differences with respect to the first
conformer of each molecule, in kJ/mol, before they are compared.


	**Main types and functions**

    Molecule and Conformer: a molecule is a species vector (atomic numbers)
	shared by an ordered list of conformers, each with its coordinates and
	reference energy. Both are read-only once created.

    Assemble packs all the conformers of a molecule in a Batch, the input of
	one call to a Predictor (the model).

    Evaluate turns reference and predicted energies into deltas and obtains
	the absolute error per conformer and the RMSE per molecule.

    Evaluator runs the above for a list of molecules, optionally with several
	workers, and returns the results in the original order.

Datasets are read by the dataset package, models are in the model package,
and results are printed by the report package.
*/
package deltaconf
