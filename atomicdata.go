/*
 * atomicdata.go, part of deltaconf.
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

//Element symbols indexed by atomic number. Index 0 is the placeholder
//used for unknown atomic numbers.
var elementSymbols = []string{"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
}

//Symbol returns the element symbol for the atomic number z, or "X"
//if z is not in the table.
func Symbol(z int) string {
	if z <= 0 || z >= len(elementSymbols) {
		return elementSymbols[0]
	}
	return elementSymbols[z]
}

//Symbols returns the element symbols for a species vector.
func Symbols(species []int) []string {
	ret := make([]string, len(species))
	for i, z := range species {
		ret[i] = Symbol(z)
	}
	return ret
}
