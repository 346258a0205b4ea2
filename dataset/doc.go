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

//Package dataset reads and writes conformer datasets.
//
//A dataset is an ordered collection of molecule groups. Each group has the
//attributes "inchi" (an identifier string) and "species" (atomic numbers) and
//an ordered mapping "conformers" of conformer groups, each with the attributes
//"energy" (Hartree) and "atXYZ" (3N coordinates, atom after atom).
//The same layout is stored as JSON, YAML, msgpack or SQLite, and the
//first three can be compressed with zstd, gzip or lz4.
package dataset
