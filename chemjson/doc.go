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

//Package chemjson implements the serialization of deltaconf batches and
//of the energies computed for them. Its planned use is the communication
//of deltaconf with energy models that run as independent programs, which
//can be written in languages other than Go, as long as those languages
//can read and write JSON.
//A request is a stream of lines, each with one JSON object: first a Header
//with the molecule, then one Coords object per conformer. The model answers
//with one Response object, or with an Error object if it fails.
package chemjson
