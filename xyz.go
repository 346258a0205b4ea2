/*
 * xyz.go, part of deltaconf.
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
	"bufio"
	"fmt"
	"io"
)

//WriteBatchXYZ writes all the conformers of B to out as a multi-XYZ stream,
//one frame per conformer, in batch order. The comment line of each frame
//contains the conformer label.
func WriteBatchXYZ(out io.Writer, B *Batch) error {
	w := bufio.NewWriter(out)
	symbols := Symbols(B.species)
	for i := 0; i < B.nconf; i++ {
		fmt.Fprintf(w, "%-4d\n%s\n", B.natoms, B.labels[i])
		frame := B.Frame(i)
		for j, s := range symbols {
			c := frame.RawRowView(j)
			fmt.Fprintf(w, "%-2s  %14.8f%14.8f%14.8f\n", s, c[0], c[1], c[2])
		}
	}
	return w.Flush()
}

//WriteXYZ writes all the conformers of M to out as a multi-XYZ stream.
func WriteXYZ(out io.Writer, M *Molecule) error {
	B, err := Assemble(M)
	if err != nil {
		return err
	}
	return WriteBatchXYZ(out, B)
}
