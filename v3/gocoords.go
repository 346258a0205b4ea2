/*
 * gocoords.go, part of deltaconf.
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

package v3

import (
	"fmt"
	"strings"
)

//Stack returns a new Matrix with the vectors of all the given matrices, one
//matrix after the other, in the order given. The inputs are not modified.
func Stack(mats ...*Matrix) *Matrix {
	if len(mats) == 0 {
		panic(ErrNoMatrices)
	}
	total := 0
	for _, v := range mats {
		total += v.NVecs()
	}
	F := Zeros(total)
	start := 0
	for _, v := range mats {
		F.SetMatrix(start, v)
		start += v.NVecs()
	}
	return F
}

//Flat puts the elements of F, vector after vector, in dst, and returns it.
//dst is allocated if it doesn't have enough capacity. Works for views too.
func (F *Matrix) Flat(dst []float64) []float64 {
	r := F.NVecs()
	if cap(dst) < 3*r {
		dst = make([]float64, 3*r)
	}
	dst = dst[:3*r]
	for i := 0; i < r; i++ {
		copy(dst[3*i:3*i+3], F.RawRowView(i))
	}
	return dst
}

//Copy32 returns the elements of F, vector after vector, converted to float32.
func (F *Matrix) Copy32() []float32 {
	r := F.NVecs()
	ret := make([]float32, 0, 3*r)
	for i := 0; i < r; i++ {
		for _, v := range F.RawRowView(i) {
			ret = append(ret, float32(v))
		}
	}
	return ret
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r)
	row := make([]float64, 3)
	for i := 0; i < r; i++ {
		F.Vec(row, i)
		v = append(v, fmt.Sprintf("%6.2f %6.2f %6.2f", row[0], row[1], row[2]))
	}
	return "\n[" + strings.Join(v, "\n ") + " ]"
}
