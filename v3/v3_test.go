/*
 * v3_test.go, part of deltaconf.
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		Te.Errorf("vector 1 should be 4 5 6, got %v", A.Vec(nil, 1))
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice of 4 elements should not make a Matrix")
	}
	if _, err := NewMatrix(nil); err == nil {
		Te.Error("an empty slice should not make a Matrix")
	}
	fmt.Println(A)
}

func TestViews(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	View := A.View(1, 2)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("changes in a view should be seen in the original matrix")
	}
	got := View.Flat(nil)
	want := []float64{100, 5, 6, 7, 8, 9}
	for i := range want {
		if got[i] != want[i] {
			Te.Fatalf("Flat of a view: got %v, want %v", got, want)
		}
	}
	vec := A.VecView(3)
	if vec.NVecs() != 1 || vec.At(0, 2) != 12 {
		Te.Errorf("wrong VecView %v", vec)
	}
}

func TestStack(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	B, _ := NewMatrix([]float64{3, 3, 3})
	S := Stack(A, B)
	if S.NVecs() != 3 {
		Te.Fatalf("stacked matrix should have 3 vectors, has %d", S.NVecs())
	}
	for i := 0; i < 3; i++ {
		if S.At(i, 0) != float64(i+1) {
			Te.Errorf("vector %d out of order: %v", i, S.Vec(nil, i))
		}
	}
	S.Set(0, 0, 50)
	if A.At(0, 0) != 1 {
		Te.Error("Stack should copy its inputs")
	}
	if !mat.Equal(S.View(1, 1), A.View(1, 1)) {
		Te.Error("vector 1 of the stack should equal vector 1 of A")
	}
	f32 := S.Copy32()
	if len(f32) != 9 || f32[8] != 3 {
		Te.Errorf("wrong float32 copy %v", f32)
	}
}

func TestSetMatrixOutOfRange(Te *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			Te.Error("SetMatrix out of range should panic")
		}
	}()
	A := Zeros(2)
	B := Zeros(2)
	A.SetMatrix(1, B)
}
