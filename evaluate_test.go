/*
 * evaluate_test.go, part of deltaconf.
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
	"math"
	"testing"
)

const tolerance = 1e-6

func TestUnitConversion(Te *testing.T) {
	M := methane(Te, "M1", 0.0, 1.0)
	R := Evaluate(M, []float64{0, 0})
	if len(R.Rows) != 1 {
		Te.Fatalf("expected one row, got %d", len(R.Rows))
	}
	if math.Abs(R.Rows[0].Truth-2625.5) > tolerance {
		Te.Errorf("1 Hartree should be 2625.5 kJ/mol, got %f", R.Rows[0].Truth)
	}
}

//TestReferenceNotCompared checks that the reference conformer never gets a row.
func TestReferenceNotCompared(Te *testing.T) {
	M := methane(Te, "M1", -1, -1.1, -0.9)
	R := Evaluate(M, []float64{-2, -2.1, -1.9})
	if R.Reference != "c0" {
		Te.Errorf("reference should be c0, got %s", R.Reference)
	}
	if len(R.Rows) != 2 || R.Rows[0].Label != "c1" || R.Rows[1].Label != "c2" {
		Te.Fatalf("wrong rows %+v", R.Rows)
	}
	for _, r := range R.Rows {
		if r.Error > tolerance {
			Te.Errorf("identical deltas should give no error, got %+v", r)
		}
	}
}

//TestRMSEDivisor checks that the RMSE divides by the total number of conformers.
func TestRMSEDivisor(Te *testing.T) {
	M := methane(Te, "M1", 0, 3/H2KJ, 4/H2KJ)
	pred := []float64{0, 0, 0}
	R := Evaluate(M, pred)
	if math.Abs(R.Rows[0].Error-3) > tolerance || math.Abs(R.Rows[1].Error-4) > tolerance {
		Te.Fatalf("errors should be 3 and 4, got %+v", R.Rows)
	}
	if want := math.Sqrt(25.0 / 3.0); math.Abs(R.RMSE-want) > tolerance {
		Te.Errorf("RMSE should be %f, got %f", want, R.RMSE)
	}
	if math.Abs(R.RMSE-2.8868) > 1e-4 {
		Te.Errorf("RMSE should be about 2.8868, got %f", R.RMSE)
	}
	if R.Divisor != "total" {
		Te.Errorf("default divisor should be total, got %s", R.Divisor)
	}
	P := Evaluate(M, pred, WithDivisor(PairsDivisor))
	if want := math.Sqrt(25.0 / 2.0); math.Abs(P.RMSE-want) > tolerance {
		Te.Errorf("RMSE over pairs should be %f, got %f", want, P.RMSE)
	}
}

func TestEndToEndScenario(Te *testing.T) {
	M := methane(Te, "M1", -40.500000, -40.499000)
	R := Evaluate(M, []float64{-40.50, -40.4988})
	row := R.Rows[0]
	for _, v := range []struct {
		name      string
		got, want float64
	}{
		{"truth", row.Truth, 2.6255},
		{"pred", row.Pred, 3.1506},
		{"error", row.Error, 0.5251},
		{"rmse", R.RMSE, 0.5251 / math.Sqrt(2)},
	} {
		if math.Abs(v.got-v.want) > tolerance {
			Te.Errorf("%s: got %.8f, want %.8f", v.name, v.got, v.want)
		}
	}
}

func TestSkipSingleConformer(Te *testing.T) {
	M := methane(Te, "single", -40.5)
	R := Evaluate(M, nil)
	if !R.Skipped || len(R.Rows) != 0 || R.RMSE != 0 {
		Te.Errorf("a single conformer should be skipped, got %+v", R)
	}
}

func TestEvaluatePanicsOnLength(Te *testing.T) {
	defer func() {
		if r := recover(); r != ErrPredictionLength {
			Te.Errorf("expected a panic with ErrPredictionLength, got %v", r)
		}
	}()
	M := methane(Te, "M1", -40.5, -40.4)
	Evaluate(M, []float64{1})
}

func TestParseDivisor(Te *testing.T) {
	for s, want := range map[string]Divisor{"": TotalDivisor, "total": TotalDivisor, "Pairs": PairsDivisor} {
		got, err := ParseDivisor(s)
		if err != nil || got != want {
			Te.Errorf("ParseDivisor(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseDivisor("median"); err == nil {
		Te.Error("unknown divisors should be rejected")
	}
}
