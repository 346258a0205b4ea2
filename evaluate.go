/*
 * evaluate.go, part of deltaconf.
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
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//Divisor selects the denominator of the mean in the RMSE of a molecule.
type Divisor int

const (
	//TotalDivisor divides by the number of conformers, including the reference,
	//which contributes a zero error. This is the reference behaviour.
	TotalDivisor Divisor = iota
	//PairsDivisor divides by the number of compared conformers (N-1).
	PairsDivisor
)

func (D Divisor) String() string {
	switch D {
	case TotalDivisor:
		return "total"
	case PairsDivisor:
		return "pairs"
	}
	return fmt.Sprintf("Divisor(%d)", int(D))
}

//ParseDivisor returns the Divisor named s ("total" or "pairs").
func ParseDivisor(s string) (Divisor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total":
		return TotalDivisor, nil
	case "pairs":
		return PairsDivisor, nil
	}
	return TotalDivisor, fmt.Errorf("deltaconf: unknown RMSE divisor %q", s)
}

//Row is the comparison for one non-reference conformer. All values are in kJ/mol.
type Row struct {
	Label string  `json:"conformer"`
	Truth float64 `json:"truth_delta"`
	Pred  float64 `json:"pred_delta"`
	Error float64 `json:"abs_error"`
}

//Result is the evaluation of one molecule.
type Result struct {
	Molecule   string  `json:"molecule"`
	Identifier string  `json:"identifier,omitempty"`
	Conformers int     `json:"conformers"`
	Reference  string  `json:"reference,omitempty"`
	Rows       []Row   `json:"rows,omitempty"`
	RMSE       float64 `json:"rmse"`
	Divisor    string  `json:"divisor,omitempty"`
	//A molecule with less than 2 conformers has nothing to compare.
	//It is not an error, but it has no rows and no RMSE.
	Skipped bool `json:"skipped,omitempty"`
}

type evalOptions struct {
	divisor Divisor
}

//EvalOption modifies the behaviour of Evaluate.
type EvalOption func(*evalOptions)

//WithDivisor sets the divisor used for the RMSE. The default is TotalDivisor.
func WithDivisor(D Divisor) EvalOption {
	return func(o *evalOptions) {
		o.divisor = D
	}
}

//Evaluate compares the reference energies of the conformers of M with the
//predicted energies pred (Hartree, one per conformer, in the same order).
//Both are turned into differences with respect to the first conformer, in kJ/mol,
//and the absolute error for each non-reference conformer and the RMSE for the molecule
//are obtained.
//A molecule with less than 2 conformers gives a skipped Result and pred is ignored.
//Otherwise, Evaluate panics if len(pred) is not the number of conformers of M.
func Evaluate(M *Molecule, pred []float64, options ...EvalOption) *Result {
	if M == nil {
		panic(ErrNilMolecule)
	}
	o := evalOptions{divisor: TotalDivisor}
	for _, f := range options {
		f(&o)
	}
	n := len(M.conformers)
	R := &Result{Molecule: M.label, Identifier: M.identifier, Conformers: n}
	if n < 2 {
		R.Skipped = true
		return R
	}
	if len(pred) != n {
		panic(ErrPredictionLength)
	}
	ref := M.conformers[0]
	R.Reference = ref.label
	R.Divisor = o.divisor.String()
	R.Rows = make([]Row, 0, n-1)
	errs := make([]float64, n) //errs[0] is the reference, always 0.
	for i := 1; i < n; i++ {
		c := M.conformers[i]
		truth := H2KJ * (c.energy - ref.energy)
		p := H2KJ * (pred[i] - pred[0])
		errs[i] = math.Abs(truth - p)
		R.Rows = append(R.Rows, Row{Label: c.label, Truth: truth, Pred: p, Error: errs[i]})
	}
	div := float64(n)
	if o.divisor == PairsDivisor {
		div = float64(n - 1)
	}
	R.RMSE = math.Sqrt(floats.Dot(errs, errs) / div)
	return R
}
