/*
 * summary.go, part of deltaconf.
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

package report

import (
	"fmt"
	"strings"

	"github.com/rmera/deltaconf"
	"github.com/rmera/deltaconf/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//DefaultDividers are the bin limits, in kJ/mol, of the error histogram built
//by Summarize. 4.184 kJ/mol is 1 kcal/mol.
var DefaultDividers = []float64{0, 0.5, 1, 2, 4.184, 8, 16}

//Summary collects the figures of a whole run.
type Summary struct {
	Model           string      `json:"model,omitempty"`
	Molecules       int         `json:"molecules"`
	Evaluated       int         `json:"evaluated"`
	Skipped         int         `json:"skipped"`
	Compared        int         `json:"compared"` //conformers compared to their reference
	MeanRMSE        float64     `json:"mean_rmse"`
	MaxRMSE         float64     `json:"max_rmse"`
	MaxRMSEMolecule string      `json:"max_rmse_molecule,omitempty"`
	MAE             float64     `json:"mae"`
	MaxError        float64     `json:"max_error"`
	Errors          *histo.Data `json:"errors"`
}

//Summarize builds a Summary from results. The error histogram uses dividers,
//or DefaultDividers if none are given.
func Summarize(results []*deltaconf.Result, dividers ...float64) *Summary {
	if len(dividers) == 0 {
		dividers = DefaultDividers
	}
	S := &Summary{Molecules: len(results)}
	rmses := make([]float64, 0, len(results))
	names := make([]string, 0, len(results))
	var errs []float64
	for _, R := range results {
		if R == nil || R.Skipped {
			S.Skipped++
			continue
		}
		S.Evaluated++
		rmses = append(rmses, R.RMSE)
		names = append(names, R.Molecule)
		for _, r := range R.Rows {
			errs = append(errs, r.Error)
		}
	}
	S.Compared = len(errs)
	S.Errors = histo.NewData(dividers, errs)
	if len(rmses) > 0 {
		S.MeanRMSE = stat.Mean(rmses, nil)
		i := floats.MaxIdx(rmses)
		S.MaxRMSE = rmses[i]
		S.MaxRMSEMolecule = names[i]
	}
	if len(errs) > 0 {
		S.MAE = stat.Mean(errs, nil)
		S.MaxError = floats.Max(errs)
	}
	return S
}

func (S *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Molecules: %d (%d evaluated, %d skipped)\n", S.Molecules, S.Evaluated, S.Skipped)
	fmt.Fprintf(&b, "Conformers compared: %d\n", S.Compared)
	if S.Evaluated == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Mean RMSE: %.4f KJ/mol\n", S.MeanRMSE)
	fmt.Fprintf(&b, "Max RMSE: %.4f KJ/mol (%s)\n", S.MaxRMSE, S.MaxRMSEMolecule)
	if S.Compared > 0 {
		fmt.Fprintf(&b, "MAE: %.4f KJ/mol\n", S.MAE)
		fmt.Fprintf(&b, "Max error: %.4f KJ/mol\n", S.MaxError)
	}
	if S.Errors != nil {
		fmt.Fprintf(&b, "Errors (KJ/mol):\n%s\n", S.Errors.String())
	}
	return b.String()
}
