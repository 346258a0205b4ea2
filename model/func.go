/*
 * func.go, part of deltaconf.
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

package model

import (
	"context"

	"github.com/rmera/deltaconf"
)

//Func adapts a function to the deltaconf.Predictor interface.
type Func struct {
	Name string //returned as the version
	F    func(context.Context, *deltaconf.Batch) ([]float64, error)
	Safe bool //F can be called concurrently
}

func (P *Func) Predict(ctx context.Context, B *deltaconf.Batch) ([]float64, error) {
	if P.F == nil {
		return nil, &Error{message: ErrNoFunc, molecule: B.Molecule(), deco: []string{"Predict"}, critical: true}
	}
	return P.F(ctx, B)
}

func (P *Func) Version() string { return P.Name }

func (P *Func) Reentrant() bool { return P.Safe }
