/*
 * interfaces.go, part of deltaconf.
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

import "context"

//Predictor is the energy model. It is called once per molecule, with a batch
//containing all the conformers of that molecule and nothing else, and
//returns one energy (Hartree) per conformer, in the order of the batch.
//Only the differences between the returned energies are meaningful.
type Predictor interface {
	Predict(ctx context.Context, B *Batch) ([]float64, error)

	//Version returns an identifier of the model, for display only.
	Version() string
}

//Reentrant is implemented by predictors that know whether they can be
//called concurrently. A Predictor that doesn't implement it, or returns false,
//is never called concurrently.
type Reentrant interface {
	Reentrant() bool
}

//DecoratedError is the interface for errors that keep a trail of the functions
//they went through. Each call to Decorate adds dec to the trail (unless dec is empty) and
//returns the trail. The elements should be function names, optionally followed by
//extra information in the form "FunctionName: Extra info".
type DecoratedError interface {
	Error() string
	Decorate(dec string) []string
}

//isReentrant reports whether P declares itself safe for concurrent calls.
func isReentrant(P Predictor) bool {
	r, ok := P.(Reentrant)
	return ok && r.Reentrant()
}
