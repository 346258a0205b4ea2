/*
 * pipeline.go, part of deltaconf.
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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

//First returns the first k molecules of mols. If k is not positive, or there
//are not more than k molecules, all of them are returned.
func First(mols []*Molecule, k int) []*Molecule {
	if k <= 0 || k >= len(mols) {
		return mols
	}
	return mols[:k]
}

//Evaluator runs the whole comparison on a set of molecules: for each molecule
//with at least 2 conformers it assembles a batch, calls the Predictor once and
//evaluates the predictions. Molecules with fewer conformers are skipped, without
//calling the Predictor.
type Evaluator struct {
	Predictor Predictor

	//Number of molecules processed concurrently. Values below 2 mean one at a time.
	//The Predictor is only called concurrently if it implements Reentrant.
	Workers int

	//If positive, the maximum time for each call to the Predictor.
	Timeout time.Duration

	Divisor Divisor

	//If nil, slog.Default() is used.
	Logger *slog.Logger

	//If not nil, OnResult is called with each result, in the order of the
	//molecules, as soon as that result and all the previous ones are ready.
	//An error from OnResult stops the run.
	OnResult func(*Result) error
}

//Run evaluates mols and returns one Result per molecule, in the same order.
//The first failure of the Predictor stops the run, and is returned.
func (E *Evaluator) Run(ctx context.Context, mols []*Molecule) ([]*Result, error) {
	if E.Predictor == nil {
		return nil, errors.New("deltaconf: Evaluator without a Predictor")
	}
	logger := E.logger()
	workers := E.Workers
	if workers < 1 {
		workers = 1
	}
	var lock *sync.Mutex
	if workers > 1 && !isReentrant(E.Predictor) {
		lock = new(sync.Mutex)
	}
	out := &collector{results: make([]*Result, len(mols)), emit: E.OnResult}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	logger.Info("evaluation started", "molecules", len(mols), "workers", workers, "model", E.Predictor.Version())
	for i, M := range mols {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			R, err := E.evaluate(gctx, M, lock)
			if err != nil {
				return err
			}
			return out.put(i, R)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("evaluation finished", "molecules", len(mols))
	return out.results, nil
}

func (E *Evaluator) evaluate(ctx context.Context, M *Molecule, lock *sync.Mutex) (*Result, error) {
	logger := E.logger()
	if M.NConformers() < 2 {
		logger.Info("skipping molecule", "molecule", M.Label(), "conformers", M.NConformers(), "reason", "insufficient conformers")
		return Evaluate(M, nil, WithDivisor(E.Divisor)), nil
	}
	B, err := Assemble(M)
	if err != nil {
		return nil, err
	}
	pred, err := E.predict(ctx, B, lock)
	if err != nil {
		logger.Error("model failed", "molecule", M.Label(), "error", err)
		return nil, fmt.Errorf("deltaconf: model failed on molecule %q: %w", M.Label(), err)
	}
	if len(pred) != B.Len() {
		return nil, fmt.Errorf("deltaconf: model returned %d energies for the %d conformers of molecule %q: %w", len(pred), B.Len(), M.Label(), ErrPredictionLength)
	}
	R := Evaluate(M, pred, WithDivisor(E.Divisor))
	logger.Debug("evaluated molecule", "molecule", M.Label(), "conformers", R.Conformers, "rmse", R.RMSE)
	return R, nil
}

func (E *Evaluator) predict(ctx context.Context, B *Batch, lock *sync.Mutex) ([]float64, error) {
	if lock != nil {
		lock.Lock()
		defer lock.Unlock()
	}
	if E.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, E.Timeout)
		defer cancel()
	}
	return E.Predictor.Predict(ctx, B)
}

func (E *Evaluator) logger() *slog.Logger {
	if E.Logger == nil {
		return slog.Default()
	}
	return E.Logger
}

//collector keeps the results in dataset order and passes them to emit
//as soon as they, and all the previous ones, are ready.
//After emit fails once, it is not called again.
type collector struct {
	mu      sync.Mutex
	results []*Result
	next    int
	emit    func(*Result) error
	err     error
}

func (c *collector) put(i int, R *Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[i] = R
	if c.err != nil {
		return c.err
	}
	for c.next < len(c.results) && c.results[c.next] != nil {
		if c.emit != nil {
			if err := c.emit(c.results[c.next]); err != nil {
				c.err = err
				return err
			}
		}
		c.next++
	}
	return nil
}
