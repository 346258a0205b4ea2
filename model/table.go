/*
 * table.go, part of deltaconf.
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
	"os"
	"sync"

	"github.com/rmera/deltaconf"
	"gopkg.in/yaml.v3"
)

//Table is a Predictor that looks the energies up in a table of precomputed
//predictions, indexed by molecule and conformer label.
type Table struct {
	version     string
	predictions map[string]map[string]float64
}

//tableFile is the layout of a prediction file.
type tableFile struct {
	Version     string                        `yaml:"version"`
	Predictions map[string]map[string]float64 `yaml:"predictions"`
}

//NewTable returns a table with the given version and predictions (Hartree), which
//are not copied.
func NewTable(version string, predictions map[string]map[string]float64) *Table {
	if predictions == nil {
		predictions = make(map[string]map[string]float64)
	}
	return &Table{version: version, predictions: predictions}
}

//LoadTable reads a prediction table from a YAML (or JSON) file with the keys
//"version" and "predictions", the latter a mapping of molecule labels to
//mappings of conformer labels to energies.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{message: ErrNoEnergy, command: path, cause: err, deco: []string{"os.ReadFile", "LoadTable"}, critical: true}
	}
	var t tableFile
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &Error{message: ErrNoEnergy, command: path, cause: err, deco: []string{"yaml.Unmarshal", "LoadTable"}, critical: true}
	}
	if t.Version == "" {
		t.Version = "table:" + path
	}
	return NewTable(t.Version, t.Predictions), nil
}

//Add sets the energy of a conformer.
func (T *Table) Add(molecule, conformer string, energy float64) {
	m, ok := T.predictions[molecule]
	if !ok {
		m = make(map[string]float64)
		T.predictions[molecule] = m
	}
	m[conformer] = energy
}

//Save writes the table to path, in the format read by LoadTable.
func (T *Table) Save(path string) error {
	data, err := yaml.Marshal(&tableFile{Version: T.version, Predictions: T.predictions})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

//Predict returns the energies of the conformers of B, in batch order. It fails if
//any of them is not in the table.
func (T *Table) Predict(ctx context.Context, B *deltaconf.Batch) ([]float64, error) {
	m, ok := T.predictions[B.Molecule()]
	if !ok {
		return nil, &Error{message: ErrNoMolecule, molecule: B.Molecule(), deco: []string{"Predict"}, critical: true}
	}
	labels := B.Labels()
	ret := make([]float64, len(labels))
	for i, l := range labels {
		e, ok := m[l]
		if !ok {
			return nil, &Error{message: ErrNoConf, molecule: B.Molecule(), additional: l, deco: []string{"Predict"}, critical: true}
		}
		ret[i] = e
	}
	return ret, nil
}

func (T *Table) Version() string { return T.version }

//Reentrant returns true. The table must not be modified during a run.
func (T *Table) Reentrant() bool { return true }

//Recorder wraps a Predictor and stores every prediction it makes in a Table.
type Recorder struct {
	deltaconf.Predictor
	table *Table
	mu    sync.Mutex
}

//NewRecorder returns a Recorder for P. The table takes the version of P.
func NewRecorder(P deltaconf.Predictor) *Recorder {
	return &Recorder{Predictor: P, table: NewTable(P.Version(), nil)}
}

//Predict calls the wrapped Predictor and records the energies it returns.
func (R *Recorder) Predict(ctx context.Context, B *deltaconf.Batch) ([]float64, error) {
	e, err := R.Predictor.Predict(ctx, B)
	if err != nil || len(e) != B.Len() {
		return e, err
	}
	R.mu.Lock()
	for i, l := range B.Labels() {
		R.table.Add(B.Molecule(), l, e[i])
	}
	R.mu.Unlock()
	return e, nil
}

//Reentrant returns whether the wrapped Predictor is reentrant.
func (R *Recorder) Reentrant() bool {
	r, ok := R.Predictor.(deltaconf.Reentrant)
	return ok && r.Reentrant()
}

//Table returns the recorded predictions.
func (R *Recorder) Table() *Table { return R.table }
