/*
 * main_test.go, part of deltaconf.
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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/deltaconf"
	"github.com/rmera/deltaconf/dataset"
	"github.com/rmera/deltaconf/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const predictions = `version: fake-1.0
predictions:
  M1: {c0: -40.50, c1: -40.4988}
  M2: {only: -10.0}
  M3: {a: -1.0, b: -1.001, c: -0.999}
`

func TestBuildRootCmdIncludesSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range buildRootCmd().Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"eval", "convert", "inspect"} {
		assert.True(t, names[name], name)
	}
}

//fixture writes a dataset with 3 molecules, and the predictions for them.
func fixture(t *testing.T, name string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	mol := func(label string, confs []string, energies []float64) *deltaconf.Molecule {
		cs := make([]*deltaconf.Conformer, len(confs))
		for i, l := range confs {
			c, err := deltaconf.NewConformerFlat(l, []float64{0, 0, float64(i), 0, 0, 0.74 + float64(i)}, energies[i])
			require.NoError(t, err)
			cs[i] = c
		}
		M, err := deltaconf.NewMolecule(label, "InChI=1S/H2/h1H", []int{1, 1}, cs)
		require.NoError(t, err)
		return M
	}
	mols := []*deltaconf.Molecule{
		mol("M1", []string{"c0", "c1"}, []float64{-40.5, -40.499}),
		mol("M2", []string{"only"}, []float64{-10}),
		mol("M3", []string{"a", "b", "c"}, []float64{-1, -1.002, -0.998}),
	}
	data := filepath.Join(dir, name)
	require.NoError(t, dataset.Write(context.Background(), data, mols))
	preds := filepath.Join(dir, "preds.yaml")
	require.NoError(t, os.WriteFile(preds, []byte(predictions), 0o644))
	return data, preds
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := buildRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	data, preds := fixture(t, "confs.json.zst")
	out, err := run(t, "eval", "--dataset", data, "--predictions", preds, "--count", "2", "--log-level", "error")
	require.NoError(t, err)
	want := "Model version: fake-1.0\n" +
		"M1: 2 conformers: Deltas vs c0\n" +
		fmt.Sprintf("%-10s%10s%10s%10s\n", "Conf", "Truth", "Pred", "Error") +
		"c1            2.6255    3.1506    0.5251\n" +
		"RMSE: 0.3713 KJ/mol\n" +
		"\n" +
		"M2: Need at least two conformers\n"
	assert.Equal(t, want, out)
}

func TestEvalAll(t *testing.T) {
	data, preds := fixture(t, "confs.sqlite")
	plot := filepath.Join(t.TempDir(), "parity.png")
	record := filepath.Join(t.TempDir(), "record.yaml")
	out, err := run(t, "eval", "-d", data, "-p", preds, "-n", "0", "-w", "3", "--summary", "--plot", plot, "--record", record, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "M3: 3 conformers: Deltas vs a\n")
	assert.Less(t, strings.Index(out, "M1:"), strings.Index(out, "M3:"))
	assert.Contains(t, out, "Molecules: 3 (2 evaluated, 1 skipped)\n")
	assert.FileExists(t, plot)
	assert.FileExists(t, filepath.Join(filepath.Dir(plot), "parity-errors.png"))

	T, err := model.LoadTable(record)
	require.NoError(t, err)
	assert.Equal(t, "fake-1.0", T.Version())
	B, err := deltaconf.Assemble(mustRead(t, data)[2])
	require.NoError(t, err)
	e, err := T.Predict(context.Background(), B)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1.0, -1.001, -0.999}, e)
}

func mustRead(t *testing.T, path string) []*deltaconf.Molecule {
	t.Helper()
	mols, err := dataset.Read(context.Background(), path)
	require.NoError(t, err)
	return mols
}

func TestEvalErrors(t *testing.T) {
	data, preds := fixture(t, "confs.yaml")
	_, err := run(t, "eval", "--predictions", preds)
	assert.Error(t, err, "no dataset")
	_, err = run(t, "eval", "--dataset", data+".gz", "--predictions", preds)
	assert.ErrorIs(t, err, deltaconf.ErrDatasetNotFound)
	missing := filepath.Join(t.TempDir(), "preds.yaml")
	require.NoError(t, os.WriteFile(missing, []byte("version: v\npredictions:\n  M1: {c0: -1}\n"), 0o644))
	_, err = run(t, "eval", "--dataset", data, "--predictions", missing, "--log-level", "error")
	assert.Error(t, err, "no prediction for c1")
}

func TestConvertAndInspect(t *testing.T) {
	data, _ := fixture(t, "confs.msgpack.lz4")
	out := filepath.Join(t.TempDir(), "confs.yaml.gz")
	_, err := run(t, "convert", data, out)
	require.NoError(t, err)
	assert.Len(t, mustRead(t, out), 3)

	list, err := run(t, "inspect", out)
	require.NoError(t, err)
	for _, s := range []string{"Molecule", "M1", "M3", "InChI=1S/H2/h1H", "3 molecules, 6 conformers"} {
		assert.Contains(t, list, s)
	}
	xyz, err := run(t, "inspect", out, "--xyz", "M3")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(xyz, "\nH "))
	for _, l := range []string{"\na\n", "\nb\n", "\nc\n"} {
		assert.Contains(t, xyz, l)
	}
	_, err = run(t, "inspect", out, "--xyz", "M9")
	assert.Error(t, err)
}
