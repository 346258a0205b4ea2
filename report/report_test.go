/*
 * report_test.go, part of deltaconf.
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
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rmera/deltaconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func results() []*deltaconf.Result {
	return []*deltaconf.Result{
		{
			Molecule:   "M1",
			Conformers: 2,
			Reference:  "c0",
			Rows:       []deltaconf.Row{{Label: "c1", Truth: 2.6255, Pred: 3.1506, Error: 0.5251}},
			RMSE:       0.3713,
			Divisor:    "total",
		},
		{Molecule: "M2", Conformers: 1, Skipped: true},
		{
			Molecule:   "M3",
			Conformers: 3,
			Reference:  "a",
			Rows: []deltaconf.Row{
				{Label: "b", Truth: 1, Pred: 2, Error: 1},
				{Label: "c", Truth: -1, Pred: 2, Error: 3},
			},
			RMSE:    1.8257,
			Divisor: "total",
		},
	}
}

func TestText(t *testing.T) {
	var b bytes.Buffer
	E, err := New("text", &b)
	require.NoError(t, err)
	require.NoError(t, Write(E, "fake-1.0", results()[:2], nil))
	want := "Model version: fake-1.0\n" +
		"M1: 2 conformers: Deltas vs c0\n" +
		"Conf      " + "     Truth" + "      Pred" + "     Error\n" +
		"c1            2.6255    3.1506    0.5251\n" +
		"RMSE: 0.3713 KJ/mol\n" +
		"\n" +
		"M2: Need at least two conformers\n"
	assert.Equal(t, want, b.String())
}

func TestTextSummary(t *testing.T) {
	var b bytes.Buffer
	E, err := New("TEXT", &b)
	require.NoError(t, err)
	res := results()
	require.NoError(t, Write(E, "v", res, Summarize(res)))
	out := b.String()
	assert.Contains(t, out, "Molecules: 3 (2 evaluated, 1 skipped)\n")
	assert.Contains(t, out, "Conformers compared: 3\n")
	assert.Contains(t, out, "Max RMSE: 1.8257 KJ/mol (M3)\n")
	assert.Contains(t, out, "Max error: 3.0000 KJ/mol\n")
}

func TestPretty(t *testing.T) {
	var b bytes.Buffer
	E, err := New("pretty", &b)
	require.NoError(t, err)
	require.NoError(t, Write(E, "fake-1.0", results(), nil))
	out := b.String()
	for _, s := range []string{"Model version: fake-1.0", "M1: 2 conformers: Deltas vs c0", "Conf", "3.1506", "0.5251", "RMSE: 0.3713 KJ/mol", "M2: Need at least two conformers", "RMSE: 1.8257 KJ/mol"} {
		assert.Contains(t, out, s)
	}
	assert.Less(t, strings.Index(out, "M1:"), strings.Index(out, "M3:"))
}

func TestJSON(t *testing.T) {
	var b bytes.Buffer
	E, err := New("json", &b, WithRunID("run-1"))
	require.NoError(t, err)
	res := results()
	require.NoError(t, Write(E, "fake-1.0", res, Summarize(res)))
	var recs []record
	sc := bufio.NewScanner(&b)
	for sc.Scan() {
		var r record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		assert.Equal(t, "run-1", r.RunID)
		recs = append(recs, r)
	}
	require.Len(t, recs, 5)
	assert.Equal(t, "banner", recs[0].Type)
	assert.Equal(t, "fake-1.0", recs[0].Model)
	assert.Equal(t, "molecule", recs[1].Type)
	assert.Equal(t, "M1", recs[1].Result.Molecule)
	assert.InDelta(t, 0.3713, recs[1].Result.RMSE, 1e-12)
	assert.True(t, recs[2].Result.Skipped)
	assert.Equal(t, "summary", recs[4].Type)
	assert.Equal(t, 2, recs[4].Summary.Evaluated)
	assert.Equal(t, 3, recs[4].Summary.Errors.Total())
}

func TestRunID(t *testing.T) {
	var b bytes.Buffer
	E, err := New("json", &b)
	require.NoError(t, err)
	require.NoError(t, E.Banner("v"))
	var r record
	require.NoError(t, json.Unmarshal(b.Bytes(), &r))
	assert.Len(t, r.RunID, 36)
}

func TestSummarize(t *testing.T) {
	S := Summarize(results())
	assert.Equal(t, 3, S.Molecules)
	assert.Equal(t, 2, S.Evaluated)
	assert.Equal(t, 1, S.Skipped)
	assert.Equal(t, 3, S.Compared)
	assert.InDelta(t, (0.3713+1.8257)/2, S.MeanRMSE, 1e-9)
	assert.Equal(t, "M3", S.MaxRMSEMolecule)
	assert.InDelta(t, (0.5251+1+3)/3, S.MAE, 1e-9)
	assert.Equal(t, 3.0, S.MaxError)
	assert.Equal(t, []float64{0, 1, 1, 1, 0, 0}, S.Errors.View())

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Evaluated)
	assert.Equal(t, 0.0, empty.MeanRMSE)
	assert.NotContains(t, empty.String(), "RMSE")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New("html", &bytes.Buffer{})
	assert.Error(t, err)
	assert.Equal(t, []string{"json", "pretty", "text"}, Formats())
}

type failing struct{}

var errFull = errors.New("disk full")

func (failing) Write(p []byte) (int, error) { return 0, errFull }

func TestWriteError(t *testing.T) {
	for _, f := range Formats() {
		E, err := New(f, failing{})
		require.NoError(t, err)
		err = Write(E, "v", results(), nil)
		assert.ErrorIs(t, err, errFull, f)
		assert.ErrorIs(t, E.Flush(), errFull, f)
	}
}
