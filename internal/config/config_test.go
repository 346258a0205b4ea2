/*
 * config_test.go, part of deltaconf.
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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rmera/deltaconf"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dataset", "", "")
	fs.Int("count", 5, "")
	fs.Int("workers", 1, "")
	fs.Duration("timeout", 0, "")
	fs.String("predictions", "", "")
	fs.StringArray("model-arg", nil, "")
	fs.String("report", "text", "")
	return fs
}

func TestDefaults(t *testing.T) {
	C, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, C.Selection.Count)
	assert.Equal(t, 1, C.Eval.Workers)
	assert.Equal(t, time.Duration(0), C.Eval.Timeout)
	assert.Equal(t, "", C.DatasetFormat())
	assert.Equal(t, "text", C.Report.Format)
	D, err := C.Divisor()
	require.NoError(t, err)
	assert.Equal(t, deltaconf.TotalDivisor, D)
	//no dataset and no model
	assert.Error(t, C.Validate())
}

func TestPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yml := `dataset:
  path: data.json.zst
  format: JSON
selection:
  count: 3
eval:
  workers: 4
  timeout: 90s
  divisor: pairs
model:
  command: ./model
  args: [--fast, --gpu]
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("DELTACONF_EVAL_WORKERS", "2")
	fs := flagSet()
	require.NoError(t, fs.Parse([]string{"--count", "7"}))

	C, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "data.json.zst", C.Dataset.Path)
	assert.Equal(t, "json", C.DatasetFormat())
	assert.Equal(t, 7, C.Selection.Count, "flag over file")
	assert.Equal(t, 2, C.Eval.Workers, "env over file")
	assert.Equal(t, 90*time.Second, C.Eval.Timeout)
	assert.Equal(t, []string{"--fast", "--gpu"}, C.Model.Args)
	assert.Equal(t, "debug", C.Log.Level)
	D, err := C.Divisor()
	require.NoError(t, err)
	assert.Equal(t, deltaconf.PairsDivisor, D)
	assert.NoError(t, C.Validate())
}

func TestUnsetFlagsDontOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("selection:\n  count: 2\nreport:\n  format: json\n"), 0o644))
	fs := flagSet()
	require.NoError(t, fs.Parse(nil))
	C, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 2, C.Selection.Count)
	assert.Equal(t, "json", C.Report.Format)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		C, err := Load("", nil)
		require.NoError(t, err)
		C.Dataset.Path = "d.yaml"
		C.Model.Predictions = "p.yaml"
		return C
	}
	require.NoError(t, valid().Validate())
	cases := map[string]func(*Config){
		"format":   func(C *Config) { C.Dataset.Format = "hdf5" },
		"workers":  func(C *Config) { C.Eval.Workers = -1 },
		"timeout":  func(C *Config) { C.Eval.Timeout = -time.Second },
		"divisor":  func(C *Config) { C.Eval.Divisor = "half" },
		"no model": func(C *Config) { C.Model.Predictions = "" },
		"two models": func(C *Config) {
			C.Model.Command = "./model"
		},
		"input":      func(C *Config) { C.Model.Input = "pdb" },
		"report":     func(C *Config) { C.Report.Format = "html" },
		"log level":  func(C *Config) { C.Log.Level = "loud" },
		"log format": func(C *Config) { C.Log.Format = "xml" },
	}
	for name, f := range cases {
		C := valid()
		f(C)
		assert.Error(t, C.Validate(), name)
	}
}

func TestHandler(t *testing.T) {
	h, err := LogConfig{Level: "warn", Format: "json"}.Handler(os.Stderr)
	require.NoError(t, err)
	assert.False(t, h.Enabled(t.Context(), -4))
	assert.True(t, h.Enabled(t.Context(), 8))
}
