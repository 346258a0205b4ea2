/*
 * config.go, part of deltaconf.
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

//Package config loads the settings of a deltaconf run from defaults, an
//optional YAML file, DELTACONF_* environment variables and command line flags,
//in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rmera/deltaconf"
	"github.com/rmera/deltaconf/dataset"
	"github.com/rmera/deltaconf/model"
	"github.com/rmera/deltaconf/report"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Selection SelectionConfig `mapstructure:"selection"`
	Eval      EvalConfig      `mapstructure:"eval"`
	Model     ModelConfig     `mapstructure:"model"`
	Report    ReportConfig    `mapstructure:"report"`
	Log       LogConfig       `mapstructure:"log"`
}

type DatasetConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` //"auto" guesses from the file name.
}

type SelectionConfig struct {
	Count int `mapstructure:"count"` //<=0 means all molecules.
}

type EvalConfig struct {
	Workers int           `mapstructure:"workers"`
	Timeout time.Duration `mapstructure:"timeout"`
	Divisor string        `mapstructure:"divisor"`
}

type ModelConfig struct {
	Command     string   `mapstructure:"command"`
	Args        []string `mapstructure:"args"`
	Input       string   `mapstructure:"input"`
	Version     string   `mapstructure:"version"`
	Predictions string   `mapstructure:"predictions"`
	WorkDir     string   `mapstructure:"workdir"`
	Record      string   `mapstructure:"record"`
}

type ReportConfig struct {
	Format  string `mapstructure:"format"`
	Summary bool   `mapstructure:"summary"`
	Plot    string `mapstructure:"plot"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"dataset.path":      "",
	"dataset.format":    "auto",
	"selection.count":   5,
	"eval.workers":      1,
	"eval.timeout":      "0s",
	"eval.divisor":      "total",
	"model.command":     "",
	"model.args":        []string{},
	"model.input":       model.InputJSON,
	"model.version":     "",
	"model.predictions": "",
	"model.workdir":     "",
	"model.record":      "",
	"report.format":     "text",
	"report.summary":    false,
	"report.plot":       "",
	"log.level":         "info",
	"log.format":        "text",
}

//Flags maps each configuration key to the name of the command line flag
//that sets it.
var Flags = map[string]string{
	"dataset.path":      "dataset",
	"dataset.format":    "format",
	"selection.count":   "count",
	"eval.workers":      "workers",
	"eval.timeout":      "timeout",
	"eval.divisor":      "divisor",
	"model.command":     "model",
	"model.args":        "model-arg",
	"model.input":       "input",
	"model.version":     "model-version",
	"model.predictions": "predictions",
	"model.workdir":     "workdir",
	"model.record":      "record",
	"report.format":     "report",
	"report.summary":    "summary",
	"report.plot":       "plot",
	"log.level":         "log-level",
	"log.format":        "log-format",
}

//Load reads the configuration. If path is empty, a deltaconf.yaml in the
//current directory is used if there is one. Flags in flags named as in Flags
//override every other source, but only when they are set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("DELTACONF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if flags != nil {
		for key, name := range Flags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else {
		v.SetConfigName("deltaconf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}
	C := new(Config)
	if err := v.Unmarshal(C); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return C, nil
}

//Validate checks the values needed for an evaluation run.
func (C *Config) Validate() error {
	var errs []error
	if C.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset.path is not set"))
	}
	if f := C.DatasetFormat(); f != "" && !slices.Contains(dataset.Formats(), f) {
		errs = append(errs, fmt.Errorf("dataset.format %q is not one of auto, %s", C.Dataset.Format, strings.Join(dataset.Formats(), ", ")))
	}
	if C.Eval.Workers < 0 {
		errs = append(errs, fmt.Errorf("eval.workers can't be negative (%d)", C.Eval.Workers))
	}
	if C.Eval.Timeout < 0 {
		errs = append(errs, fmt.Errorf("eval.timeout can't be negative (%s)", C.Eval.Timeout))
	}
	if _, err := C.Divisor(); err != nil {
		errs = append(errs, err)
	}
	if C.Model.Command == "" && C.Model.Predictions == "" {
		errs = append(errs, errors.New("one of model.command and model.predictions must be set"))
	}
	if C.Model.Command != "" && C.Model.Predictions != "" {
		errs = append(errs, errors.New("model.command and model.predictions can't be both set"))
	}
	switch strings.ToLower(C.Model.Input) {
	case "", model.InputJSON, model.InputXYZ:
	default:
		errs = append(errs, fmt.Errorf("model.input %q is not one of json, xyz", C.Model.Input))
	}
	if !slices.Contains(report.Formats(), strings.ToLower(C.Report.Format)) {
		errs = append(errs, fmt.Errorf("report.format %q is not one of %s", C.Report.Format, strings.Join(report.Formats(), ", ")))
	}
	if _, err := C.Log.Handler(io.Discard); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

//DatasetFormat returns the dataset format, or "" if it is to be guessed
//from the file name.
func (C *Config) DatasetFormat() string {
	f := strings.ToLower(strings.TrimSpace(C.Dataset.Format))
	if f == "auto" {
		return ""
	}
	return f
}

func (C *Config) Divisor() (deltaconf.Divisor, error) {
	return deltaconf.ParseDivisor(C.Eval.Divisor)
}

//Handler returns a slog handler writing to w with the level and format of L.
func (L LogConfig) Handler(w io.Writer) (slog.Handler, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(L.Level)); err != nil {
		return nil, fmt.Errorf("log.level %q: %w", L.Level, err)
	}
	o := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(L.Format) {
	case "", "text":
		return slog.NewTextHandler(w, o), nil
	case "json":
		return slog.NewJSONHandler(w, o), nil
	}
	return nil, fmt.Errorf("log.format %q is not one of text, json", L.Format)
}
