/*
 * commands.go, part of deltaconf.
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
	"github.com/rmera/deltaconf/model"
	"github.com/spf13/cobra"
)

func buildEvalCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a model on the first molecules of a dataset",
		Long: `Evaluate a model on the first molecules of a dataset.

The model is either an external program (--model), which is run once per
molecule with the path of an input file with all its conformers as its last
argument, and must print one energy (Hartree) per conformer, or a YAML table
of precomputed energies (--predictions).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, *configPath)
		},
	}
	f := cmd.Flags()
	f.StringP("dataset", "d", "", "Dataset file")
	f.String("format", "auto", "Dataset format (auto, json, yaml, msgpack, sqlite)")
	f.IntP("count", "n", 5, "Number of molecules to evaluate, 0 for all")
	f.IntP("workers", "w", 1, "Molecules evaluated concurrently")
	f.Duration("timeout", 0, "Time limit for each model call, 0 for none")
	f.String("divisor", "total", "RMSE divisor: total (all conformers) or pairs (compared conformers)")
	f.StringP("model", "m", "", "Model program")
	f.StringArray("model-arg", nil, "Argument for the model program, before the input file (repeatable)")
	f.String("input", model.InputJSON, "Input file format for the model program (json, xyz)")
	f.String("model-version", "", "Model version to report, instead of asking the program")
	f.StringP("predictions", "p", "", "YAML table of predicted energies, instead of a model program")
	f.String("workdir", "", "Directory for the temporary input files of the model program")
	f.String("record", "", "Save all the predictions to this YAML table")
	f.StringP("report", "r", "text", "Report format (text, pretty, json)")
	f.Bool("summary", false, "Print a summary of the whole run")
	f.String("plot", "", "Save a parity plot to this file (png, svg, pdf), and an error histogram next to it")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func buildConvertCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a dataset to another format",
		Long: `Convert a dataset to another format, given by the extensions of the
output file, e.g. data.json.zst to data.sqlite. All the molecules are
validated on the way.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], args[1], from, to)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Format of the input, instead of guessing it")
	cmd.Flags().StringVar(&to, "to", "", "Format of the output, instead of guessing it")
	return cmd
}

func buildInspectCmd() *cobra.Command {
	var format string
	var xyz string
	cmd := &cobra.Command{
		Use:   "inspect <dataset>",
		Short: "List the molecules of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], format, xyz)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Format of the dataset, instead of guessing it")
	cmd.Flags().StringVar(&xyz, "xyz", "", "Write the conformers of the molecule with this label as multi-XYZ to standard output")
	return cmd
}
