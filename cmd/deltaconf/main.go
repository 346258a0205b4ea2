/*
 * main.go, part of deltaconf.
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

//Command deltaconf compares the relative conformer energies predicted by a
//model with the reference energies in a dataset.
//
//Evaluate the first 5 molecules of a dataset with an external model:
//
//	deltaconf eval --dataset confs.json.zst --model ./predict.sh
//
//Or with a table of precomputed predictions:
//
//	deltaconf eval --dataset confs.yaml --predictions preds.yaml --count 0 --summary
//
//Settings can also be given in a YAML file (--config, or deltaconf.yaml in the
//current directory) and in DELTACONF_* environment variables, e.g.
//DELTACONF_EVAL_WORKERS=4.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

//Set with -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD)"
var (
	version = "dev"
	commit  = "none"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := buildRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("deltaconf failed", "error", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:   "deltaconf",
		Short: "Evaluate predicted conformer energy differences",
		Long: `deltaconf compares the energy of each conformer relative to the first
conformer of its molecule, as predicted by a model, with the same difference
in a reference dataset, and reports the errors in kJ/mol.

Dataset formats: json, yaml, msgpack, sqlite; json, yaml and msgpack files
can be compressed with zstd (.zst), gzip (.gz) or lz4 (.lz4).`,
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (default: deltaconf.yaml, if present)")
	rootCmd.AddCommand(
		buildEvalCmd(&configPath),
		buildConvertCmd(),
		buildInspectCmd(),
	)
	return rootCmd
}
