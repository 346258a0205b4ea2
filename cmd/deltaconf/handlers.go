/*
 * handlers.go, part of deltaconf.
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
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/rmera/deltaconf"
	"github.com/rmera/deltaconf/chemplot"
	"github.com/rmera/deltaconf/dataset"
	"github.com/rmera/deltaconf/internal/config"
	"github.com/rmera/deltaconf/model"
	"github.com/rmera/deltaconf/report"
	"github.com/spf13/cobra"
)

func runEval(cmd *cobra.Command, configPath string) error {
	C, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := C.Validate(); err != nil {
		return err
	}
	h, err := C.Log.Handler(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger := slog.New(h).With("run_id", runID)
	ctx := cmd.Context()

	var opts []dataset.Option
	if f := C.DatasetFormat(); f != "" {
		opts = append(opts, dataset.WithFormat(f))
	}
	mols, err := dataset.Read(ctx, C.Dataset.Path, opts...)
	if err != nil {
		return err
	}
	logger.Debug("dataset read", "path", C.Dataset.Path, "molecules", len(mols))
	mols = deltaconf.First(mols, C.Selection.Count)

	P, rec, err := predictor(C)
	if err != nil {
		return err
	}
	div, err := C.Divisor()
	if err != nil {
		return err
	}
	E, err := report.New(C.Report.Format, cmd.OutOrStdout(), report.WithRunID(runID))
	if err != nil {
		return err
	}
	if err := E.Banner(P.Version()); err != nil {
		return err
	}
	ev := &deltaconf.Evaluator{
		Predictor: P,
		Workers:   C.Eval.Workers,
		Timeout:   C.Eval.Timeout,
		Divisor:   div,
		Logger:    logger,
		OnResult:  E.Molecule,
	}
	results, err := ev.Run(ctx, mols)
	if err != nil {
		//what was already reported stays.
		return errors.Join(err, E.Flush())
	}
	S := report.Summarize(results)
	S.Model = P.Version()
	if C.Report.Summary {
		if err := E.Summary(S); err != nil {
			return err
		}
	}
	if err := E.Flush(); err != nil {
		return err
	}
	if rec != nil {
		if err := rec.Table().Save(C.Model.Record); err != nil {
			return err
		}
		logger.Info("predictions saved", "path", C.Model.Record)
	}
	if C.Report.Plot != "" {
		return plots(results, S, C.Report.Plot, logger)
	}
	return nil
}

//predictor returns the model set in C, wrapped in a Recorder if the
//predictions are to be saved.
func predictor(C *config.Config) (deltaconf.Predictor, *model.Recorder, error) {
	var P deltaconf.Predictor
	if C.Model.Predictions != "" {
		T, err := model.LoadTable(C.Model.Predictions)
		if err != nil {
			return nil, nil, err
		}
		P = T
	} else {
		X := model.NewExecHandle(C.Model.Command, C.Model.Args...)
		if err := X.SetInputFormat(C.Model.Input); err != nil {
			return nil, nil, err
		}
		X.SetVersion(C.Model.Version)
		X.SetWorkDir(C.Model.WorkDir)
		P = X
	}
	if C.Model.Record == "" {
		return P, nil, nil
	}
	rec := model.NewRecorder(P)
	return rec, rec, nil
}

//plots saves the parity plot in path, and the error histogram in the
//same place, with "-errors" before the extension.
func plots(results []*deltaconf.Result, S *report.Summary, path string, logger *slog.Logger) error {
	title := "Model " + S.Model
	err := chemplot.Parity(results, title, path)
	if errors.Is(err, chemplot.ErrNothingToPlot) {
		logger.Warn("no conformers compared, no plots saved")
		return nil
	}
	if err != nil {
		return err
	}
	ext := filepath.Ext(path)
	hpath := strings.TrimSuffix(path, ext) + "-errors" + ext
	if err := chemplot.ErrorHistogram(S.Errors, title, hpath); err != nil {
		return err
	}
	logger.Info("plots saved", "parity", path, "errors", hpath)
	return nil
}

func runConvert(cmd *cobra.Command, in, out, from, to string) error {
	ctx := cmd.Context()
	var ropts, wopts []dataset.Option
	if from != "" {
		ropts = append(ropts, dataset.WithFormat(from))
	}
	if to != "" {
		wopts = append(wopts, dataset.WithFormat(to))
	}
	mols, err := dataset.Read(ctx, in, ropts...)
	if err != nil {
		return err
	}
	if err := dataset.Write(ctx, out, mols, wopts...); err != nil {
		return err
	}
	slog.Info("dataset converted", "from", in, "to", out, "molecules", len(mols))
	return nil
}

func runInspect(cmd *cobra.Command, path, format, xyz string) error {
	var opts []dataset.Option
	if format != "" {
		opts = append(opts, dataset.WithFormat(format))
	}
	mols, err := dataset.Read(cmd.Context(), path, opts...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if xyz != "" {
		for _, M := range mols {
			if M.Label() == xyz {
				return deltaconf.WriteXYZ(out, M)
			}
		}
		return fmt.Errorf("no molecule %q in %s", xyz, path)
	}
	r := lipgloss.NewRenderer(out)
	rows := make([][]string, 0, len(mols))
	confs := 0
	for _, M := range mols {
		confs += M.NConformers()
		rows = append(rows, []string{M.Label(), strconv.Itoa(M.NConformers()), strconv.Itoa(M.Len()), M.Identifier()})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Molecule", "Conformers", "Atoms", "Identifier").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := r.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col == 1 || col == 2 {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	_, err = fmt.Fprintf(out, "%s\n%d molecules, %d conformers\n", t.Render(), len(mols), confs)
	return err
}
