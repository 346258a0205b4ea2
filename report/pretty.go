/*
 * pretty.go, part of deltaconf.
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
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rmera/deltaconf"
)

//pretty writes the same report as text, with tables and colors if the
//output is a terminal.
type pretty struct {
	out    stickyWriter
	title  lipgloss.Style
	faint  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	rmse   lipgloss.Style
	bad    lipgloss.Style
}

//Rows with an error above this (kJ/mol, about 1 kcal/mol) are highlighted.
const highlight = 4.184

func newPretty(w io.Writer, o options) Emitter {
	r := lipgloss.NewRenderer(w)
	return &pretty{
		out:    stickyWriter{w: w},
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		faint:  r.NewStyle().Foreground(lipgloss.Color("240")),
		header: r.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center),
		cell:   r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
		rmse:   r.NewStyle().Bold(true),
		bad:    r.NewStyle().Padding(0, 1).Align(lipgloss.Right).Foreground(lipgloss.Color("160")),
	}
}

func (p *pretty) Banner(version string) error {
	p.out.printf("%s\n\n", p.title.Render("Model version: "+version))
	return p.out.err
}

func (p *pretty) Molecule(R *deltaconf.Result) error {
	if R.Skipped {
		p.out.printf("%s\n\n", p.faint.Render(R.Molecule+": Need at least two conformers"))
		return p.out.err
	}
	p.out.printf("%s\n", p.title.Render(fmt.Sprintf("%s: %d conformers: Deltas vs %s", R.Molecule, R.Conformers, R.Reference)))
	if R.Identifier != "" {
		p.out.printf("%s\n", p.faint.Render(R.Identifier))
	}
	rows := make([][]string, 0, len(R.Rows))
	for _, r := range R.Rows {
		rows = append(rows, []string{r.Label, fmt.Sprintf("%.4f", r.Truth), fmt.Sprintf("%.4f", r.Pred), fmt.Sprintf("%.4f", r.Error)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.border).
		Headers("Conf", "Truth", "Pred", "Error").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.header
			case col == 0:
				return p.cell.Align(lipgloss.Left)
			case col == 3 && row >= 0 && row < len(R.Rows) && R.Rows[row].Error > highlight:
				return p.bad
			}
			return p.cell
		})
	p.out.printf("%s\n", t.Render())
	p.out.printf("%s\n\n", p.rmse.Render(fmt.Sprintf("RMSE: %.4f KJ/mol", R.RMSE)))
	return p.out.err
}

func (p *pretty) Summary(S *Summary) error {
	p.out.printf("%s\n%s", p.title.Render("Summary"), S.String())
	return p.out.err
}

func (p *pretty) Flush() error { return p.out.err }
