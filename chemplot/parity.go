/*
 * parity.go, part of deltaconf.
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

//Package chemplot produces plots of the results of a deltaconf run.
package chemplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/deltaconf"
	"github.com/rmera/deltaconf/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Plots with more molecules than this get no legend.
const maxLegend = 12

//ErrNothingToPlot is returned when none of the results has a compared conformer.
var ErrNothingToPlot = errors.New("chemplot: no data to plot")

func basicParityPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Reference ΔE (kJ/mol)"
	p.Y.Label.Text = "Predicted ΔE (kJ/mol)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

//Parity plots the predicted against the reference relative energies of every
//compared conformer in results, one color per molecule, with the y=x line.
//The point with the largest error is drawn with a ring. The format is given by
//the extension of plotname (png, svg, pdf, ...).
func Parity(results []*deltaconf.Result, title, plotname string) error {
	p := basicParityPlot(title)
	lo, hi := math.Inf(1), math.Inf(-1)
	worst := make(plotter.XYs, 1)
	worstErr := -1.0
	plotted := make([]*deltaconf.Result, 0, len(results))
	for _, R := range results {
		if R != nil && len(R.Rows) > 0 {
			plotted = append(plotted, R)
		}
	}
	if len(plotted) == 0 {
		return ErrNothingToPlot
	}
	for key, R := range plotted {
		pts := make(plotter.XYs, len(R.Rows))
		for i, row := range R.Rows {
			pts[i].X = row.Truth
			pts[i].Y = row.Pred
			lo = math.Min(lo, math.Min(row.Truth, row.Pred))
			hi = math.Max(hi, math.Max(row.Truth, row.Pred))
			if row.Error > worstErr {
				worstErr = row.Error
				worst[0] = pts[i]
			}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(plotted))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		if len(plotted) <= maxLegend {
			p.Legend.Add(R.Molecule, s)
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	diag, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return err
	}
	diag.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	diag.LineStyle.Color = color.Gray{Y: 100}
	p.Add(diag)
	mark, err := plotter.NewScatter(worst)
	if err != nil {
		return err
	}
	mark.GlyphStyle.Shape = draw.RingGlyph{}
	mark.GlyphStyle.Radius = vg.Points(6)
	p.Add(mark)
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi
	return p.Save(5*vg.Inch, 5*vg.Inch, plotname)
}

//ErrorHistogram plots the histogram h of absolute errors as a bar chart.
//Values out of the range of the histogram are shown as an extra bar, if any.
func ErrorHistogram(h *histo.Data, title, plotname string) error {
	if h == nil || h.Total() == 0 {
		return ErrNothingToPlot
	}
	div := h.Dividers()
	values := make(plotter.Values, 0, len(div))
	names := make([]string, 0, len(div))
	for i, v := range h.View() {
		values = append(values, v)
		names = append(names, fmt.Sprintf("%.3g-%.3g", div[i], div[i+1]))
	}
	if h.Over() > 0 {
		over := float64(h.Over())
		if h.Normalized() {
			over /= float64(h.Total())
		}
		values = append(values, over)
		names = append(names, fmt.Sprintf(">%.3g", div[len(div)-1]))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "|Error| (kJ/mol)"
	p.Y.Label.Text = "Conformers"
	if h.Normalized() {
		p.Y.Label.Text = "Fraction of conformers"
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	r, g, b := colors(0, 1)
	bars.Color = color.RGBA{R: r, G: g, B: b, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, plotname)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = math.Mod(h, 360) / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * maxcolor), uint8(g * maxcolor), uint8(b * maxcolor)
}

//colors returns a color for element key out of steps, skipping the yellows,
//which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64((float64(key) * norm) + 20.0)
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 0.9, 0.85)
}
