/*
 * text.go, part of deltaconf.
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
	"io"

	"github.com/rmera/deltaconf"
)

//text writes the plain, column-aligned report.
type text struct {
	buf *bufio.Writer
	out stickyWriter
}

func newText(w io.Writer, o options) Emitter {
	t := &text{buf: bufio.NewWriter(w)}
	t.out.w = t.buf
	return t
}

func (t *text) Banner(version string) error {
	t.out.printf("Model version: %s\n", version)
	return t.out.err
}

func (t *text) Molecule(R *deltaconf.Result) error {
	if R.Skipped {
		t.out.printf("%s: Need at least two conformers\n", R.Molecule)
		return t.out.err
	}
	t.out.printf("%s: %d conformers: Deltas vs %s\n", R.Molecule, R.Conformers, R.Reference)
	t.out.printf("%-10s%10s%10s%10s\n", "Conf", "Truth", "Pred", "Error")
	for _, r := range R.Rows {
		t.out.printf("%-10s%10.4f%10.4f%10.4f\n", r.Label, r.Truth, r.Pred, r.Error)
	}
	t.out.printf("RMSE: %.4f KJ/mol\n\n", R.RMSE)
	return t.out.err
}

func (t *text) Summary(S *Summary) error {
	t.out.printf("%s", S.String())
	return t.out.err
}

func (t *text) Flush() error {
	if t.out.err != nil {
		return t.out.err
	}
	t.out.err = t.buf.Flush()
	return t.out.err
}
