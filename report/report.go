/*
 * report.go, part of deltaconf.
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

//Package report writes the results of a deltaconf run: a banner with the
//model version, the relative energies of each molecule, and an optional
//summary of the whole run.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rmera/deltaconf"
)

//Emitter writes a report. Molecule is called once per molecule, in dataset order.
//Errors are sticky: after a failed write, all the methods return the same error.
type Emitter interface {
	Banner(version string) error
	Molecule(R *deltaconf.Result) error
	Summary(S *Summary) error
	Flush() error
}

type options struct {
	runID string
}

//Option modifies an Emitter.
type Option func(*options)

//WithRunID sets the run id used by the emitters that print one. By default
//a random UUID is used.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

var constructors = map[string]func(io.Writer, options) Emitter{
	"text":   newText,
	"pretty": newPretty,
	"json":   newJSON,
}

//Formats returns the names of the available report formats.
func Formats() []string {
	ret := make([]string, 0, len(constructors))
	for k := range constructors {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//New returns an Emitter that writes a report in the given format to w.
func New(format string, w io.Writer, opts ...Option) (Emitter, error) {
	f, ok := constructors[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("report: unknown format %q, use one of %s", format, strings.Join(Formats(), ", "))
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	return f(w, o), nil
}

//Write emits the banner, all the results, and, if S is not nil, the summary, and flushes E.
func Write(E Emitter, version string, results []*deltaconf.Result, S *Summary) error {
	if err := E.Banner(version); err != nil {
		return err
	}
	for _, R := range results {
		if err := E.Molecule(R); err != nil {
			return err
		}
	}
	if S != nil {
		if err := E.Summary(S); err != nil {
			return err
		}
	}
	return E.Flush()
}

//stickyWriter keeps the first error in a series of writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}
