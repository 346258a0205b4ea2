/*
 * json.go, part of deltaconf.
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
	"encoding/json"
	"io"

	"github.com/rmera/deltaconf"
)

//record is one line of a JSON report.
type record struct {
	Type    string            `json:"type"`
	RunID   string            `json:"run_id"`
	Model   string            `json:"model,omitempty"`
	Result  *deltaconf.Result `json:"result,omitempty"`
	Summary *Summary          `json:"summary,omitempty"`
}

//jsonReport writes one JSON object per line.
type jsonReport struct {
	enc   *json.Encoder
	runID string
	err   error
}

func newJSON(w io.Writer, o options) Emitter {
	return &jsonReport{enc: json.NewEncoder(w), runID: o.runID}
}

func (j *jsonReport) emit(r *record) error {
	if j.err != nil {
		return j.err
	}
	r.RunID = j.runID
	j.err = j.enc.Encode(r)
	return j.err
}

func (j *jsonReport) Banner(version string) error {
	return j.emit(&record{Type: "banner", Model: version})
}

func (j *jsonReport) Molecule(R *deltaconf.Result) error {
	return j.emit(&record{Type: "molecule", Result: R})
}

func (j *jsonReport) Summary(S *Summary) error {
	return j.emit(&record{Type: "summary", Summary: S})
}

func (j *jsonReport) Flush() error { return j.err }
