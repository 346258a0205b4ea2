/*
 * errors.go, part of deltaconf.
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

package deltaconf

import (
	"errors"
	"fmt"
	"strings"
)

//Kinds of errors. Errors returned by this package and its subpackages can be
//tested against them with errors.Is.
var (
	//The dataset doesn't exist or can't be opened. Retrying won't help.
	ErrDatasetNotFound = errors.New("dataset not found")
	//A molecule or conformer record is missing an attribute or has the wrong shape.
	ErrMalformedRecord = errors.New("malformed record")
	//A batch was requested for a molecule without conformers.
	ErrEmptyBatch = errors.New("no conformers to assemble")
)

//Error is the error type of deltaconf. Besides the kind of error, it keeps the
//dataset, molecule and conformer involved, if any, so a bad record can be located,
//and a list of the functions it went through.
type Error struct {
	kind      error
	cause     error
	source    string
	molecule  string
	conformer string
	deco      []string
	critical  bool
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.kind.Error())
	if err.source != "" {
		fmt.Fprintf(&b, " in %s", err.source)
	}
	if err.molecule != "" {
		fmt.Fprintf(&b, ", molecule %q", err.molecule)
	}
	if err.conformer != "" {
		fmt.Fprintf(&b, ", conformer %q", err.conformer)
	}
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	return b.String()
}

//Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
//An empty dec just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//Unwrap returns the kind of the error and, if present, its cause.
func (err *Error) Unwrap() []error {
	if err.cause == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.cause}
}

//Source returns the dataset associated to the error, or an empty string.
func (err *Error) Source() string { return err.source }

//Molecule returns the label of the molecule associated to the error, or an empty string.
func (err *Error) Molecule() string { return err.molecule }

//Conformer returns the label of the conformer associated to the error, or an empty string.
func (err *Error) Conformer() string { return err.conformer }

//SetSource sets the dataset associated to the error, unless it was already set.
func (err *Error) SetSource(source string) *Error {
	if err.source == "" {
		err.source = source
	}
	return err
}

//SetMolecule sets the molecule associated to the error, unless it was already set.
func (err *Error) SetMolecule(label string) *Error {
	if err.molecule == "" {
		err.molecule = label
	}
	return err
}

//DatasetNotFound returns a critical ErrDatasetNotFound error for source.
func DatasetNotFound(source string, cause error) *Error {
	return &Error{kind: ErrDatasetNotFound, cause: cause, source: source, critical: true}
}

//MalformedRecord returns a critical ErrMalformedRecord error for the given molecule and conformer
//(either can be empty). The message is built as in fmt.Errorf, so %w can be used.
func MalformedRecord(molecule, conformer, format string, args ...any) *Error {
	return &Error{kind: ErrMalformedRecord, cause: fmt.Errorf(format, args...), molecule: molecule, conformer: conformer, critical: true}
}

//ErrDecorate decorates err with the caller's name if err is, or wraps, a
//DecoratedError. It returns err in any case.
func ErrDecorate(err error, caller string) error {
	var d DecoratedError
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrPredictionLength = PanicMsg("deltaconf: number of predicted energies doesn't match the number of conformers")
	ErrNilMolecule      = PanicMsg("deltaconf: given nil molecule")
	ErrConformerRange   = PanicMsg("deltaconf: conformer index out of range")
)
