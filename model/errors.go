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

package model

import (
	"fmt"
	"strings"
)

//Error is the error returned by the Predictors in this package.
type Error struct {
	message    string
	command    string
	molecule   string
	additional string
	cause      error
	deco       []string
	critical   bool
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.message)
	if err.command != "" {
		fmt.Fprintf(&b, " (%s)", err.command)
	}
	if err.molecule != "" {
		fmt.Fprintf(&b, " for molecule %q", err.molecule)
	}
	if err.additional != "" {
		b.WriteString(": ")
		b.WriteString(err.additional)
	}
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	return b.String()
}

//Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//Command returns the model program associated to the error, if any.
func (err *Error) Command() string { return err.command }

//Molecule returns the molecule associated to the error, if any.
func (err *Error) Molecule() string { return err.molecule }

func (err *Error) Unwrap() error { return err.cause }

const (
	ErrNotRunning = "Model program failed"
	ErrCantInput  = "Can't build input for the model"
	ErrNoEnergy   = "No energies in model output"
	ErrNoMolecule = "Molecule not in prediction table"
	ErrNoConf     = "Conformer not in prediction table"
	ErrNoFunc     = "No function given"
)
