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

package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/deltaconf"
	v3 "github.com/rmera/deltaconf/v3"
)

//An easily JSON-serializable error type, which a model program can send
//instead of a Response.
type Error struct {
	deco      []string
	IsError   bool //If this is false (no error) all the other fields will be at their zero-values.
	InInput   bool //If error, was it in reading the request?
	InModel   bool //Was it in computing the energies?
	InOutput  bool //was it in preparing the output?
	Molecule  string
	Conformer int //Which conformer, -1 if not known.
	Function  string //which function gave the error
	Message   string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	var b strings.Builder
	b.WriteString("model error")
	if J.Molecule != "" {
		fmt.Fprintf(&b, " in molecule %q", J.Molecule)
	}
	if J.Conformer >= 0 && J.InModel {
		fmt.Fprintf(&b, ", conformer %d", J.Conformer)
	}
	if J.Function != "" {
		fmt.Fprintf(&b, " (%s)", J.Function)
	}
	b.WriteString(": ")
	b.WriteString(J.Message)
	return b.String()
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error.
//where can be "input", "output" or anything else, which means the model itself.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	jerr.Conformer = -1
	switch where {
	case "input":
		jerr.InInput = true
	case "output":
		jerr.InOutput = true
	default:
		jerr.InModel = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//Header describes the molecule in a request. It is followed by
//len(Conformers) Coords objects, in the same order as the labels.
type Header struct {
	Molecule   string
	Identifier string
	Species    []int
	Symbols    []string
	Conformers []string
	Atoms      int
}

//A ready-to-serialize container for the coordinates of one conformer, in Angstrom.
type Coords struct {
	Coords []float64
}

//Response is what a model sends back: one energy (Hartree) per conformer,
//in the order of the request.
type Response struct {
	Molecule string
	Version  string
	Energies []float64
}

//Send Marshals the response and writes to out, returns an error or nil
func (J *Response) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("output", "Response.Send", err)
	}
	return nil
}

//SendBatch encodes the batch B and writes it to out, one JSON object per line.
func SendBatch(B *deltaconf.Batch, out io.Writer) *Error {
	const funcname = "SendBatch"
	_, natoms, _ := B.Shape()
	h := &Header{
		Molecule:   B.Molecule(),
		Identifier: B.Identifier(),
		Species:    B.Species(),
		Symbols:    deltaconf.Symbols(B.Species()),
		Conformers: B.Labels(),
		Atoms:      natoms,
	}
	enc := json.NewEncoder(out)
	if err := enc.Encode(h); err != nil {
		return NewError("input", funcname, err)
	}
	c := new(Coords)
	for i := 0; i < B.Len(); i++ {
		c.Coords = B.Frame(i).Flat(c.Coords)
		if err := enc.Encode(c); err != nil {
			return NewError("input", funcname, fmt.Errorf("conformer %d: %w", i, err))
		}
	}
	return nil
}

//DecodeBatch reads a request sent by SendBatch. It returns the header and the
//coordinates of each conformer. It is meant for model programs written in Go.
func DecodeBatch(stream *bufio.Reader) (*Header, []*v3.Matrix, *Error) {
	const funcname = "DecodeBatch"
	line, err := stream.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return nil, nil, NewError("input", funcname, err)
	}
	h := new(Header)
	if err := json.Unmarshal(line, h); err != nil {
		return nil, nil, NewError("input", funcname, err)
	}
	if h.Atoms != len(h.Species) {
		return nil, nil, NewError("input", funcname, fmt.Errorf("header has %d atoms and %d species", h.Atoms, len(h.Species)))
	}
	coordset := make([]*v3.Matrix, 0, len(h.Conformers))
	for i := range h.Conformers {
		coords, jerr := DecodeCoords(stream, h.Atoms)
		if jerr != nil {
			jerr.Molecule = h.Molecule
			jerr.Message = fmt.Sprintf("Error reading the %d th conformer: %s", i+1, jerr.Message)
			jerr.Decorate(funcname)
			return h, coordset, jerr
		}
		coordset = append(coordset, coords)
	}
	return h, coordset, nil
}

//DecodeCoords decodes one line from a bufio.Reader containing 3*atomnumber JSON
//floats into a v3.Matrix with atomnumber rows.
func DecodeCoords(stream *bufio.Reader, atomnumber int) (*v3.Matrix, *Error) {
	const funcname = "DecodeCoords"
	line, err := stream.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return nil, NewError("input", funcname, err)
	}
	ctemp := new(Coords)
	if err = json.Unmarshal(line, ctemp); err != nil {
		return nil, NewError("input", funcname, err)
	}
	if len(ctemp.Coords) != 3*atomnumber {
		return nil, NewError("input", funcname, fmt.Errorf("%d coordinates for %d atoms", len(ctemp.Coords), atomnumber))
	}
	coords, err := v3.NewMatrix(ctemp.Coords)
	if err != nil {
		return nil, NewError("input", funcname, err)
	}
	return coords, nil
}

//DecodeResponse reads the answer of a model program from data. If the model
//sent an Error, it is returned as the error.
func DecodeResponse(data []byte) (*Response, error) {
	data = bytes.TrimSpace(data)
	var probe struct {
		IsError bool
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, NewError("output", "DecodeResponse", err)
	}
	if probe.IsError {
		jerr := new(Error)
		if err := json.Unmarshal(data, jerr); err != nil {
			return nil, NewError("output", "DecodeResponse", err)
		}
		return nil, jerr
	}
	ret := new(Response)
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, NewError("output", "DecodeResponse", err)
	}
	return ret, nil
}
