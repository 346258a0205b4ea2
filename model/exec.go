/*
 * exec.go, part of deltaconf.
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
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rmera/deltaconf"
	"github.com/rmera/deltaconf/chemjson"
)

//Input formats for ExecHandle.
const (
	InputJSON = "json"
	InputXYZ  = "xyz"
)

//ExecHandle runs an external program once per molecule. The program gets the
//path of an input file with all the conformers of the molecule as its last
//argument, and must write the energies (Hartree), one per conformer in input
//order, to its standard output, either as a chemjson Response or as numbers
//separated by white space.
//Each call uses its own temporary directory, so calls can run in parallel.
type ExecHandle struct {
	command string
	args    []string
	input   string
	workdir string
	keep    bool
	version string
	vonce   sync.Once
}

//NewExecHandle returns a handle for the given command and arguments, with default settings.
func NewExecHandle(command string, args ...string) *ExecHandle {
	run := new(ExecHandle)
	run.SetDefaults()
	run.SetCommand(command, args...)
	return run
}

//ExecHandle methods

//SetDefaults sets chemjson input, and temporary directories in the default place.
func (O *ExecHandle) SetDefaults() {
	O.input = InputJSON
	O.workdir = ""
	O.keep = false
}

func (O *ExecHandle) Command() string {
	return O.command
}

//SetCommand sets the program to run, and the arguments that go before the input file.
func (O *ExecHandle) SetCommand(name string, args ...string) {
	O.command = os.ExpandEnv(name)
	O.args = append([]string(nil), args...)
}

//SetInputFormat sets the format of the input file, "json" (chemjson) or "xyz" (multi-XYZ).
func (O *ExecHandle) SetInputFormat(format string) error {
	switch strings.ToLower(format) {
	case InputJSON, "":
		O.input = InputJSON
	case InputXYZ:
		O.input = InputXYZ
	default:
		return &Error{message: ErrCantInput, command: O.command, additional: fmt.Sprintf("unknown input format %q", format), deco: []string{"SetInputFormat"}, critical: true}
	}
	return nil
}

//SetVersion sets the version of the model. If it is not set, it is obtained
//by running the program with the argument --version.
func (O *ExecHandle) SetVersion(version string) {
	O.version = version
}

//SetWorkDir sets the directory where the temporary directories for each call are created.
//An empty string means the default directory for temporary files.
func (O *ExecHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

//KeepFiles makes the handle keep the input files of each call.
func (O *ExecHandle) KeepFiles(keep bool) {
	O.keep = keep
}

//Reentrant returns true, as each call runs in its own directory.
func (O *ExecHandle) Reentrant() bool { return true }

//Version returns the version of the model.
func (O *ExecHandle) Version() string {
	O.vonce.Do(func() {
		if O.version != "" {
			return
		}
		O.version = "unknown"
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		args := append(append([]string(nil), O.args...), "--version")
		out, err := exec.CommandContext(ctx, O.command, args...).Output()
		if err != nil {
			return
		}
		if v, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n"); v != "" {
			O.version = strings.TrimSpace(v)
		}
	})
	return O.version
}

//BuildInput writes the input for the batch B in the directory dir, and returns its path.
func (O *ExecHandle) BuildInput(B *deltaconf.Batch, dir string) (string, error) {
	name := filepath.Join(dir, "conformers."+O.input)
	f, err := os.Create(name)
	if err != nil {
		return "", &Error{message: ErrCantInput, command: O.command, molecule: B.Molecule(), cause: err, deco: []string{"os.Create", "BuildInput"}, critical: true}
	}
	defer f.Close()
	if O.input == InputXYZ {
		err = deltaconf.WriteBatchXYZ(f, B)
	} else if jerr := chemjson.SendBatch(B, f); jerr != nil {
		err = jerr
	}
	if err == nil {
		err = f.Close()
	}
	if err != nil {
		return "", &Error{message: ErrCantInput, command: O.command, molecule: B.Molecule(), cause: err, deco: []string{"BuildInput"}, critical: true}
	}
	return name, nil
}

//Predict runs the program for the batch B, and returns the energies it prints.
//The program is killed if ctx is done.
func (O *ExecHandle) Predict(ctx context.Context, B *deltaconf.Batch) ([]float64, error) {
	dir, err := os.MkdirTemp(O.workdir, "deltaconf-")
	if err != nil {
		return nil, &Error{message: ErrCantInput, command: O.command, molecule: B.Molecule(), cause: err, deco: []string{"os.MkdirTemp", "Predict"}, critical: true}
	}
	if !O.keep {
		defer os.RemoveAll(dir)
	}
	input, err := O.BuildInput(B, dir)
	if err != nil {
		return nil, err
	}
	args := append(append([]string(nil), O.args...), input)
	command := exec.CommandContext(ctx, O.command, args...)
	command.Dir = dir
	command.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, &Error{message: ErrNotRunning, command: O.command, molecule: B.Molecule(), additional: lastLine(stderr.String()), cause: err, deco: []string{"exec.Run", "Predict"}, critical: true}
	}
	energies, err := ParseEnergies(stdout.Bytes())
	if err != nil {
		return nil, &Error{message: ErrNoEnergy, command: O.command, molecule: B.Molecule(), cause: err, deco: []string{"ParseEnergies", "Predict"}, critical: true}
	}
	return energies, nil
}

//ParseEnergies reads energies from the output of a model program. The output is
//either a chemjson Response or Error, or numbers separated by white space.
func ParseEnergies(out []byte) ([]float64, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("empty output")
	}
	if out[0] == '{' {
		r, err := chemjson.DecodeResponse(out)
		if err != nil {
			return nil, err
		}
		return r.Energies, nil
	}
	fields := strings.Fields(string(out))
	energies := make([]float64, 0, len(fields))
	for _, v := range fields {
		e, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		energies = append(energies, e)
	}
	return energies, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
