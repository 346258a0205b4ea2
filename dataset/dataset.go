/*
 * dataset.go, part of deltaconf.
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

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rmera/deltaconf"
)

//Names of the attributes in a dataset.
const (
	AttrInChI     = "inchi"
	AttrSpecies   = "species"
	AttrEnergy    = "energy"
	AttrXYZ       = "atXYZ"
	KeyConformers = "conformers"
)

//ConformerGroup is a conformer record as stored in a dataset. A nil Energy or
//XYZ means the attribute is missing.
type ConformerGroup struct {
	ID     string    `json:"-" yaml:"-" msgpack:"-"`
	Energy *float64  `json:"energy,omitempty" yaml:"energy,omitempty" msgpack:"energy"`
	XYZ    []float64 `json:"atXYZ" yaml:"atXYZ,omitempty,flow" msgpack:"atXYZ"`
}

//Group is a molecule record as stored in a dataset. A nil InChI or Species
//means the attribute is missing.
type Group struct {
	ID         string     `json:"-" yaml:"-" msgpack:"-"`
	InChI      *string    `json:"inchi,omitempty" yaml:"inchi,omitempty" msgpack:"inchi"`
	Species    []int      `json:"species" yaml:"species,omitempty,flow" msgpack:"species"`
	Conformers Conformers `json:"conformers" yaml:"conformers" msgpack:"conformers"`
}

//Molecule validates the group and returns the corresponding molecule.
//A missing or badly shaped attribute gives an ErrMalformedRecord error naming
//the molecule and, if applicable, the conformer.
func (G *Group) Molecule() (*deltaconf.Molecule, error) {
	if G.InChI == nil {
		return nil, deltaconf.MalformedRecord(G.ID, "", "attribute %q missing", AttrInChI)
	}
	if G.Species == nil {
		return nil, deltaconf.MalformedRecord(G.ID, "", "attribute %q missing", AttrSpecies)
	}
	confs := make([]*deltaconf.Conformer, 0, len(G.Conformers))
	for _, c := range G.Conformers {
		if c.Energy == nil {
			return nil, deltaconf.MalformedRecord(G.ID, c.ID, "attribute %q missing", AttrEnergy)
		}
		if c.XYZ == nil {
			return nil, deltaconf.MalformedRecord(G.ID, c.ID, "attribute %q missing", AttrXYZ)
		}
		C, err := deltaconf.NewConformerFlat(c.ID, c.XYZ, *c.Energy)
		if err != nil {
			return nil, inMolecule(err, G.ID)
		}
		confs = append(confs, C)
	}
	return deltaconf.NewMolecule(G.ID, *G.InChI, G.Species, confs)
}

//FromMolecule returns the dataset record for M.
func FromMolecule(M *deltaconf.Molecule) *Group {
	inchi := M.Identifier()
	G := &Group{ID: M.Label(), InChI: &inchi, Species: M.Species()}
	G.Conformers = make(Conformers, 0, M.NConformers())
	for _, C := range M.Conformers() {
		e := C.Energy()
		G.Conformers = append(G.Conformers, ConformerGroup{ID: C.Label(), Energy: &e, XYZ: C.Coords().Flat(nil)})
	}
	return G
}

//Iterator returns the groups of a dataset, in order.
type Iterator interface {
	//Next returns the next group, or io.EOF after the last one.
	Next() (*Group, error)
	//Close releases the dataset. It must be called even if Next failed.
	Close() error
}

//Backend stores datasets in one format.
type Backend interface {
	//Open opens the dataset in path. If the path can't be opened, the error is
	//an ErrDatasetNotFound.
	Open(ctx context.Context, path string, c Compression) (Iterator, error)
	//Write writes groups to path, replacing any existing file.
	Write(ctx context.Context, path string, c Compression, groups []*Group) error
}

var registry = struct {
	sync.RWMutex
	backends   map[string]Backend
	extensions map[string]string
}{backends: map[string]Backend{}, extensions: map[string]string{}}

//Register makes the backend b available under the given format name, and for
//files with the given extensions (with the leading dot).
//It panics if the format name is already taken.
func Register(name string, b Backend, extensions ...string) {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.backends[name]; ok {
		panic("dataset: format " + name + " registered twice")
	}
	registry.backends[name] = b
	for _, e := range extensions {
		registry.extensions[strings.ToLower(e)] = name
	}
}

//Formats returns the names of the registered formats, sorted.
func Formats() []string {
	registry.RLock()
	defer registry.RUnlock()
	ret := make([]string, 0, len(registry.backends))
	for k := range registry.backends {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Detect returns the format and compression of the dataset in path, from its
//extensions. If format is not empty, it is used instead of the one in the file name.
func Detect(path, format string) (string, Compression, error) {
	base, c := splitCompression(path)
	if format != "" {
		return format, c, nil
	}
	ext := strings.ToLower(filepath.Ext(base))
	registry.RLock()
	name, ok := registry.extensions[ext]
	registry.RUnlock()
	if !ok {
		return "", c, fmt.Errorf("dataset: can't tell the format of %s, known formats: %s", path, strings.Join(Formats(), ", "))
	}
	return name, c, nil
}

func backend(path, format string) (Backend, Compression, error) {
	name, c, err := Detect(path, format)
	if err != nil {
		return nil, c, err
	}
	registry.RLock()
	b, ok := registry.backends[name]
	registry.RUnlock()
	if !ok {
		return nil, c, fmt.Errorf("dataset: unknown format %q, known formats: %s", name, strings.Join(Formats(), ", "))
	}
	return b, c, nil
}

type options struct {
	format string
	limit  int
}

//Option modifies the behaviour of Read and Write.
type Option func(*options)

//WithFormat sets the format of the dataset, instead of guessing it from the file name.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(format)
	}
}

//WithLimit makes Read stop after n molecules. n<=0 means no limit.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, f := range opts {
		f(&o)
	}
	return o
}

//Read returns the molecules in the dataset at path, in dataset order.
//All molecules are validated, and the first bad record stops the reading.
func Read(ctx context.Context, path string, opts ...Option) ([]*deltaconf.Molecule, error) {
	o := newOptions(opts)
	if err := checkSource(path); err != nil {
		return nil, deltaconf.ErrDecorate(err, "dataset.Read")
	}
	b, c, err := backend(path, o.format)
	if err != nil {
		return nil, err
	}
	it, err := b.Open(ctx, path, c)
	if err != nil {
		return nil, deltaconf.ErrDecorate(inSource(err, path), "dataset.Read")
	}
	defer it.Close()
	var mols []*deltaconf.Molecule
	seen := make(map[string]bool)
	for o.limit <= 0 || len(mols) < o.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		G, err := it.Next()
		//Only a bare io.EOF ends the dataset. A wrapped one is a truncated record.
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, deltaconf.ErrDecorate(inSource(err, path), "dataset.Read")
		}
		if seen[G.ID] {
			return nil, deltaconf.ErrDecorate(deltaconf.MalformedRecord(G.ID, "", "repeated molecule id").SetSource(path), "dataset.Read")
		}
		seen[G.ID] = true
		M, err := G.Molecule()
		if err != nil {
			return nil, deltaconf.ErrDecorate(inSource(err, path), "dataset.Read")
		}
		mols = append(mols, M)
	}
	return mols, nil
}

//Write writes mols to path, in order, replacing any existing file.
func Write(ctx context.Context, path string, mols []*deltaconf.Molecule, opts ...Option) error {
	o := newOptions(opts)
	b, c, err := backend(path, o.format)
	if err != nil {
		return err
	}
	groups := make([]*Group, 0, len(mols))
	for _, M := range mols {
		groups = append(groups, FromMolecule(M))
	}
	if err := b.Write(ctx, path, c, groups); err != nil {
		return deltaconf.ErrDecorate(err, "dataset.Write")
	}
	return nil
}

//truncated turns an end of file found in the middle of a record into
//io.ErrUnexpectedEOF. Errors that already name a record are kept.
func truncated(err error) error {
	var e *deltaconf.Error
	if errors.Is(err, io.EOF) && !errors.As(err, &e) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func inSource(err error, path string) error {
	var e *deltaconf.Error
	if errors.As(err, &e) {
		e.SetSource(path)
	}
	return err
}

//inMolecule sets the molecule of err, or turns err into a malformed
//record error for the molecule.
func inMolecule(err error, id string) error {
	var e *deltaconf.Error
	if errors.As(err, &e) {
		e.SetMolecule(id)
		return err
	}
	return deltaconf.MalformedRecord(id, "", "%w", err)
}
