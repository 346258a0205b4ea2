/*
 * msgpack.go, part of deltaconf.
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
	"io"

	"github.com/rmera/deltaconf"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	Register("msgpack", msgpackBackend{}, ".msgpack", ".mpk")
}

//msgpackBackend stores a dataset as one msgpack map. Molecules are read one at a time.
type msgpackBackend struct{}

type msgpackIterator struct {
	f    *file
	dec  *msgpack.Decoder
	n    int
	next int
}

func (msgpackBackend) Open(ctx context.Context, path string, c Compression) (Iterator, error) {
	f, err := openFile(path, c)
	if err != nil {
		return nil, err
	}
	I := &msgpackIterator{f: f, dec: msgpack.NewDecoder(f)}
	I.n, err = I.dec.DecodeMapLen()
	if errors.Is(err, io.EOF) {
		I.n = 0 //empty file, empty dataset.
		return I, nil
	}
	if err != nil {
		f.Close()
		return nil, deltaconf.MalformedRecord("", "", "top level is not a map: %w", err)
	}
	return I, nil
}

func (I *msgpackIterator) Next() (*Group, error) {
	if I.next >= I.n {
		return nil, io.EOF
	}
	I.next++
	id, err := I.dec.DecodeString()
	if err != nil {
		return nil, deltaconf.MalformedRecord("", "", "molecule %d of %d: bad id: %w", I.next, I.n, truncated(err))
	}
	G := &Group{ID: id}
	if err := I.dec.Decode(G); err != nil {
		return nil, inMolecule(truncated(err), id)
	}
	return G, nil
}

func (I *msgpackIterator) Close() error {
	return I.f.Close()
}

func (msgpackBackend) Write(ctx context.Context, path string, c Compression, groups []*Group) error {
	f, err := createFile(path, c)
	if err != nil {
		return err
	}
	err = writeMsgpack(ctx, msgpack.NewEncoder(f), groups)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}

func writeMsgpack(ctx context.Context, enc *msgpack.Encoder, groups []*Group) error {
	if err := enc.EncodeMapLen(len(groups)); err != nil {
		return err
	}
	for _, G := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.EncodeString(G.ID); err != nil {
			return err
		}
		if err := enc.Encode(G); err != nil {
			return err
		}
	}
	return nil
}
