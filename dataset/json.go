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

package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rmera/deltaconf"
)

func init() {
	Register("json", jsonBackend{}, ".json")
}

//jsonBackend stores a dataset as one JSON object. Molecules are read one at a time.
type jsonBackend struct{}

type jsonIterator struct {
	f    *file
	dec  *json.Decoder
	done bool
}

func (jsonBackend) Open(ctx context.Context, path string, c Compression) (Iterator, error) {
	f, err := openFile(path, c)
	if err != nil {
		return nil, err
	}
	I := &jsonIterator{f: f, dec: json.NewDecoder(f)}
	tok, err := I.dec.Token()
	if errors.Is(err, io.EOF) {
		I.done = true //empty file, empty dataset.
		return I, nil
	}
	if err == nil && tok != json.Delim('{') {
		err = fmt.Errorf("top level is %v, not a JSON object", tok)
	}
	if err != nil {
		f.Close()
		return nil, deltaconf.MalformedRecord("", "", "%w", err)
	}
	return I, nil
}

func (I *jsonIterator) Next() (*Group, error) {
	if I.done {
		return nil, io.EOF
	}
	if !I.dec.More() {
		I.done = true
		if _, err := I.dec.Token(); err != nil {
			return nil, deltaconf.MalformedRecord("", "", "%w", truncated(err))
		}
		if I.dec.More() {
			return nil, deltaconf.MalformedRecord("", "", "data after the end of the dataset")
		}
		return nil, io.EOF
	}
	tok, err := I.dec.Token()
	if err != nil {
		return nil, deltaconf.MalformedRecord("", "", "%w", truncated(err))
	}
	id, _ := tok.(string)
	G := &Group{ID: id}
	if err := I.dec.Decode(G); err != nil {
		return nil, inMolecule(truncated(err), id)
	}
	return G, nil
}

func (I *jsonIterator) Close() error {
	return I.f.Close()
}

func (jsonBackend) Write(ctx context.Context, path string, c Compression, groups []*Group) error {
	f, err := createFile(path, c)
	if err != nil {
		return err
	}
	err = writeJSON(ctx, f, groups)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}

//writeJSON writes one molecule per line, so big datasets stay readable.
func writeJSON(ctx context.Context, w io.Writer, groups []*Group) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, G := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		key, err := json.Marshal(G.ID)
		if err != nil {
			return err
		}
		val, err := json.Marshal(G)
		if err != nil {
			return fmt.Errorf("dataset: molecule %q: %w", G.ID, err)
		}
		sep := "\n"
		if i > 0 {
			sep = ",\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s: %s", sep, key, val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n}\n")
	return err
}
