/*
 * yaml.go, part of deltaconf.
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
	"gopkg.in/yaml.v3"
)

func init() {
	Register("yaml", yamlBackend{}, ".yaml", ".yml")
}

//yamlBackend stores a dataset as a YAML mapping. The whole document is parsed
//when the dataset is opened, and molecules are decoded one at a time.
type yamlBackend struct{}

type yamlIterator struct {
	pairs []*yaml.Node
	next  int
}

func (yamlBackend) Open(ctx context.Context, path string, c Compression) (Iterator, error) {
	f, err := openFile(path, c)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var doc yaml.Node
	err = yaml.NewDecoder(f).Decode(&doc)
	if errors.Is(err, io.EOF) {
		return &yamlIterator{}, nil
	}
	if err != nil {
		return nil, deltaconf.MalformedRecord("", "", "%w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, deltaconf.MalformedRecord("", "", "top level is not a mapping (line %d)", root.Line)
	}
	return &yamlIterator{pairs: root.Content}, nil
}

func (I *yamlIterator) Next() (*Group, error) {
	if I.next+1 >= len(I.pairs) {
		return nil, io.EOF
	}
	key, val := I.pairs[I.next], I.pairs[I.next+1]
	I.next += 2
	G := &Group{ID: key.Value}
	if err := val.Decode(G); err != nil {
		return nil, inMolecule(err, G.ID)
	}
	return G, nil
}

func (I *yamlIterator) Close() error { return nil }

func (yamlBackend) Write(ctx context.Context, path string, c Compression, groups []*Group) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, G := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		val := new(yaml.Node)
		if err := val.Encode(G); err != nil {
			return err
		}
		root.Content = append(root.Content, stringNode(G.ID), val)
	}
	f, err := createFile(path, c)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	err = enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}})
	if err2 := enc.Close(); err == nil {
		err = err2
	}
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}
