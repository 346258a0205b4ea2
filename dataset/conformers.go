/*
 * conformers.go, part of deltaconf.
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
	"bytes"
	"encoding/json"

	"github.com/rmera/deltaconf"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

//Conformers is the ordered mapping of conformer ids to conformer records.
//It is encoded as a mapping which keeps the order of the conformers in all
//the tree formats, since the first conformer is the reference of its molecule.
type Conformers []ConformerGroup

//MarshalJSON encodes the conformers as a JSON object, in order.
func (C Conformers) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, c := range C {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(c.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

//UnmarshalJSON decodes a JSON object of conformers, keeping the order of the keys.
func (C *Conformers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*C = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return deltaconf.MalformedRecord("", "", "%q is not a mapping", KeyConformers)
	}
	ret := make(Conformers, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, _ := tok.(string)
		var c ConformerGroup
		if err := dec.Decode(&c); err != nil {
			return deltaconf.MalformedRecord("", id, "%w", err)
		}
		c.ID = id
		ret = append(ret, c)
	}
	*C = ret
	return nil
}

//MarshalYAML returns a mapping node with the conformers, in order.
func (C Conformers) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range C {
		val := new(yaml.Node)
		if err := val.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, stringNode(c.ID), val)
	}
	return node, nil
}

//UnmarshalYAML decodes a mapping node of conformers, keeping the order of the keys.
func (C *Conformers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*C = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return deltaconf.MalformedRecord("", "", "%q is not a mapping (line %d)", KeyConformers, node.Line)
	}
	ret := make(Conformers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		var c ConformerGroup
		if err := node.Content[i+1].Decode(&c); err != nil {
			return deltaconf.MalformedRecord("", id, "%w", err)
		}
		c.ID = id
		ret = append(ret, c)
	}
	*C = ret
	return nil
}

//EncodeMsgpack encodes the conformers as a msgpack map, in order.
func (C Conformers) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(C)); err != nil {
		return err
	}
	for _, c := range C {
		if err := enc.EncodeString(c.ID); err != nil {
			return err
		}
		if err := enc.Encode(&c); err != nil {
			return err
		}
	}
	return nil
}

//DecodeMsgpack decodes a msgpack map of conformers, keeping the order of the keys.
func (C *Conformers) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return deltaconf.MalformedRecord("", "", "%q is not a mapping: %w", KeyConformers, err)
	}
	if n < 0 {
		*C = nil
		return nil
	}
	ret := make(Conformers, 0, n)
	for i := 0; i < n; i++ {
		id, err := dec.DecodeString()
		if err != nil {
			return deltaconf.MalformedRecord("", "", "conformer %d: bad id: %w", i, err)
		}
		var c ConformerGroup
		if err := dec.Decode(&c); err != nil {
			return deltaconf.MalformedRecord("", id, "%w", err)
		}
		c.ID = id
		ret = append(ret, c)
	}
	*C = ret
	return nil
}

//stringNode returns a scalar node that is always read back as a string.
func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
