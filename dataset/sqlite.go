/*
 * sqlite.go, part of deltaconf.
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
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rmera/deltaconf"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

func init() {
	Register("sqlite", sqliteBackend{}, ".sqlite", ".db")
}

//The ord columns keep the order of molecules and conformers.
//Arrays are stored as msgpack blobs. A NULL is a missing attribute.
var sqliteSchema = []string{
	`CREATE TABLE molecules (
	ord     INTEGER PRIMARY KEY,
	id      TEXT NOT NULL,
	inchi   TEXT,
	species BLOB
)`,
	`CREATE TABLE conformers (
	molecule INTEGER NOT NULL REFERENCES molecules(ord),
	ord      INTEGER NOT NULL,
	id       TEXT NOT NULL,
	energy   REAL,
	atxyz    BLOB,
	PRIMARY KEY (molecule, ord)
)`,
}

//sqliteBackend stores a dataset in a SQLite database. It doesn't support compression.
type sqliteBackend struct{}

type sqliteMolecule struct {
	ord     int64
	id      string
	inchi   sql.NullString
	species []byte
}

type sqliteIterator struct {
	ctx  context.Context
	db   *sql.DB
	mols []sqliteMolecule
	next int
}

func (sqliteBackend) Open(ctx context.Context, path string, c Compression) (Iterator, error) {
	if c != None {
		return nil, fmt.Errorf("dataset: sqlite datasets can't be compressed with %s", c)
	}
	//sql.Open would create a missing file.
	if err := checkSource(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, deltaconf.DatasetNotFound(path, err)
	}
	rows, err := db.QueryContext(ctx, "SELECT ord, id, inchi, species FROM molecules ORDER BY ord")
	if err != nil {
		db.Close()
		return nil, deltaconf.MalformedRecord("", "", "not a conformer database: %w", err)
	}
	defer rows.Close()
	I := &sqliteIterator{ctx: ctx, db: db}
	for rows.Next() {
		var m sqliteMolecule
		if err := rows.Scan(&m.ord, &m.id, &m.inchi, &m.species); err != nil {
			db.Close()
			return nil, deltaconf.MalformedRecord("", "", "%w", err)
		}
		I.mols = append(I.mols, m)
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, deltaconf.MalformedRecord("", "", "%w", err)
	}
	return I, nil
}

func (I *sqliteIterator) Next() (*Group, error) {
	if I.next >= len(I.mols) {
		return nil, io.EOF
	}
	m := I.mols[I.next]
	I.next++
	G := &Group{ID: m.id}
	if m.inchi.Valid {
		inchi := m.inchi.String
		G.InChI = &inchi
	}
	if m.species != nil {
		if err := msgpack.Unmarshal(m.species, &G.Species); err != nil {
			return nil, deltaconf.MalformedRecord(m.id, "", "attribute %q: %w", AttrSpecies, err)
		}
	}
	rows, err := I.db.QueryContext(I.ctx, "SELECT id, energy, atxyz FROM conformers WHERE molecule = ? ORDER BY ord", m.ord)
	if err != nil {
		return nil, deltaconf.MalformedRecord(m.id, "", "%w", err)
	}
	defer rows.Close()
	G.Conformers = make(Conformers, 0)
	for rows.Next() {
		var c ConformerGroup
		var energy sql.NullFloat64
		var xyz []byte
		if err := rows.Scan(&c.ID, &energy, &xyz); err != nil {
			return nil, deltaconf.MalformedRecord(m.id, "", "%w", err)
		}
		if energy.Valid {
			e := energy.Float64
			c.Energy = &e
		}
		if xyz != nil {
			if err := msgpack.Unmarshal(xyz, &c.XYZ); err != nil {
				return nil, deltaconf.MalformedRecord(m.id, c.ID, "attribute %q: %w", AttrXYZ, err)
			}
		}
		G.Conformers = append(G.Conformers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, deltaconf.MalformedRecord(m.id, "", "%w", err)
	}
	return G, nil
}

func (I *sqliteIterator) Close() error {
	return I.db.Close()
}

func (sqliteBackend) Write(ctx context.Context, path string, c Compression, groups []*Group) error {
	if c != None {
		return fmt.Errorf("dataset: sqlite datasets can't be compressed with %s", c)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, s := range sqliteSchema {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("dataset: creating tables: %w", err)
		}
	}
	insMol, err := tx.PrepareContext(ctx, "INSERT INTO molecules (ord, id, inchi, species) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insMol.Close()
	insConf, err := tx.PrepareContext(ctx, "INSERT INTO conformers (molecule, ord, id, energy, atxyz) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insConf.Close()
	for i, G := range groups {
		var inchi sql.NullString
		if G.InChI != nil {
			inchi = sql.NullString{String: *G.InChI, Valid: true}
		}
		species, err := blob(G.Species)
		if err != nil {
			return err
		}
		if _, err := insMol.ExecContext(ctx, i, G.ID, inchi, species); err != nil {
			return fmt.Errorf("dataset: molecule %q: %w", G.ID, err)
		}
		for j, cg := range G.Conformers {
			var energy sql.NullFloat64
			if cg.Energy != nil {
				energy = sql.NullFloat64{Float64: *cg.Energy, Valid: true}
			}
			xyz, err := blob(cg.XYZ)
			if err != nil {
				return err
			}
			if _, err := insConf.ExecContext(ctx, i, j, cg.ID, energy, xyz); err != nil {
				return fmt.Errorf("dataset: molecule %q, conformer %q: %w", G.ID, cg.ID, err)
			}
		}
	}
	return tx.Commit()
}

//blob returns v encoded with msgpack, or nil (NULL) for a nil slice.
func blob[T any](v []T) (any, error) {
	if v == nil {
		return nil, nil
	}
	return msgpack.Marshal(v)
}
