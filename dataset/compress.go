/*
 * compress.go, part of deltaconf.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rmera/deltaconf"
)

//Compression is the compression of a dataset file.
type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
	LZ4
)

var suffixes = map[Compression]string{Zstd: ".zst", Gzip: ".gz", LZ4: ".lz4"}

func (C Compression) String() string {
	switch C {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case LZ4:
		return "lz4"
	}
	return fmt.Sprintf("Compression(%d)", int(C))
}

//Suffix returns the file name suffix for the compression, or an empty string.
func (C Compression) Suffix() string {
	return suffixes[C]
}

//splitCompression removes the compression suffix, if any, from path.
func splitCompression(path string) (string, Compression) {
	low := strings.ToLower(path)
	for c, s := range suffixes {
		if strings.HasSuffix(low, s) {
			return path[:len(path)-len(s)], c
		}
	}
	return path, None
}

func newReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Gzip:
		return gzip.NewReader(r)
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("dataset: unknown compression %v", c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case Gzip:
		return gzip.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("dataset: unknown compression %v", c)
}

//file is a, possibly compressed, dataset file.
type file struct {
	io.Reader
	io.Writer
	codec io.Closer
	buf   *bufio.Writer
	f     *os.File
}

//Close closes the compression layer, and then the file.
func (F *file) Close() error {
	err := F.codec.Close()
	if F.buf != nil {
		if err2 := F.buf.Flush(); err == nil {
			err = err2
		}
	}
	if err2 := F.f.Close(); err == nil {
		err = err2
	}
	return err
}

//openFile opens path for reading, decompressing it if needed.
//If the file can't be opened, the error is an ErrDatasetNotFound.
func openFile(path string, c Compression) (*file, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, deltaconf.DatasetNotFound(path, err)
	}
	r, err := newReader(bufio.NewReader(f), c)
	if err != nil {
		f.Close()
		return nil, deltaconf.MalformedRecord("", "", "can't read %s data: %w", c, err).SetSource(path)
	}
	return &file{Reader: r, codec: r, f: f}, nil
}

//checkSource returns a DatasetNotFound error if path doesn't exist or is
//not a regular file.
func checkSource(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return deltaconf.DatasetNotFound(path, err)
	}
	if st.IsDir() {
		return deltaconf.DatasetNotFound(path, fmt.Errorf("%s is a directory", path))
	}
	return nil
}

//createFile creates path for writing, compressing the output if needed.
func createFile(path string, c Compression) (*file, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	w, err := newWriter(buf, c)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &file{Writer: w, codec: w, buf: buf, f: f}, nil
}
