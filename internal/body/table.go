// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package body implements the columnar body table: COLS memory-mapped
// arrays of Feature IDs, one entry per corpus row.
package body

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/kortschak/mgrep/internal/feature"
)

// ErrColumnLengthMismatch is returned when a workspace's body column files
// do not all contain the same number of rows.
var ErrColumnLengthMismatch = errors.New("body: column files have unequal length")

// ErrShortFile is returned when a body file's size is not a multiple of 4
// bytes (one uint32 word per row).
var ErrShortFile = errors.New("body: file size is not a multiple of 4")

// Table is a row-major matrix of Feature IDs, feature.Cols columns wide,
// backed by feature.Cols memory-mapped files. Each column is decoded once,
// at Open, into its own []uint32; column slices are not views into the
// mapped bytes.
type Table struct {
	columns [feature.Cols][]uint32
	mapped  [feature.Cols]mmap.MMap
	n       int
}

// Open memory-maps the feature.Cols body column files named path(0)..
// path(feature.Cols-1) and returns a Table over them. All columns must
// contain the same number of rows or Open returns ErrColumnLengthMismatch.
func Open(path func(column int) string) (*Table, error) {
	t := &Table{}
	for c := 0; c < feature.Cols; c++ {
		f, err := os.Open(path(c))
		if err != nil {
			t.Close()
			return nil, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			t.Close()
			return nil, err
		}
		size := info.Size()
		if size%4 != 0 {
			f.Close()
			t.Close()
			return nil, fmt.Errorf("body: %s: %w", path(c), ErrShortFile)
		}
		n := int(size / 4)
		if c == 0 {
			t.n = n
		} else if n != t.n {
			f.Close()
			t.Close()
			return nil, fmt.Errorf("body: %s: %w", path(c), ErrColumnLengthMismatch)
		}

		var m mmap.MMap
		if size > 0 {
			m, err = mmap.Map(f, mmap.RDONLY, 0)
			if err != nil {
				f.Close()
				t.Close()
				return nil, fmt.Errorf("body: mmap %s: %w", path(c), err)
			}
		}
		f.Close()

		t.mapped[c] = m
		t.columns[c] = decodeColumn(m, n)
	}
	return t, nil
}

// decodeColumn explicitly little-endian decodes a memory-mapped byte slice
// into a newly allocated []uint32 holding a copy of the column's IDs; the
// spec (§9) requires an explicit decode rather than an unsafe pointer
// reinterpretation of the mapped bytes.
func decodeColumn(m []byte, n int) []uint32 {
	col := make([]uint32, n)
	for i := 0; i < n; i++ {
		col[i] = binary.LittleEndian.Uint32(m[i*4 : i*4+4])
	}
	return col
}

// Len returns the number of rows (N in spec terms).
func (t *Table) Len() int {
	return t.n
}

// At returns the Feature ID at (column, row).
func (t *Table) At(column, row int) uint32 {
	return t.columns[column][row]
}

// Column returns the full column slice for column c.
func (t *Table) Column(c int) []uint32 {
	return t.columns[c]
}

// Slice returns the [begin, end) row range of every column, without
// copying.
func (t *Table) Slice(begin, end int) [feature.Cols][]uint32 {
	var out [feature.Cols][]uint32
	for c := range t.columns {
		out[c] = t.columns[c][begin:end]
	}
	return out
}

// Close unmaps every column file. Slices returned by Column and Slice hold
// decoded copies, so they do not refer to the unmapped bytes.
func (t *Table) Close() error {
	var first error
	for c := range t.mapped {
		if t.mapped[c] == nil {
			continue
		}
		if err := t.mapped[c].Unmap(); err != nil && first == nil {
			first = err
		}
		t.mapped[c] = nil
	}
	return first
}

// Writer writes a body column file a row at a time, used by the indexer.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter creates (truncating) the body column file at path for writing.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteID appends id as 4 little-endian bytes.
func (w *Writer) WriteID(id uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], id)
	_, err := w.w.Write(buf[:])
	return err
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
