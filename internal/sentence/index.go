// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sentence implements the sentence-boundary index: an ordered
// sequence of half-open row ranges partitioning the body table.
package sentence

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Span is a half-open row range [Begin, End) covering one sentence.
type Span struct {
	Begin, End uint32
}

// Len returns the number of rows in the span.
func (s Span) Len() int {
	return int(s.End - s.Begin)
}

// ErrShortIndex is returned when a sentence-index file's size is not a
// multiple of 8 bytes (one (begin, end) uint32 pair per span).
var ErrShortIndex = errors.New("sentence: index file size is not a multiple of 8")

// Writer accumulates spans and flushes them to the sentence-index file in
// the order they are closed.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter creates (truncating) the sentence-index file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one span as two little-endian uint32 words.
func (w *Writer) Write(s Span) error {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], s.Begin)
	binary.LittleEndian.PutUint32(buf[4:8], s.End)
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

// Load reads the full sentence index from path.
func Load(path string) ([]Span, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("sentence: %s: %w", path, ErrShortIndex)
	}
	spans := make([]Span, len(b)/8)
	for i := range spans {
		off := i * 8
		spans[i] = Span{
			Begin: binary.LittleEndian.Uint32(b[off : off+4]),
			End:   binary.LittleEndian.Uint32(b[off+4 : off+8]),
		}
	}
	return spans, nil
}
