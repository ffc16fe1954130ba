// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package feature implements the per-column feature dictionary: a
// bidirectional map between a column's feature byte-strings and the
// 32-bit Feature IDs assigned to them during indexing.
package feature

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Cols is the fixed number of feature columns in a corpus row.
const Cols = 10

// Reserved is the column-0 delimiter table. Reserved[i] is pre-seeded at
// Feature ID i for every i in range; any row whose column-0 ID falls in
// this range closes a sentence.
var Reserved = []string{
	"",  // 0
	"。", // 1
	"◇", // 2
	"◆", // 3
	"▽", // 4
	"▼", // 5
	"△", // 6
	"▲", // 7
	"□", // 8
	"■", // 9
	"○", // 10
	"●", // 11
	"EOS",
}

// MaxDelimiterID is the largest Feature ID in the reserved column-0 range.
const MaxDelimiterID = 12

// ErrTooLong is returned by Insert when a feature string is longer than 255
// bytes: the on-disk format has a single-byte length prefix per entry.
var ErrTooLong = errors.New("feature: entry longer than 255 bytes")

// ErrFormat is returned when a dictionary file's length prefix is
// inconsistent with the file's actual size.
var ErrFormat = errors.New("feature: malformed dictionary file")

// Dictionary is a per-column bidirectional feature-string/Feature-ID map.
// Insertion order is preserved: Feature ID i always refers to entries[i].
type Dictionary struct {
	entries [][]byte
	index   map[string]uint32

	// backing is non-nil when the dictionary was opened read-only over a
	// memory-mapped file; it must outlive every entry slice handed out by
	// Decode.
	backing mmap.MMap
}

// New returns an empty, writable Dictionary.
func New() *Dictionary {
	return &Dictionary{index: make(map[string]uint32)}
}

// NewColumn0 returns a Dictionary pre-seeded with the reserved
// sentence-delimiter table at IDs 0..=MaxDelimiterID, in Reserved's order.
func NewColumn0() *Dictionary {
	d := New()
	for _, r := range Reserved {
		if _, err := d.Insert([]byte(r)); err != nil {
			// Reserved entries are all short ASCII/UTF-8 literals; this
			// can never fail.
			panic(fmt.Sprintf("feature: reserved entry rejected: %v", err))
		}
	}
	return d
}

// Insert returns feat's Feature ID, assigning it the next sequential ID if
// it has not been seen before. It returns ErrTooLong if feat is longer than
// 255 bytes.
func (d *Dictionary) Insert(feat []byte) (uint32, error) {
	if len(feat) > 255 {
		return 0, ErrTooLong
	}
	if id, ok := d.index[string(feat)]; ok {
		return id, nil
	}
	id := uint32(len(d.entries))
	cp := make([]byte, len(feat))
	copy(cp, feat)
	d.entries = append(d.entries, cp)
	d.index[string(cp)] = id
	return id, nil
}

// ID returns feat's Feature ID and true if feat is present in the
// dictionary.
func (d *Dictionary) ID(feat []byte) (uint32, bool) {
	id, ok := d.index[string(feat)]
	return id, ok
}

// Decode returns the feature string for id. It panics if id is out of
// range; callers must check Len first.
func (d *Dictionary) Decode(id uint32) []byte {
	return d.entries[id]
}

// Len returns the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Save writes the dictionary to path in the on-disk format described in
// spec §6:
//
//	offset 0:    uint32-LE K        number of entries
//	offset 4:    uint8[K]  lengths  length in bytes of each entry
//	offset 4+K:  byte[...]          entries concatenated in ID order
func (d *Dictionary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(d.entries)))
	if _, err := f.Write(hdr[:]); err != nil {
		return err
	}

	lengths := make([]byte, len(d.entries))
	for i, e := range d.entries {
		lengths[i] = byte(len(e))
	}
	if _, err := f.Write(lengths); err != nil {
		return err
	}

	for _, e := range d.entries {
		if _, err := f.Write(e); err != nil {
			return err
		}
	}
	return f.Sync()
}

// Open memory-maps the dictionary file at path read-only and returns a
// Dictionary whose entries are zero-copy views into the mapped bytes. The
// returned Dictionary must be closed with Close before the file is removed
// or the workspace is released.
func Open(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < 4 {
		return nil, fmt.Errorf("feature: %s: %w", path, ErrFormat)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("feature: mmap %s: %w", path, err)
	}

	k := binary.LittleEndian.Uint32(m[0:4])
	lengthsEnd := 4 + int(k)
	if int64(lengthsEnd) > int64(len(m)) {
		m.Unmap()
		return nil, fmt.Errorf("feature: %s: %w", path, ErrFormat)
	}
	lengths := m[4:lengthsEnd]

	entries := make([][]byte, k)
	index := make(map[string]uint32, k)
	off := lengthsEnd
	for i := uint32(0); i < k; i++ {
		n := int(lengths[i])
		if off+n > len(m) {
			m.Unmap()
			return nil, fmt.Errorf("feature: %s: %w", path, ErrFormat)
		}
		e := m[off : off+n]
		entries[i] = e
		index[string(e)] = i
		off += n
	}
	if off != len(m) {
		m.Unmap()
		return nil, fmt.Errorf("feature: %s: %w", path, ErrFormat)
	}

	return &Dictionary{entries: entries, index: index, backing: m}, nil
}

// Close unmaps the dictionary's backing file, if any. Every []byte returned
// by Decode becomes invalid once Close returns.
func (d *Dictionary) Close() error {
	if d.backing == nil {
		return nil
	}
	err := d.backing.Unmap()
	d.backing = nil
	return err
}
