// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"path/filepath"
	"testing"

	"github.com/kortschak/mgrep/internal/feature"
)

func writeColumns(t *testing.T, dir string, rows [][feature.Cols]uint32) func(int) string {
	t.Helper()
	path := func(c int) string { return filepath.Join(dir, "body_"+string(rune('0'+c))+".bin") }

	var writers [feature.Cols]*Writer
	for c := 0; c < feature.Cols; c++ {
		w, err := NewWriter(path(c))
		if err != nil {
			t.Fatalf("NewWriter(%d): %v", c, err)
		}
		writers[c] = w
	}
	for _, row := range rows {
		for c := 0; c < feature.Cols; c++ {
			if err := writers[c].WriteID(row[c]); err != nil {
				t.Fatalf("WriteID: %v", err)
			}
		}
	}
	for c := 0; c < feature.Cols; c++ {
		if err := writers[c].Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	return path
}

func TestOpenAndSlice(t *testing.T) {
	dir := t.TempDir()
	rows := [][feature.Cols]uint32{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
		{20, 21, 22, 23, 24, 25, 26, 27, 28, 29},
	}
	path := writeColumns(t, dir, rows)

	bt, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer bt.Close()

	if bt.Len() != len(rows) {
		t.Fatalf("Len() = %d, want %d", bt.Len(), len(rows))
	}
	for r, row := range rows {
		for c := 0; c < feature.Cols; c++ {
			if got := bt.At(c, r); got != row[c] {
				t.Errorf("At(%d, %d) = %d, want %d", c, r, got, row[c])
			}
		}
	}

	sl := bt.Slice(1, 3)
	for c := 0; c < feature.Cols; c++ {
		if len(sl[c]) != 2 {
			t.Fatalf("Slice column %d length = %d, want 2", c, len(sl[c]))
		}
		if sl[c][0] != rows[1][c] || sl[c][1] != rows[2][c] {
			t.Errorf("Slice column %d = %v, want [%d %d]", c, sl[c], rows[1][c], rows[2][c])
		}
	}
}

func TestOpenRejectsUnequalColumnLengths(t *testing.T) {
	dir := t.TempDir()
	path := func(c int) string { return filepath.Join(dir, "body_"+string(rune('0'+c))+".bin") }

	w0, err := NewWriter(path(0))
	if err != nil {
		t.Fatal(err)
	}
	w0.WriteID(1)
	w0.WriteID(2)
	w0.Close()

	for c := 1; c < feature.Cols; c++ {
		w, err := NewWriter(path(c))
		if err != nil {
			t.Fatal(err)
		}
		w.WriteID(1)
		w.Close()
	}

	_, err = Open(path)
	if err == nil {
		t.Error("Open with unequal column lengths succeeded, want error")
	}
}
