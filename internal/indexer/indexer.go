// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package indexer streams a tokenizer's CSV output into a workspace's
// on-disk body, dictionary and sentence-index files.
package indexer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kortschak/mgrep/internal/body"
	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/sentence"
)

// Paths describes where the indexer should write its output files. It is
// satisfied by *workspace.Workspace.
type Paths interface {
	BodyPath(column int) string
	FeaturesPath(column int) string
	SentenceIndexPath() string
}

// Indexer builds a workspace's index from a source CSV.
type Indexer struct {
	paths Paths
}

// New returns an Indexer that writes into paths.
func New(paths Paths) *Indexer {
	return &Indexer{paths: paths}
}

// Execute streams sourcePath a line at a time, assigning Feature IDs in
// first-appearance order per column, and writes the body files, dictionary
// files and sentence index described in spec §4.1/§6.
//
// Any I/O error aborts the build; files already written are left in place.
func (ix *Indexer) Execute(sourcePath string) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	var dicts [feature.Cols]*feature.Dictionary
	dicts[0] = feature.NewColumn0()
	for c := 1; c < feature.Cols; c++ {
		dicts[c] = feature.New()
	}

	var writers [feature.Cols]*body.Writer
	for c := 0; c < feature.Cols; c++ {
		w, err := body.NewWriter(ix.paths.BodyPath(c))
		if err != nil {
			closeWriters(writers[:c])
			return err
		}
		writers[c] = w
	}

	sentWriter, err := sentence.NewWriter(ix.paths.SentenceIndexPath())
	if err != nil {
		closeWriters(writers[:])
		return err
	}

	var fields [feature.Cols][]byte
	var sentenceHead uint32
	var rowID uint32

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		n := splitFields(line, fields[:])
		var col0ID uint32
		for c := 0; c < feature.Cols; c++ {
			var f []byte
			if c < n {
				f = fields[c]
			}
			id, err := dicts[c].Insert(f)
			if err != nil {
				closeAll(writers[:], sentWriter)
				return fmt.Errorf("indexer: row %d, column %d: %w", rowID, c, err)
			}
			if c == 0 {
				col0ID = id
			}
			if err := writers[c].WriteID(id); err != nil {
				closeAll(writers[:], sentWriter)
				return err
			}
		}

		if col0ID <= feature.MaxDelimiterID {
			if err := sentWriter.Write(sentence.Span{Begin: sentenceHead, End: rowID + 1}); err != nil {
				closeAll(writers[:], sentWriter)
				return err
			}
			sentenceHead = rowID + 1
		}

		rowID++
	}
	if err := sc.Err(); err != nil {
		closeAll(writers[:], sentWriter)
		return fmt.Errorf("indexer: reading %s: %w", sourcePath, err)
	}

	var closeErr error
	for _, w := range writers {
		if err := w.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	if err := sentWriter.Close(); err != nil && closeErr == nil {
		closeErr = err
	}
	if closeErr != nil {
		return closeErr
	}

	for c := 0; c < feature.Cols; c++ {
		if err := dicts[c].Save(ix.paths.FeaturesPath(c)); err != nil {
			return fmt.Errorf("indexer: saving column %d dictionary: %w", c, err)
		}
	}

	return nil
}

// splitFields splits line by ',' into at most len(out) fields, returning
// the number of fields found. Fields beyond feature.Cols are discarded, as
// spec §4.1 only defines COLS columns per row.
func splitFields(line []byte, out [][]byte) int {
	n := 0
	start := 0
	for i := 0; i <= len(line) && n < len(out); i++ {
		if i == len(line) || line[i] == ',' {
			out[n] = line[start:i]
			n++
			start = i + 1
			if i == len(line) {
				break
			}
		}
	}
	return n
}

func closeWriters(ws []*body.Writer) {
	for _, w := range ws {
		if w != nil {
			w.Close()
		}
	}
}

func closeAll(ws []*body.Writer, s *sentence.Writer) {
	closeWriters(ws)
	if s != nil {
		s.Close()
	}
}
