// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workspace owns the on-disk layout of one mgrep workspace and
// wires the index, compiler and VM packages together for the search,
// lookup and decode operations described in spec §4.5.
package workspace

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kortschak/mgrep/internal/body"
	"github.com/kortschak/mgrep/internal/compile"
	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/indexer"
	"github.com/kortschak/mgrep/internal/query"
	"github.com/kortschak/mgrep/internal/sentence"
	"github.com/kortschak/mgrep/internal/vm"
)

// Workspace owns one workspace directory: the memory-mapped body table,
// the loaded feature dictionaries, and the sentence index, for the
// duration of a query. Every slice handed out by its component packages
// must not outlive the Workspace.
type Workspace struct {
	dir string

	body  *body.Table
	dicts [feature.Cols]*feature.Dictionary
	spans []sentence.Span
	loc   *sentence.Locator
}

// New returns a Workspace rooted at dir. It does not touch the filesystem;
// call Create to build a new index or Open to load an existing one.
func New(dir string) *Workspace {
	return &Workspace{dir: dir}
}

// BodyPath returns the path of column c's body file.
func (w *Workspace) BodyPath(c int) string {
	return filepath.Join(w.dir, fmt.Sprintf("body_%d.bin", c))
}

// FeaturesPath returns the path of column c's dictionary file.
func (w *Workspace) FeaturesPath(c int) string {
	return filepath.Join(w.dir, fmt.Sprintf("features_%d.bin", c))
}

// SentenceIndexPath returns the path of the sentence-index file.
func (w *Workspace) SentenceIndexPath() string {
	return filepath.Join(w.dir, "sentence_index.bin")
}

// Create builds a new workspace at w's directory from the source CSV at
// sourcePath. It fails if the directory already exists (spec §4.1).
func (w *Workspace) Create(sourcePath string) error {
	if err := os.Mkdir(w.dir, 0o755); err != nil {
		return err
	}
	start := time.Now()
	if err := indexer.New(w).Execute(sourcePath); err != nil {
		return fmt.Errorf("workspace: building %s: %w", w.dir, err)
	}
	log.Printf("indexed %s in %s", sourcePath, time.Since(start))
	return nil
}

// Open memory-maps an existing workspace's body, dictionary and
// sentence-index files for read-only access. Call Close when done.
func (w *Workspace) Open() error {
	for c := 0; c < feature.Cols; c++ {
		d, err := feature.Open(w.FeaturesPath(c))
		if err != nil {
			w.closeDicts(c)
			return fmt.Errorf("workspace: opening column %d dictionary: %w", c, err)
		}
		w.dicts[c] = d
	}

	bt, err := body.Open(w.BodyPath)
	if err != nil {
		w.closeDicts(feature.Cols)
		return fmt.Errorf("workspace: opening body table: %w", err)
	}
	w.body = bt

	spans, err := sentence.Load(w.SentenceIndexPath())
	if err != nil {
		w.Close()
		return fmt.Errorf("workspace: loading sentence index: %w", err)
	}
	w.spans = spans

	loc, err := sentence.NewLocator(spans)
	if err != nil {
		w.Close()
		return fmt.Errorf("workspace: building sentence locator: %w", err)
	}
	w.loc = loc

	return nil
}

func (w *Workspace) closeDicts(n int) {
	for c := 0; c < n; c++ {
		if w.dicts[c] != nil {
			w.dicts[c].Close()
			w.dicts[c] = nil
		}
	}
}

// Close releases every memory-mapped file held by the workspace.
func (w *Workspace) Close() error {
	var first error
	if w.body != nil {
		if err := w.body.Close(); err != nil {
			first = err
		}
		w.body = nil
	}
	w.closeDicts(feature.Cols)
	return first
}

// Body returns the workspace's memory-mapped body table. Open must have
// been called first.
func (w *Workspace) Body() *body.Table { return w.body }

// Spans returns the workspace's sentence index.
func (w *Workspace) Spans() []sentence.Span { return w.spans }

// Locator returns the workspace's row→sentence locator.
func (w *Workspace) Locator() *sentence.Locator { return w.loc }

// Dictionary returns column c's feature dictionary.
func (w *Workspace) Dictionary(c int) *feature.Dictionary { return w.dicts[c] }

// Search parses and compiles queryStr, runs it against the workspace, and
// writes matches to out. It reports the query's wall-clock time to the log
// package.
func (w *Workspace) Search(queryStr string, limit int, out io.Writer) (int, error) {
	node, err := query.Parse(queryStr)
	if err != nil {
		return 0, fmt.Errorf("workspace: %w", err)
	}
	prog := compile.Compile(node)
	p := vm.New(prog, w.body, w.spans, w.dicts[0])

	start := time.Now()
	n, err := p.Run(out, limit)
	log.Printf("query %q: %d matches in %s", queryStr, n, time.Since(start))
	if err != nil {
		return n, fmt.Errorf("workspace: running query: %w", err)
	}
	return n, nil
}

// Lookup returns feat's Feature ID in column c, and whether it was found.
func (w *Workspace) Lookup(c int, feat []byte) (uint32, bool) {
	return w.dicts[c].ID(feat)
}

// Decode returns the surface-form bytes for Feature ID id in column c, and
// whether id is in range.
func (w *Workspace) Decode(c int, id uint32) ([]byte, bool) {
	if id >= uint32(w.dicts[c].Len()) {
		return nil, false
	}
	return w.dicts[c].Decode(id), true
}
