// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kortschak/mgrep/internal/body"
	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/sentence"
)

type testPaths struct{ dir string }

func (p testPaths) BodyPath(c int) string     { return filepath.Join(p.dir, "body_"+itoa(c)) }
func (p testPaths) FeaturesPath(c int) string { return filepath.Join(p.dir, "features_"+itoa(c)) }
func (p testPaths) SentenceIndexPath() string { return filepath.Join(p.dir, "sentence_index.bin") }

func itoa(c int) string { return string(rune('0' + c)) }

func TestExecuteBuildsWorkspaceFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.csv")

	// Two sentences: "Hello,world" then a delimiter row closing it, then
	// one more open sentence left dangling (no trailing delimiter).
	lines := []string{
		"Hello,NN,,,,,,,,",
		"world,NN,,,,,,,,",
		"。,記号,,,,,,,,",
		"Bye,NN,,,,,,,,",
	}
	if err := os.WriteFile(src, []byte(joinLines(lines)), 0o644); err != nil {
		t.Fatal(err)
	}

	paths := testPaths{dir: dir}
	if err := New(paths).Execute(src); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	bt, err := body.Open(paths.BodyPath)
	if err != nil {
		t.Fatalf("body.Open: %v", err)
	}
	defer bt.Close()
	if bt.Len() != len(lines) {
		t.Fatalf("body rows = %d, want %d", bt.Len(), len(lines))
	}

	dict0, err := feature.Open(paths.FeaturesPath(0))
	if err != nil {
		t.Fatalf("feature.Open(0): %v", err)
	}
	defer dict0.Close()
	if dict0.Len() != len(feature.Reserved)+3 {
		t.Fatalf("column 0 dictionary len = %d, want %d", dict0.Len(), len(feature.Reserved)+3)
	}
	if id, ok := dict0.ID([]byte("Hello")); !ok || id != uint32(len(feature.Reserved)) {
		t.Errorf("ID(Hello) = (%d, %v), want (%d, true)", id, ok, len(feature.Reserved))
	}

	spans, err := sentence.Load(paths.SentenceIndexPath())
	if err != nil {
		t.Fatalf("sentence.Load: %v", err)
	}
	// Row 3 ("Bye") never closes, so only one sentence is recorded (spec
	// §4.1: a dangling tail without a delimiter is dropped).
	if len(spans) != 1 {
		t.Fatalf("len(spans) = %d, want 1", len(spans))
	}
	if spans[0] != (sentence.Span{Begin: 0, End: 3}) {
		t.Errorf("spans[0] = %v, want {0 3}", spans[0])
	}
}

func TestSplitFieldsTruncatesExcessColumns(t *testing.T) {
	var out [feature.Cols][]byte
	line := []byte("a,b,c,d,e,f,g,h,i,j,k,l,m")
	n := splitFields(line, out[:])
	if n != feature.Cols {
		t.Fatalf("splitFields returned %d fields, want %d", n, feature.Cols)
	}
	if string(out[feature.Cols-1]) != "j" {
		t.Errorf("last retained field = %q, want %q", out[feature.Cols-1], "j")
	}
}

func TestSplitFieldsShortRow(t *testing.T) {
	var out [feature.Cols][]byte
	line := []byte("a,b")
	n := splitFields(line, out[:])
	if n != 2 {
		t.Fatalf("splitFields returned %d fields, want 2", n)
	}
}

func joinLines(lines []string) string {
	s := ""
	for _, l := range lines {
		s += l + "\n"
	}
	return s
}
