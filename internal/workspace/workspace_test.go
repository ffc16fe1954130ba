// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workspace

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/kortschak/mgrep/internal/vm"
)

func buildTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.csv")
	lines := []string{
		"犬,名詞,,,,,,,,",
		"が,助詞,,,,,,,,",
		"走る,動詞,,,,,,,,",
		"。,記号,,,,,,,,",
	}
	data := ""
	for _, l := range lines {
		data += l + "\n"
	}
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := New(filepath.Join(dir, "ws"))
	if err := ws.Create(src); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ws.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestCreateOpenSearchRoundTrip(t *testing.T) {
	ws := buildTestWorkspace(t)

	id, ok := ws.Lookup(0, []byte("犬"))
	if !ok {
		t.Fatal("Lookup(犬) not found")
	}

	var out bytes.Buffer
	n, err := ws.Search(strconv.FormatUint(uint64(id), 10), vm.NoLimit, &out)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if n != 1 {
		t.Fatalf("matches = %d, want 1", n)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	ws := buildTestWorkspace(t)

	id, ok := ws.Lookup(0, []byte("走る"))
	if !ok {
		t.Fatal("Lookup(走る) not found")
	}
	got, ok := ws.Decode(0, id)
	if !ok || string(got) != "走る" {
		t.Errorf("Decode(%d) = (%q, %v), want (\"走る\", true)", id, got, ok)
	}
}

func TestLocatorFindsSentence(t *testing.T) {
	ws := buildTestWorkspace(t)
	idx, span, ok := ws.Locator().Sentence(0)
	if !ok {
		t.Fatal("Sentence(0) not found")
	}
	if idx != 0 || span.Begin != 0 || span.End != 4 {
		t.Errorf("Sentence(0) = (%d, %v), want (0, {0 4})", idx, span)
	}
}
