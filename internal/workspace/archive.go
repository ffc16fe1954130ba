// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workspace

import (
	"archive/tar"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/kortschak/mgrep/internal/feature"
)

// files returns the full set of on-disk files that make up the workspace,
// in a fixed order: sentence index, then each column's body file, then
// each column's dictionary file.
func (w *Workspace) files() []string {
	paths := make([]string, 0, 2*feature.Cols+1)
	paths = append(paths, w.SentenceIndexPath())
	for c := 0; c < feature.Cols; c++ {
		paths = append(paths, w.BodyPath(c))
	}
	for c := 0; c < feature.Cols; c++ {
		paths = append(paths, w.FeaturesPath(c))
	}
	return paths
}

// Archive writes every file in the workspace directory to a single
// snappy-compressed tar stream at dstPath, for distributing a built
// workspace without shipping the source CSV it was built from.
func Archive(dir, dstPath string) error {
	w := New(dir)

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer out.Close()

	sw := snappy.NewBufferedWriter(out)
	defer sw.Close()

	tw := tar.NewWriter(sw)
	defer tw.Close()

	for _, p := range w.files() {
		if err := addFile(tw, p); err != nil {
			return fmt.Errorf("workspace: archiving %s: %w", p, err)
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := sw.Close(); err != nil {
		return err
	}
	return out.Sync()
}

func addFile(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = info.Name()
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}

// Unarchive extracts a snappy-compressed tar stream produced by Archive
// into dir, which must not already exist.
func Unarchive(srcPath, dir string) error {
	if err := os.Mkdir(dir, 0o755); err != nil {
		return err
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	sr := snappy.NewReader(in)
	tr := tar.NewReader(sr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("workspace: extracting %s: %w", srcPath, err)
		}
		if err := extractFile(tr, dir, hdr); err != nil {
			return fmt.Errorf("workspace: extracting %s: %w", hdr.Name, err)
		}
	}
}

func extractFile(tr *tar.Reader, dir string, hdr *tar.Header) error {
	f, err := os.OpenFile(dir+string(os.PathSeparator)+hdr.Name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, tr)
	return err
}
