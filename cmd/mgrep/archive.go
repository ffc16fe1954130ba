// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/kortschak/mgrep/internal/workspace"
)

func runArchive(wsPath string, args []string) {
	fs := flag.NewFlagSet("archive", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	out := fs.Arg(0)

	start := time.Now()
	if err := workspace.Archive(wsPath, out); err != nil {
		log.Fatal(err)
	}
	log.Printf("archived %s to %s in %s", wsPath, out, time.Since(start))
}

func runUnarchive(wsPath string, args []string) {
	fs := flag.NewFlagSet("unarchive", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	if err := workspace.Unarchive(fs.Arg(0), wsPath); err != nil {
		log.Fatal(err)
	}
}
