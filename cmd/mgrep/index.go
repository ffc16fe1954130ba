// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"log"
	"os"

	"github.com/kortschak/mgrep/internal/workspace"
)

func runIndex(wsPath string, args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	w := workspace.New(wsPath)
	if err := w.Create(fs.Arg(0)); err != nil {
		log.Fatal(err)
	}
}
