// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/kortschak/mgrep/internal/vm"
	"github.com/kortschak/mgrep/internal/workspace"
)

func runQuery(wsPath string, args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	limit := fs.Int("n", vm.NoLimit, "specify maximum number of matches to emit (<=0 is unlimited)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	pattern := fs.Arg(0)
	if *limit <= 0 {
		*limit = vm.NoLimit
	}

	w := workspace.New(wsPath)
	if err := w.Open(); err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	out := bufio.NewWriterSize(os.Stdout, 1<<20)
	defer out.Flush()
	if _, err := w.Search(pattern, *limit, out); err != nil {
		log.Fatal(err)
	}
}
