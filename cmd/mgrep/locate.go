// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/kortschak/mgrep/internal/workspace"
)

func runLocate(wsPath string, args []string) {
	fs := flag.NewFlagSet("locate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	row, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		log.Fatalf("invalid row: %v", err)
	}

	w := workspace.New(wsPath)
	if err := w.Open(); err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	idx, span, ok := w.Locator().Sentence(row)
	if !ok {
		log.Fatalf("row %d is outside every sentence", row)
	}
	fmt.Printf("sentence %d [%d, %d)\n", idx, span.Begin, span.End)
}
