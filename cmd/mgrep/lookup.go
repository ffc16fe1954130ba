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

	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/workspace"
)

func runLookup(wsPath string, args []string) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}
	col, err := strconv.Atoi(fs.Arg(0))
	if err != nil || col < 0 || col >= feature.Cols {
		fs.Usage()
		os.Exit(2)
	}

	w := workspace.New(wsPath)
	if err := w.Open(); err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	id, ok := w.Lookup(col, []byte(fs.Arg(1)))
	if !ok {
		fmt.Println("not found")
		return
	}
	fmt.Println(id)
}
