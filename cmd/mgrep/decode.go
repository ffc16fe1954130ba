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

func runDecode(wsPath string, args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
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
	id, err := strconv.ParseUint(fs.Arg(1), 10, 32)
	if err != nil {
		log.Fatalf("invalid Feature ID: %v", err)
	}

	w := workspace.New(wsPath)
	if err := w.Open(); err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	feat, ok := w.Decode(col, uint32(id))
	if !ok {
		log.Fatalf("Feature ID out of range in column %d: %d", col, id)
	}
	fmt.Printf("%s\n", feat)
}
