// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/mgrep/internal/corpusstat"
	"github.com/kortschak/mgrep/internal/workspace"
)

func runStats(wsPath string, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 0 {
		fs.Usage()
		os.Exit(2)
	}

	w := workspace.New(wsPath)
	if err := w.Open(); err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	r := corpusstat.Compute(w.Body(), w.Spans())
	m, err := json.Marshal(r)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", m)
}
