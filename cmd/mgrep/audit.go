// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The audit verb lets a workspace's raw on-disk contents — sentence spans
// and per-row Feature IDs — be inspected directly, independent of the
// query engine.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/kortschak/mgrep/internal/feature"
	"github.com/kortschak/mgrep/internal/workspace"
)

type row struct {
	Row     int      `json:"row"`
	Feats   []uint32 `json:"feats"`
	Surface string   `json:"surface"`
}

type sentenceRecord struct {
	Index int `json:"index"`
	Begin int `json:"begin"`
	End   int `json:"end"`
}

func runAudit(wsPath string, args []string) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
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

	enc := json.NewEncoder(os.Stdout)

	for i, s := range w.Spans() {
		if err := enc.Encode(sentenceRecord{Index: i, Begin: int(s.Begin), End: int(s.End)}); err != nil {
			log.Fatal(err)
		}
	}

	bt := w.Body()
	for r := 0; r < bt.Len(); r++ {
		feats := make([]uint32, feature.Cols)
		for c := 0; c < feature.Cols; c++ {
			feats[c] = bt.At(c, r)
		}
		surface, _ := w.Decode(0, feats[0])
		rec := row{Row: r, Feats: feats, Surface: string(surface)}
		if err := enc.Encode(rec); err != nil {
			log.Fatal(err)
		}
	}
}
