// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mgrep builds and queries a columnar index over a pre-tokenized,
// feature-annotated text corpus. It takes its corpus as a CSV stream of
// feature columns, one row per token, and answers pattern queries over
// the token stream sentence by sentence.
//
// Usage:
//
//	mgrep corpus.idx index corpus.csv
//	mgrep corpus.idx query [-n limit] 'pattern'
//	mgrep corpus.idx lookup c 'feature'
//	mgrep corpus.idx decode c id
//	mgrep corpus.idx stats
//	mgrep corpus.idx locate row
//	mgrep corpus.idx archive corpus.idx.tar.sz
//	mgrep corpus.idx unarchive corpus.idx.tar.sz
//	mgrep corpus.idx audit
package main

import (
	"fmt"
	"log"
	"os"
)

var verbs = map[string]func(wsPath string, args []string){
	"index":     runIndex,
	"query":     runQuery,
	"lookup":    runLookup,
	"decode":    runDecode,
	"stats":     runStats,
	"locate":    runLocate,
	"archive":   runArchive,
	"unarchive": runUnarchive,
	"audit":     runAudit,
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("mgrep: ")

	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}
	fn, ok := verbs[os.Args[2]]
	if !ok {
		usage()
		os.Exit(2)
	}
	fn(os.Args[1], os.Args[3:])
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <workspace> <verb> [options]

Verbs:
  index     build a workspace from a tokenized corpus
  query     run a pattern query against a workspace
  lookup    resolve a feature string to its Feature ID
  decode    resolve a Feature ID to its feature string
  stats     summarize a workspace's feature and sentence distributions
  locate    report which sentence contains a given row
  archive   pack a workspace into a single compressed file
  unarchive unpack an archive back into a workspace directory
  audit     dump a workspace's raw on-disk contents as JSON
`, os.Args[0])
}
