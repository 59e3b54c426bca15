// Copyright 2025 The addrdict Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the addrdict query CLI and msgpack IPC server.

addrdict loads a CSV dataset of address records into a bitwise PATRICIA trie
keyed by one column (EZI_ADD by default). A query for a key returns every
record stored under it; when the key is missing, the records of the textually
nearest key below the point where the search stopped are returned instead.

# Usage

Answer queries read from stdin, one key per line:

	addrdict query data.csv results.txt < keys.txt

Every query writes the key and the matching records (or NOTFOUND) to the
output file, and a summary line with the number of bit, node and string
comparisons to stdout:

	12 MAIN ST --> 2 records found - comparisons: b96 n4 s1

A line of the form ":complete <prefix>" lists the keys starting with prefix
instead of running a lookup.

Serve lookups over msgpack on stdin/stdout:

	addrdict serve data.csv

# Configuration

A TOML config is created with defaults on first run under the user config
dir (for example ~/.config/addrdict/config.toml), or read from --config:

	[dict]
	key_column = "EZI_ADD"
	coord_columns = ["x", "y"]
	coord_precision = 5
	max_key_length = 512

	[server]
	max_results = 0
	max_complete = 24

	[cli]
	show_counters = true
	prompt = true

Logs go to stderr. Use --debug for timestamps and debug output.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const (
	Version = "0.3.0"
	AppName = "addrdict"
	gh      = "https://github.com/bastiangx/addrdict"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
