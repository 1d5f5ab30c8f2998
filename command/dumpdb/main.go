// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	_ "github.com/bitmark-inc/tokenstore/state" // registers the namespaces
	"github.com/bitmark-inc/tokenstore/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const usage = "usage: %s [--help] [--verbose] [--list] [--records] [--ascii] [--colour] [--delete] [--count=N] --file=DIR tag [key-prefix]"

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "delete", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "records", HasArg: getoptions.NO_ARGUMENT, Short: 'r'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {
		fmt.Printf(" tags:\n")
		for _, n := range storage.Namespaces() {
			fmt.Printf("       %s\n", n.Tag())
		}
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message(usage, program)
	}

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	tag := arguments[0]
	if len(options["verbose"]) > 0 {
		fmt.Printf("read tag: %s from file: %q\n", tag, filename)
	}

	namespace, err := storage.Lookup(tag)
	if nil != err {
		exitwithstatus.Message("%s: tag: %q  error: %s", program, tag, err)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	deleting := len(options["delete"]) > 0

	// start of main processing
	db, err := storage.Open(filename, !deleting)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer db.Close()

	elements, err := namespace.NewPrefixCursor(prefix).Fetch(db, count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	d := &dumper{
		w:         os.Stdout,
		namespace: namespace,
		colours:   plain,
		ascii:     len(options["ascii"]) > 0,
		records:   len(options["records"]) > 0,
		isIndex:   strings.Contains(tag, indexSeparator),
	}
	if len(options["colour"]) > 0 {
		d.colours = ansi
	}

	input := bufio.NewReader(os.Stdin)
	for i, e := range elements {
		d.entry(i, e)
		if !deleting {
			continue
		}
		remove, quit := d.confirm(input, i, e.Key)
		if quit {
			fmt.Printf("Terminated\n")
			return
		}
		if !remove {
			continue
		}
		if err := db.Delete(namespace.Key(e.Key)); nil != err {
			exitwithstatus.Message("%s: delete error: %s", program, err)
		}
		d.deleted(i, e.Key)
	}
}
