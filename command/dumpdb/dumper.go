// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bitmark-inc/tokenstore/record"
	"github.com/bitmark-inc/tokenstore/storage"
)

// index namespaces are named: <map>__<index>
const indexSeparator = "__"

type palette struct {
	label  string
	key    string
	value  string
	warn   string
	retain string
	end    string
}

var plain = palette{}

var ansi = palette{
	label:  "\033[1;36m",
	key:    "\033[1;31m",
	value:  "\033[1;34m",
	warn:   "\033[1;35m",
	retain: "\033[1;32m",
	end:    "\033[0m",
}

type dumper struct {
	w         io.Writer
	namespace *storage.Namespace
	colours   palette
	ascii     bool
	records   bool
	isIndex   bool
}

// print one element, the key without its namespace prefix
func (d *dumper) entry(i int, e storage.Element) {
	c := d.colours

	if d.isIndex {
		secondary, primary, err := d.namespace.SplitIndexKey(d.namespace.Key(e.Key))
		if nil != err {
			fmt.Fprintf(d.w, "%d: %sKey: %s%x%s  (%s)\n", i, c.label, c.key, e.Key, c.end, err)
		} else {
			fmt.Fprintf(d.w, "%d: %sSecondary: %s%x%s\n", i, c.label, c.key, secondary, c.end)
			fmt.Fprintf(d.w, "%d: %sPrimary: %s%q%s\n", i, c.label, c.key, primary, c.end)
		}
	} else {
		fmt.Fprintf(d.w, "%d: %sKey: %s%x%s  %q\n", i, c.label, c.key, e.Key, c.end, e.Key)
	}

	label := fmt.Sprintf("%d: %sVal: %s", i, c.label, c.value)
	switch {
	case d.records && len(e.Value) > 0:
		d.record(label, e.Value)
	case d.ascii:
		d.hexDump(label, e.Value)
	default:
		fmt.Fprintf(d.w, "%s%x%s\n", label, e.Value, c.end)
	}
}

// decode a packed record as JSON, hex if it is not a record
func (d *dumper) record(label string, data []byte) {
	end := d.colours.end

	item, n, err := record.Packed(data).Unpack()
	if nil != err || n != len(data) {
		fmt.Fprintf(d.w, "%s%x%s  (not a record)\n", label, data, end)
		return
	}
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		fmt.Fprintf(d.w, "%s%x%s  (%s)\n", label, data, end, err)
		return
	}
	fmt.Fprintf(d.w, "%s%T%s\n%s\n", label, item, end, b)
}

// 32 bytes per line as hex then printable ascii
func (d *dumper) hexDump(label string, data []byte) {
	const bytesPerLine = 32

	for offset := 0; offset < len(data); offset += bytesPerLine {
		line := data[offset:]
		if len(line) > bytesPerLine {
			line = line[:bytesPerLine]
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s%04x  ", label, offset)
		for j := 0; j < bytesPerLine; j += 1 {
			if bytesPerLine/2 == j {
				b.WriteByte(' ')
			}
			if j < len(line) {
				fmt.Fprintf(&b, "%02x ", line[j])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString(" |")
		for _, c := range line {
			if c < 32 || c >= 127 {
				c = '.'
			}
			b.WriteByte(c)
		}
		fmt.Fprintf(d.w, "%s|%s\n", b.String(), d.colours.end)
	}
}

// ask whether to delete a key
func (d *dumper) confirm(input *bufio.Reader, i int, key []byte) (remove bool, quit bool) {
	c := d.colours
	for {
		fmt.Fprintf(d.w, "%d: %sDelete Key: %s%x%s ? [yNq]: ", i, c.warn, c.key, key, c.end)

		response, err := input.ReadString('\n')
		if nil != err && "" == response {
			return false, true
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true, false
		case "", "n", "no":
			fmt.Fprintf(d.w, "%d: %sRetain Key: %s%x%s\n", i, c.retain, c.key, key, c.end)
			return false, false
		case "q", "quit", "e", "exit", "x":
			return false, true
		default:
			fmt.Fprintf(d.w, "Please answer yes or no\n")
		}
	}
}

func (d *dumper) deleted(i int, key []byte) {
	c := d.colours
	fmt.Fprintf(d.w, "%d: %s***DELETED: %s%x%s\n", i, c.warn, c.key, key, c.end)
}
