// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenstore/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = "testing/test.leveldb"
)

func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err := logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}

	rc := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// an empty in-memory database
func setupMemory(t *testing.T) *storage.Database {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	return db
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// data for various test routines, in insertion order
var testElements = []stringElement{
	{"key-one", "data-one"},
	{"key-two", "data-two"},
	{"key-three", "data-three"},
	{"key-four", "data-four"},
	{"key-five", "data-five"},
	{"key-six", "data-six"},
	{"key-seven", "data-seven"},
}

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
})

// fill a namespace with the test elements
func fill(t *testing.T, access storage.Access, n *storage.Namespace) {
	for _, e := range testElements {
		if err := access.Put(n.Key([]byte(e.key)), []byte(e.value)); nil != err {
			t.Fatalf("put: %q  error: %s", e.key, err)
		}
	}
}
