// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/storage"
	"github.com/bitmark-inc/tokenstore/util"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
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
	if err := logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// a record with two independently indexed fields
type thing struct {
	Owner string
	Tag   string
	Level uint64
}

func packThing(t thing) ([]byte, error) {
	buffer := util.AppendBytes(nil, []byte(t.Owner))
	buffer = util.AppendBytes(buffer, []byte(t.Tag))
	return util.AppendVarint64(buffer, t.Level), nil
}

func unpackThing(buffer []byte) (thing, error) {
	t := thing{}
	owner, n := util.FromBytes(buffer, 1024)
	if 0 == n {
		return t, fault.ErrNotTokenPack
	}
	buffer = buffer[n:]
	tag, n := util.FromBytes(buffer, 1024)
	if 0 == n {
		return t, fault.ErrNotTokenPack
	}
	buffer = buffer[n:]
	level, n := util.FromVarint64(buffer)
	if 0 == n {
		return t, fault.ErrNotTokenPack
	}
	t.Owner = string(owner)
	t.Tag = string(tag)
	t.Level = level
	return t, nil
}

var thingCodec = mapping.Codec[thing]{
	Pack:   packThing,
	Unpack: unpackThing,
}

func thingOwner(t thing) []byte {
	return []byte(t.Owner)
}

func thingTag(t thing) []byte {
	return []byte(t.Tag)
}

type fixture struct {
	db     *storage.Database
	things *mapping.IndexedMap[thing]
	owners *storage.Namespace
	tags   *storage.Namespace
}

// an empty database and a map of things indexed by owner and tag
func setup(t *testing.T) *fixture {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}

	primary, _ := storage.NewNamespace("things")
	owners, _ := storage.NewNamespace("things__owner")
	tags, _ := storage.NewNamespace("things__tag")

	return &fixture{
		db: db,
		things: mapping.NewIndexedMap(primary, thingCodec,
			mapping.Index[thing]{Name: "owner", Namespace: owners, Derive: thingOwner},
			mapping.Index[thing]{Name: "tag", Namespace: tags, Derive: thingTag},
		),
		owners: owners,
		tags:   tags,
	}
}

func (f *fixture) teardown() {
	f.db.Close()
}

// all keys for one secondary value
func (f *fixture) keysBy(t *testing.T, access storage.Access, index string, secondary string) []string {
	pairs, next, err := f.things.RangeByIndex(access, index, []byte(secondary), "", 1000)
	if nil != err {
		t.Fatalf("range by index: %q  secondary: %q  error: %s", index, secondary, err)
	}
	if "" != next {
		t.Fatalf("unexpected continuation: %q", next)
	}
	keys := []string{}
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// number of raw entries in a namespace
func countEntries(t *testing.T, access storage.Access, n *storage.Namespace) int {
	count := 0
	err := n.NewFetchCursor().Map(access, func(key []byte, value []byte) error {
		count += 1
		return nil
	})
	if nil != err {
		t.Fatalf("count entries error: %s", err)
	}
	return count
}
