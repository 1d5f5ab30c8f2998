// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/fault"
	"github.com/bitmark-inc/tokenstore/mapping"
	"github.com/bitmark-inc/tokenstore/storage"
)

func TestItem(t *testing.T) {
	db, err := storage.NewMemory()
	if nil != err {
		t.Fatalf("memory database error: %s", err)
	}
	defer db.Close()

	n, _ := storage.NewNamespace("single")
	item := mapping.NewItem(n, thingCodec)

	_, err = item.Load(db)
	assert.Equal(t, fault.ErrNotFound, err, "unset item loaded")

	_, found, err := item.MayLoad(db)
	assert.Nil(t, err, "may load error")
	assert.False(t, found, "unset item found")

	assert.Nil(t, item.Save(db, thing{Owner: "first"}), "save error")
	assert.Nil(t, item.Save(db, thing{Owner: "second"}), "save error")

	value, err := item.Load(db)
	assert.Nil(t, err, "load error")
	assert.Equal(t, "second", value.Owner, "value not replaced")

	// stored at the bare namespace key
	_, found, err = db.Get(n.Key(nil))
	assert.Nil(t, err, "get error")
	assert.True(t, found, "not at namespace key")

	assert.Nil(t, item.Remove(db), "remove error")
	_, err = item.Load(db)
	assert.Equal(t, fault.ErrNotFound, err, "removed item loaded")
}
