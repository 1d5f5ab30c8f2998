// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenstore/fault"
)

// without Initialise the message goes to stdout
func TestPanicf(t *testing.T) {
	assert.PanicsWithValue(t, "abort, see last messages in log file", func() {
		fault.Panicf("namespace: %q  error: %s", "tokens", fault.ErrDuplicateNamespace)
	})
}

func TestPanic(t *testing.T) {
	assert.PanicsWithValue(t, "stop", func() {
		fault.Panic("stop")
	})
}
