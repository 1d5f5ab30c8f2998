// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - shared error values and the panic log
//
// every error is a constant of one class type so callers compare with
// == and test the class with IsErrNotFound, IsErrRecord and so on.
// Panicf logs to the PANIC channel before panicking.
package fault
