// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// channel for the last messages before a panic
var log *logger.L

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Panicf - log a formatted message then panic
//
// only for conditions that indicate a programming error, e.g. two
// maps registered on the same namespace
func Panicf(format string, arguments ...interface{}) {
	internalCriticalf(withCaller(2, format), arguments...)
	Panic("abort, see last messages in log file")
}

// Panic - final panic
func Panic(message string) {
	internalCriticalf("%s", message)
	time.Sleep(100 * time.Millisecond) // to allow logging output
	panic(message)
}

func withCaller(skip int, format string) string {
	if _, file, line, ok := runtime.Caller(skip); ok {
		return fmt.Sprintf("(%q:%d) ", file, line) + format
	}
	return format
}

// handles an uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush() // make sure log file is saved
}
