// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureAbsolute - a clean absolute path, relative paths are taken
// from directory
func EnsureAbsolute(directory string, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Join(directory, filePath)
}

// EnsureDirectory - absolute form of path which is created if missing
func EnsureDirectory(fs afero.Fs, directory string, path string) (string, error) {
	path = EnsureAbsolute(directory, path)
	if err := fs.MkdirAll(path, 0700); nil != err {
		return "", err
	}
	return path, nil
}

// FileExists - true if name exists and is not a directory
func FileExists(fs afero.Fs, name string) bool {
	info, err := fs.Stat(name)
	return nil == err && !info.IsDir()
}
