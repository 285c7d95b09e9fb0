// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"os"
)

// A Files reads benchmark results from a sequence of input files.
//
// This reader adds a ".file" configuration key to the output Results
// whose value is the path of the file the result came from.
type Files struct {
	// Paths is the list of file names to read. If AllowStdin is
	// set, the path "-" means standard input, and an empty list
	// reads standard input alone.
	Paths []string

	AllowStdin bool

	inputs  []string
	started bool

	reader  Reader
	file    *os.File
	isStdin bool
	err     error
}

// Scan advances the reader to the next result in the sequence of
// files and reports whether a result was read. The caller should use
// the Result method to get the result.
//
// If Scan reaches the end of the file sequence, or if an I/O error
// occurs, it returns false. In this case, the caller should use the
// Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if !f.started {
		f.started = true
		f.inputs = append([]string(nil), f.Paths...)
		if f.AllowStdin && len(f.inputs) == 0 {
			f.inputs = []string{"-"}
		}
	}

	for {
		if f.file == nil {
			if len(f.inputs) == 0 {
				return false
			}
			path := f.inputs[0]
			f.inputs = f.inputs[1:]

			if f.AllowStdin && path == "-" {
				f.isStdin, f.file = true, os.Stdin
			} else {
				file, err := os.Open(path)
				if err != nil {
					f.err = err
					return false
				}
				f.isStdin, f.file = false, file
			}
			f.reader.Reset(f.file, path, ".file", path)
		}

		if f.reader.Scan() {
			return true
		}
		if !f.isStdin {
			f.file.Close()
		}
		f.file = nil
		if err := f.reader.Err(); err != nil {
			f.err = err
			return false
		}
	}
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() Record {
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}
