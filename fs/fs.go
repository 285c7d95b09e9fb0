// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic filesystem layer for storing
// benchmark history files.
package fs

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/yewstack/benchdata/benchdata"
)

// ErrNotExist is returned by NewReader when the named file does not
// exist.
var ErrNotExist = os.ErrNotExist

// An FS stores named files.
type FS interface {
	// NewReader opens the named file for reading. It returns an
	// error wrapping ErrNotExist if there is no such file.
	NewReader(ctx context.Context, name string) (io.ReadCloser, error)

	// NewWriter returns a Writer for a given file name. The file
	// replaces any existing file of that name when the Writer is
	// closed. metadata is stored with the file if the backend
	// supports it.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer is a file being written.
type Writer interface {
	io.Writer
	// CloseWithError cancels the writing of the file, removing
	// any partially written data.
	CloseWithError(error) error
	io.Closer
}

// Load reads the history file called name from fs.
func Load(ctx context.Context, fs FS, name string) (*benchdata.Document, error) {
	r, err := fs.NewReader(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	doc, err := benchdata.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return doc, nil
}

// Save writes doc to fs as the history file called name, in the
// JavaScript form read by dashboards. The previous contents of the
// file are kept if writing fails.
func Save(ctx context.Context, fs FS, name string, doc *benchdata.Document) error {
	// Encode first so an encoding error never truncates the file.
	var buf bytes.Buffer
	if err := doc.WriteJS(&buf); err != nil {
		return errors.Wrap(err, "encoding history")
	}
	w, err := fs.NewWriter(ctx, name, map[string]string{
		"lastupdate": strconv.FormatInt(doc.LastUpdate, 10),
		"entries":    strconv.Itoa(doc.Len()),
	})
	if err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.CloseWithError(err)
		return errors.Wrapf(err, "writing %s", name)
	}
	return errors.Wrapf(w.Close(), "writing %s", name)
}
