// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// DirFS stores files under a local directory. Files are written to a
// temporary file and renamed into place on Close, so readers never
// observe a partially written file. Metadata is not stored.
type DirFS struct {
	Root string
}

func (fs DirFS) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("invalid file name %q", name)
	}
	return filepath.Join(fs.Root, clean), nil
}

// NewReader opens the named file.
func (fs DirFS) NewReader(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := fs.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err // *PathError wraps ErrNotExist
	}
	return f, nil
}

// NewWriter creates a temporary file next to the named file. The
// file gets the mode of the file it replaces, or 0644 for a new file.
func (fs DirFS) NewWriter(_ context.Context, name string, _ map[string]string) (Writer, error) {
	p, err := fs.path(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o777); err != nil {
		return nil, err
	}
	// Replacements keep the mode of the file they replace.
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(p); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".tmp*")
	if err != nil {
		return nil, err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &dirFile{File: tmp, dst: p}, nil
}

type dirFile struct {
	*os.File
	dst string
}

func (f *dirFile) Close() error {
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	if err := os.Rename(f.File.Name(), f.dst); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	return nil
}

func (f *dirFile) CloseWithError(error) error {
	f.File.Close()
	return os.Remove(f.File.Name())
}
