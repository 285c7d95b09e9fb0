// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fs

import (
	"bytes"
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// MemFS is an in-memory filesystem implementing the FS interface.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		content: make(map[string]*memFile),
	}
}

// NewReader returns a reader for a snapshot of the named file.
func (fs *MemFS) NewReader(_ context.Context, name string) (io.ReadCloser, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f := fs.content[name]
	if f == nil {
		return nil, errors.Wrap(ErrNotExist, name)
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

// NewWriter returns a Writer for a given file name. When the Writer is
// closed, the file will be stored with the given metadata.
func (fs *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (Writer, error) {
	m := make(map[string]string)
	for k, v := range metadata {
		m[k] = v
	}
	return &memFile{fs: fs, name: name, metadata: m}, nil
}

// Files returns the names of the files written to fs, sorted.
func (fs *MemFS) Files() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var files []string
	for f := range fs.content {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Metadata returns the metadata stored with the named file.
func (fs *MemFS) Metadata(name string) map[string]string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if f := fs.content[name]; f != nil {
		return f.metadata
	}
	return nil
}

// memFile represents a file in a MemFS. While the file is being
// written, fs points to the filesystem. Close writes the file's
// content to fs and sets fs to nil.
type memFile struct {
	fs       *MemFS
	name     string
	metadata map[string]string
	content  []byte
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.fs == nil {
		return 0, errors.New("write on closed file")
	}
	f.content = append(f.content, p...)
	return len(p), nil
}

func (f *memFile) Close() error {
	if f.fs == nil {
		return errors.New("already closed")
	}
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.content[f.name] = f
	f.fs = nil
	return nil
}

func (f *memFile) CloseWithError(error) error {
	f.fs = nil
	return nil
}
