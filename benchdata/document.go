// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdata reads, writes and queries the benchmark history
// file produced by continuous benchmarking.
//
// The file is a JavaScript assignment
//
//	window.BENCHMARK_DATA = { "lastUpdate": ..., "repoUrl": ..., "entries": {...} }
//
// whose entries map a suite name to the chronological list of
// benchmark runs recorded for that suite. The history is append-only:
// runs are added at the end of a suite and are never rewritten.
//
// Measurement values are kept as text. A value of "null" records that
// the measurement was not collected; queries such as Suite.Series skip
// such values rather than treating them as zero.
package benchdata

import (
	"github.com/pkg/errors"
)

// Tool tags recorded in Entry.Tool.
const (
	ToolCustomSmallerIsBetter = "customSmallerIsBetter"
	ToolCustomBiggerIsBetter  = "customBiggerIsBetter"
	ToolGo                    = "go"
)

// ErrOutOfOrder is returned by Document.Append when an entry is dated
// before the last entry of its suite.
var ErrOutOfOrder = errors.New("entry is older than the last entry of its suite")

// ErrNoSuite is returned when a named suite does not exist.
var ErrNoSuite = errors.New("no such suite")

// A Document is a complete benchmark history.
type Document struct {
	// LastUpdate is when the history was last written, in
	// milliseconds since the Unix epoch.
	LastUpdate int64

	// RepoURL is the repository the benchmarked commits belong to.
	RepoURL string

	suites []*Suite
}

// A Suite is a named, chronologically ordered list of benchmark runs.
type Suite struct {
	Name    string
	Entries []*Entry
}

// An Entry is one benchmark run.
type Entry struct {
	Commit Commit `json:"commit"`

	// Date is when the run was recorded, in milliseconds since
	// the Unix epoch. It may differ from Commit.Timestamp.
	Date int64 `json:"date"`

	// Tool identifies the harness that produced Benches.
	Tool string `json:"tool"`

	Benches []Measurement `json:"benches"`
}

// A Commit describes the commit an Entry was measured at.
type Commit struct {
	Author    Person `json:"author"`
	Committer Person `json:"committer"`
	Distinct  *bool  `json:"distinct,omitempty"`
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // ISO-8601
	TreeID    string `json:"tree_id,omitempty"`
	URL       string `json:"url"`
}

// A Person is a commit author or committer.
type Person struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// A Measurement is a single named metric of an Entry.
//
// Unit is usually empty, meaning the value is dimensionless. Package
// scenario infers units from well-known benchmark names.
type Measurement struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
	Unit  string `json:"unit"`
	Range string `json:"range,omitempty"`
	Extra string `json:"extra,omitempty"`
}

// ShortID returns the first 7 characters of the commit ID.
func (c Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// Better reports whether higher or lower values are better for
// entries produced by tool. It returns +1 if higher values are better,
// -1 if lower values are better, or 0 if unknown.
func Better(tool string) int {
	switch tool {
	case ToolCustomSmallerIsBetter:
		return -1
	case ToolCustomBiggerIsBetter:
		return 1
	}
	return 0
}

// New returns an empty Document for the repository at repoURL.
func New(repoURL string) *Document {
	return &Document{RepoURL: repoURL}
}

// Suites returns the suites of d in file order.
func (d *Document) Suites() []*Suite {
	return d.suites
}

// SuiteNames returns the names of the suites of d in file order.
func (d *Document) SuiteNames() []string {
	names := make([]string, len(d.suites))
	for i, s := range d.suites {
		names[i] = s.Name
	}
	return names
}

// Suite returns the suite called name, or nil.
func (d *Document) Suite(name string) *Suite {
	for _, s := range d.suites {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Len returns the total number of entries across all suites.
func (d *Document) Len() int {
	n := 0
	for _, s := range d.suites {
		n += len(s.Entries)
	}
	return n
}

// Append adds e to the end of the suite called suite, creating the
// suite if necessary. Entries must arrive in chronological order: an
// entry dated before the suite's last entry is rejected with
// ErrOutOfOrder. Invalid entries are rejected with a *ValidationError.
//
// LastUpdate is advanced to e.Date if e is newer.
func (d *Document) Append(suite string, e *Entry) error {
	if suite == "" {
		return errors.New("empty suite name")
	}
	if e == nil {
		return errors.New("nil entry")
	}
	s := d.Suite(suite)
	idx := 0
	if s != nil {
		idx = len(s.Entries)
	}
	if probs := e.problems(suite, idx); len(probs) > 0 {
		return &ValidationError{Problems: probs}
	}
	if s == nil {
		s = &Suite{Name: suite}
		d.suites = append(d.suites, s)
	}
	if last := s.Last(); last != nil && e.Date < last.Date {
		return errors.Wrapf(ErrOutOfOrder, "suite %q: date %d before %d", suite, e.Date, last.Date)
	}
	s.Entries = append(s.Entries, e)
	if e.Date > d.LastUpdate {
		d.LastUpdate = e.Date
	}
	return nil
}

// Last returns the most recent entry of s, or nil if s is empty.
func (s *Suite) Last() *Entry {
	if len(s.Entries) == 0 {
		return nil
	}
	return s.Entries[len(s.Entries)-1]
}

// BenchNames returns the distinct measurement names recorded in s, in
// order of first appearance.
func (s *Suite) BenchNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range s.Entries {
		for _, m := range e.Benches {
			if !seen[m.Name] {
				seen[m.Name] = true
				names = append(names, m.Name)
			}
		}
	}
	return names
}

// Runs returns every entry of s recorded for the commit id, in order.
// A commit that was benchmarked several times has several runs.
func (s *Suite) Runs(id string) []*Entry {
	var runs []*Entry
	for _, e := range s.Entries {
		if e.Commit.ID == id {
			runs = append(runs, e)
		}
	}
	return runs
}

// Commits returns the distinct commit IDs of s in order of first
// appearance.
func (s *Suite) Commits() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, e := range s.Entries {
		if !seen[e.Commit.ID] {
			seen[e.Commit.ID] = true
			ids = append(ids, e.Commit.ID)
		}
	}
	return ids
}
