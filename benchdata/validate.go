// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"fmt"
	"strings"
	"time"
)

// A Problem is a single schema violation found by Validate.
type Problem struct {
	Suite string
	Entry int    // index of the entry in its suite
	Bench string // measurement name, if the problem concerns one
	Msg   string
}

func (p Problem) String() string {
	if p.Bench != "" {
		return fmt.Sprintf("suite %q entry %d bench %q: %s", p.Suite, p.Entry, p.Bench, p.Msg)
	}
	return fmt.Sprintf("suite %q entry %d: %s", p.Suite, p.Entry, p.Msg)
}

// A ValidationError lists every Problem found in a Document or Entry.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "no problems"
	case 1:
		return e.Problems[0].String()
	}
	return fmt.Sprintf("%s (and %d more problems)", e.Problems[0], len(e.Problems)-1)
}

// Validate checks d against the history schema:
//
//   - every entry has a commit ID, an ISO-8601 commit timestamp
//     and a run date;
//   - every measurement has a name and a value that is either a
//     finite number or "null";
//   - the entries of each suite are in non-decreasing date order.
//
// It returns nil or a *ValidationError listing every problem.
func (d *Document) Validate() error {
	var probs []Problem
	for _, s := range d.suites {
		for i, e := range s.Entries {
			if e == nil {
				probs = append(probs, Problem{Suite: s.Name, Entry: i, Msg: "null entry"})
				continue
			}
			probs = append(probs, e.problems(s.Name, i)...)
			if i > 0 && s.Entries[i-1] != nil && e.Date < s.Entries[i-1].Date {
				probs = append(probs, Problem{Suite: s.Name, Entry: i,
					Msg: fmt.Sprintf("date %d is before previous entry's %d", e.Date, s.Entries[i-1].Date)})
			}
		}
	}
	if len(probs) > 0 {
		return &ValidationError{Problems: probs}
	}
	return nil
}

// Validate checks a single entry. See Document.Validate.
func (e *Entry) Validate() error {
	if probs := e.problems("", 0); len(probs) > 0 {
		return &ValidationError{Problems: probs}
	}
	return nil
}

func (e *Entry) problems(suite string, idx int) []Problem {
	var probs []Problem
	add := func(bench, format string, args ...interface{}) {
		probs = append(probs, Problem{Suite: suite, Entry: idx, Bench: bench, Msg: fmt.Sprintf(format, args...)})
	}
	if strings.TrimSpace(e.Commit.ID) == "" {
		add("", "missing commit id")
	}
	if e.Commit.Timestamp == "" {
		add("", "missing commit timestamp")
	} else if _, err := time.Parse(time.RFC3339, e.Commit.Timestamp); err != nil {
		add("", "commit timestamp %q is not ISO-8601", e.Commit.Timestamp)
	}
	if e.Date <= 0 {
		add("", "missing date")
	}
	for _, m := range e.Benches {
		if m.Name == "" {
			add("", "measurement without a name")
			continue
		}
		if err := m.Value.check(); err != nil {
			add(m.Name, "%v", err)
		}
	}
	return probs
}
