// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"strings"

	"github.com/pkg/errors"
)

// A Point is one recorded value of a benchmark.
type Point struct {
	Index  int     `json:"index"`  // index of the entry in its suite
	Date   int64   `json:"date"`   // Entry.Date
	Commit string  `json:"commit"` // Commit.ID
	Value  float64 `json:"value"`
}

// A Series is the history of one benchmark in one suite.
type Series struct {
	Suite  string  `json:"suite"`
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Points []Point `json:"points"`

	// Missing counts the entries whose value for this benchmark
	// was "null" (or otherwise not a number). These entries have
	// no Point.
	Missing int `json:"missing"`

	// Better is Better(tool) for the tool of the newest point:
	// -1 if smaller values are better, +1 if larger, 0 if unknown.
	Better int `json:"better"`
}

// Series returns the chronological history of the measurement called
// name. Entries that recorded "null" for it are skipped and counted
// in Series.Missing; entries that did not record it at all are
// skipped without being counted.
func (s *Suite) Series(name string) *Series {
	ser := &Series{Suite: s.Name, Name: name, Points: []Point{}}
	for i, e := range s.Entries {
		for _, m := range e.Benches {
			if m.Name != name {
				continue
			}
			if ser.Unit == "" {
				ser.Unit = m.Unit
			}
			v, ok := m.Value.Float()
			if !ok {
				ser.Missing++
				continue
			}
			ser.Points = append(ser.Points, Point{Index: i, Date: e.Date, Commit: e.Commit.ID, Value: v})
			ser.Better = Better(e.Tool)
		}
	}
	return ser
}

// Values returns the values of ser in order.
func (ser *Series) Values() []float64 {
	vs := make([]float64, len(ser.Points))
	for i, p := range ser.Points {
		vs[i] = p.Value
	}
	return vs
}

// CommitValues returns the values of ser recorded for the commit id,
// one per run.
func (ser *Series) CommitValues(id string) []float64 {
	var vs []float64
	for _, p := range ser.Points {
		if p.Commit == id {
			vs = append(vs, p.Value)
		}
	}
	return vs
}

// ResolveCommit returns the full ID of the unique commit in s whose
// ID starts with prefix.
func (s *Suite) ResolveCommit(prefix string) (string, error) {
	if prefix == "" {
		return "", errors.New("empty commit")
	}
	var match string
	for _, id := range s.Commits() {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if match != "" {
			return "", errors.Errorf("commit %q is ambiguous in suite %q", prefix, s.Name)
		}
		match = id
	}
	if match == "" {
		return "", errors.Errorf("commit %q not found in suite %q", prefix, s.Name)
	}
	return match, nil
}
