// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes the Go benchmark format and
// converts between it and benchmark history entries.
//
// The format is documented at
// https://golang.org/design/14313-benchmark-format. Exporting a suite
// in this format lets tools such as benchstat analyze recorded
// history, and reading it lets `go test -bench` output be appended to
// a history file.
package benchfmt

import "strings"

// A Result is a single benchmark result and all of its measurements.
type Result struct {
	// Config is the set of key/value configuration pairs in
	// effect for this result, in the order they were first set.
	Config []Config

	// Name is the full benchmark name without the "Benchmark"
	// prefix, including sub-benchmark configuration.
	Name string

	// Iters is the number of iterations the values were averaged
	// over.
	Iters int

	// Values holds the measurements and their units.
	Values []Value

	fileName string
	line     int
}

// A Config is a single key/value configuration pair.
type Config struct {
	Key   string
	Value string
}

// A Value is a single value/unit measurement from a benchmark result.
//
// Value and Unit are tidied to base units like "sec" and "B".
// OrigValue and OrigUnit, if OrigUnit is non-empty, give the value as
// it was read.
type Value struct {
	Value float64
	Unit  string

	OrigValue float64
	OrigUnit  string
}

// Pos returns the file name and line number of a Result that was read
// by a Reader, or "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r that shares no state with it.
func (r *Result) Clone() *Result {
	r2 := *r
	r2.Config = append([]Config(nil), r.Config...)
	r2.Values = append([]Value(nil), r.Values...)
	return &r2
}

// GetConfig returns the value of a configuration key, or "".
func (r *Result) GetConfig(key string) string {
	for _, c := range r.Config {
		if c.Key == key {
			return c.Value
		}
	}
	return ""
}

// SetConfig sets key to value, adding it if necessary. A value of ""
// deletes key.
func (r *Result) SetConfig(key, value string) {
	for i, c := range r.Config {
		if c.Key != key {
			continue
		}
		if value == "" {
			r.Config = append(r.Config[:i], r.Config[i+1:]...)
		} else {
			r.Config[i].Value = value
		}
		return
	}
	if value != "" {
		r.Config = append(r.Config, Config{key, value})
	}
}

// Value returns the measurement for the given tidied unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// Base returns the base part of the benchmark name, without any
// sub-benchmark configuration or GOMAXPROCS suffix.
func (r *Result) Base() string {
	name := r.Name
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return trimGomaxprocs(name)
}

// trimGomaxprocs removes a trailing "-<digits>" from name.
func trimGomaxprocs(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		c := name[i]
		if c == '-' && i < len(name)-1 {
			return name[:i]
		}
		if c < '0' || c > '9' {
			break
		}
	}
	return name
}
