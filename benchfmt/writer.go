// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/benchunit"
	"github.com/yewstack/benchdata/scenario"
)

// A Writer writes the Go benchmark format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first  bool
	config []Config // configuration in effect in the output
}

// NewWriter returns a writer that writes Go benchmark results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

// Write writes Record rec to w. If rec is a *Result whose
// configuration differs from the configuration last written, it
// first emits the configuration lines that change it. Values with a
// non-empty OrigUnit are written in their original form.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Result:
		w.writeResult(rec)
	case *SyntaxError:
		return nil
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}

	// Writes to buf cannot fail.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) writeResult(res *Result) {
	if !sameConfig(w.config, res.Config) {
		w.writeConfig(res)
	}

	fmt.Fprintf(&w.buf, "Benchmark%s %d", res.Name, res.Iters)
	for _, val := range res.Values {
		if val.OrigUnit == "" {
			fmt.Fprintf(&w.buf, " %v %s", val.Value, val.Unit)
		} else {
			fmt.Fprintf(&w.buf, " %v %s", val.OrigValue, val.OrigUnit)
		}
	}
	w.buf.WriteByte('\n')
	w.first = false
}

func sameConfig(a, b []Config) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (w *Writer) writeConfig(res *Result) {
	if !w.first {
		// Configuration blocks after results get an extra blank.
		w.buf.WriteByte('\n')
	}

	// Deleted and changed keys, in the order they were written.
	for _, have := range w.config {
		want := res.GetConfig(have.Key)
		switch {
		case want == "":
			fmt.Fprintf(&w.buf, "%s:\n", have.Key)
		case want != have.Value:
			fmt.Fprintf(&w.buf, "%s: %s\n", have.Key, want)
		}
	}
	// New keys.
	old := Result{Config: w.config}
	for _, cfg := range res.Config {
		if old.GetConfig(cfg.Key) == "" {
			fmt.Fprintf(&w.buf, "%s: %s\n", cfg.Key, cfg.Value)
		}
	}
	w.buf.WriteByte('\n')

	// Keep the order keys were first written so later changes are
	// reported consistently.
	next := make([]Config, 0, len(res.Config))
	for _, have := range w.config {
		if v := res.GetConfig(have.Key); v != "" {
			next = append(next, Config{have.Key, v})
		}
	}
	for _, cfg := range res.Config {
		if old.GetConfig(cfg.Key) == "" {
			next = append(next, cfg)
		}
	}
	w.config = next
	w.first = true
}

// Configuration keys written by WriteSuite.
const (
	KeySuite  = "suite"
	KeyCommit = "commit"
	KeyDate   = "date"
	KeyTool   = "tool"
)

// WriteSuite writes every entry of s as a block of results, one per
// non-null measurement, each with one iteration. The block's
// configuration records the suite, commit, run date and tool.
//
// Measurement names are converted with BenchName and values are
// written in the unit given by scenario.Unit, or "value" if the
// measurement is dimensionless.
func (w *Writer) WriteSuite(s *benchdata.Suite) error {
	for _, e := range s.Entries {
		cfg := entryConfig(s.Name, e)
		for _, m := range e.Benches {
			v, ok := m.Value.Float()
			if !ok {
				continue
			}
			unit := scenario.Unit(m.Name, m.Unit)
			if unit == "" {
				unit = "value"
			}
			res := &Result{
				Config: cfg,
				Name:   BenchName(m.Name),
				Iters:  1,
				Values: []Value{NewValue(v, unit)},
			}
			if err := w.Write(res); err != nil {
				return err
			}
		}
	}
	return nil
}

func entryConfig(suite string, e *benchdata.Entry) []Config {
	var res Result
	res.SetConfig(KeySuite, strings.TrimSpace(suite))
	res.SetConfig(KeyCommit, e.Commit.ID)
	if e.Date > 0 {
		res.SetConfig(KeyDate, time.UnixMilli(e.Date).UTC().Format(time.RFC3339))
	}
	res.SetConfig(KeyTool, e.Tool)
	return res.Config
}

// NewValue returns the Value for val in unit, tidied to base units.
func NewValue(val float64, unit string) Value {
	tidyVal, tidyUnit := benchunit.Tidy(val, unit)
	if tidyUnit == unit && tidyVal == val {
		return Value{Value: val, Unit: unit}
	}
	return Value{Value: tidyVal, Unit: tidyUnit, OrigValue: val, OrigUnit: unit}
}

// BenchName converts a measurement name into a benchmark name: runs
// of white space become "/", so "yew-hooks 01_run1k" becomes
// "yew-hooks/01_run1k", a sub-benchmark of "yew-hooks".
func BenchName(name string) string {
	return strings.Join(strings.FieldsFunc(name, unicode.IsSpace), "/")
}
