// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yewstack/benchdata/benchdata"
)

func TestWriter(t *testing.T) {
	const input = `BenchmarkOne 1 1 ns/op

key: val
key1: val1

BenchmarkOne 1 1 ns/op

key:

BenchmarkOne 1 1 ns/op

key: a

BenchmarkOne 1 1 ns/op

key1: val2
key: b

BenchmarkOne 1 1 ns/op
BenchmarkTwo 1 1 no-tidy-B/op
`

	out := new(strings.Builder)
	w := NewWriter(out)
	r := NewReader(strings.NewReader(input), "test")
	for r.Scan() {
		if err := w.Write(r.Result()); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(input, out.String()); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestWriteSuite(t *testing.T) {
	d, err := benchdata.ReadFile("../benchdata/testdata/data.js")
	if err != nil {
		t.Fatal(err)
	}
	out := new(strings.Builder)
	w := NewWriter(out)
	if err := w.WriteSuite(d.Suite("Yew SSR benchmarks")); err != nil {
		t.Fatal(err)
	}
	const want = `suite: Yew SSR benchmarks
commit: e1f2a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4
date: 2022-01-11T11:20:00Z
tool: customSmallerIsBetter

Benchmarkbaseline 1 0.29 ms
Benchmarkhello/world 1 0.71 ms
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("WriteSuite (-want +got):\n%s", diff)
	}
}

func TestWriteSuiteSkipsNull(t *testing.T) {
	d, err := benchdata.ReadFile("../benchdata/testdata/data.js")
	if err != nil {
		t.Fatal(err)
	}
	out := new(strings.Builder)
	if err := NewWriter(out).WriteSuite(d.Suite("Yew master branch benchmarks (Lower is better)")); err != nil {
		t.Fatal(err)
	}

	// Read the export back: three runs of four benchmarks, less
	// the one null value.
	var names []string
	r := NewReader(strings.NewReader(out.String()), "export")
	for r.Scan() {
		res, ok := r.Result().(*Result)
		if !ok {
			t.Fatalf("unexpected record %v", r.Result())
		}
		names = append(names, res.GetConfig(KeyCommit)[:7]+" "+res.Name)
	}
	if len(names) != 11 {
		t.Fatalf("got %d results, want 11:\n%s", len(names), strings.Join(names, "\n"))
	}
	if names[0] != "4be9308 yew-struct-keyed/01_run1k" {
		t.Errorf("first result %q", names[0])
	}
	if !strings.Contains(out.String(), "Benchmarkyew-struct-keyed/21_ready-memory 1 1.2032737731933594 MiB") {
		t.Errorf("memory scenario not written in MiB:\n%s", out.String())
	}
}

func TestBenchName(t *testing.T) {
	for in, want := range map[string]string{
		"yew-struct-keyed 01_run1k": "yew-struct-keyed/01_run1k",
		"hello world":               "hello/world",
		"  spaced\tout  ":           "spaced/out",
		"baseline":                  "baseline",
	} {
		if got := BenchName(in); got != want {
			t.Errorf("BenchName(%q) = %q, want %q", in, got, want)
		}
	}
}
