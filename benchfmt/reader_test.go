// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseAll(t *testing.T, data string, setup ...func(r *Reader, sr io.Reader)) []Record {
	t.Helper()
	sr := strings.NewReader(data)
	r := NewReader(sr, "test")
	for _, f := range setup {
		f(r, sr)
	}
	var out []Record
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Result:
			res := rec.Clone()
			// Wipe position information for comparisons.
			res.fileName, res.line = "", 0
			out = append(out, res)
		case *SyntaxError:
			out = append(out, rec)
		default:
			t.Fatalf("unexpected result type %T", rec)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

type resultBuilder struct {
	res *Result
}

func r(name string, iters int) *resultBuilder {
	return &resultBuilder{&Result{Name: name, Iters: iters}}
}

func (b *resultBuilder) config(keyVals ...string) *resultBuilder {
	for i := 0; i < len(keyVals); i += 2 {
		b.res.Config = append(b.res.Config, Config{keyVals[i], keyVals[i+1]})
	}
	return b
}

func (b *resultBuilder) v(value float64, unit string) *resultBuilder {
	b.res.Values = append(b.res.Values, NewValue(value, unit))
	return b
}

var cmpRecords = cmp.AllowUnexported(Result{})

func TestReader(t *testing.T) {
	for _, test := range []struct {
		name, input string
		want        []Record
	}{
		{
			"basic",
			`key: value
BenchmarkOne 100 1 ns/op 2 B/op
BenchmarkTwo 300 4.5 ns/op
`,
			[]Record{
				r("One", 100).config("key", "value").v(1, "ns/op").v(2, "B/op").res,
				r("Two", 300).config("key", "value").v(4.5, "ns/op").res,
			},
		},
		{
			"weird",
			`
BenchmarkSpaces    1   1   ns/op
BenchmarkHugeVal 1 9999999999999999999999999999999 ns/op
BenchmarkEmSpace  1  1  ns/op
`,
			[]Record{
				r("Spaces", 1).v(1, "ns/op").res,
				r("HugeVal", 1).v(9999999999999999999999999999999, "ns/op").res,
				r("EmSpace", 1).v(1, "ns/op").res,
			},
		},
		{
			"file keys",
			`key1:    	 value
: not a key
ab:not a key
a b: also not a key
key2: value

BenchmarkOne 100 1 ns/op
`,
			[]Record{
				r("One", 100).config("key1", "value", "key2", "value").v(1, "ns/op").res,
			},
		},
		{
			"bad lines",
			`not a benchmark
BenchmarkTailingSpaceNoIter 
BenchmarkBadIter abc
BenchmarkHugeIter 9999999999999999999999999999999
BenchmarkMissingVal 100
BenchmarkBadVal 100 abc
BenchmarkMissingUnit 100 1
BenchmarkMissingUnit2 100 1 ns/op 2
also not a benchmark
`,
			[]Record{
				&SyntaxError{"test", 2, "missing iteration count"},
				&SyntaxError{"test", 3, "parsing iteration count: invalid syntax"},
				&SyntaxError{"test", 4, "parsing iteration count: value out of range"},
				&SyntaxError{"test", 5, "missing measurements"},
				&SyntaxError{"test", 6, "parsing measurement: invalid syntax"},
				&SyntaxError{"test", 7, "missing units"},
				&SyntaxError{"test", 8, "missing units"},
			},
		},
		{
			"remove and overwrite keys",
			`key: value
key:
key1: first
key2: second
key1: third
BenchmarkOne 100 1 ns/op
`,
			[]Record{
				r("One", 100).config("key1", "third", "key2", "second").v(1, "ns/op").res,
			},
		},
		{
			// go test -v prints just the benchmark name
			// on a line when starting each benchmark.
			"verbose",
			`BenchmarkOne
BenchmarkOne 100 1 ns/op
`,
			[]Record{
				r("One", 100).v(1, "ns/op").res,
			},
		},
		{
			"pre-scaled units",
			`BenchmarkRun1k 1 170.614 ms 1.2 MiB
`,
			[]Record{
				r("Run1k", 1).v(170.614, "ms").v(1.2, "MiB").res,
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			if diff := cmp.Diff(test.want, got, cmpRecords); diff != "" {
				t.Errorf("records (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReaderTidies(t *testing.T) {
	got := parseAll(t, "BenchmarkX 1 170 ms\n")
	res := got[0].(*Result)
	if v, ok := res.Value("sec"); !ok || math.Abs(v-0.17) > 1e-12 {
		t.Errorf("Value(sec) = %v, %v, want 0.17", v, ok)
	}
	if res.Values[0].OrigValue != 170 || res.Values[0].OrigUnit != "ms" {
		t.Errorf("original value not kept: %+v", res.Values[0])
	}
}

func TestReaderInitialConfig(t *testing.T) {
	got := parseAll(t, `
Benchmark1 100 1 ns/op
key1: file1
key3: file3
Benchmark2 100 1 ns/op
key2:
Benchmark3 100 1 ns/op
	`, func(r *Reader, sr io.Reader) {
		r.Reset(sr, "test", "key1", "initial1", "key2", "initial2")
	})
	want := []Record{
		r("1", 100).v(1, "ns/op").config("key1", "initial1", "key2", "initial2").res,
		r("2", 100).v(1, "ns/op").config("key1", "file1", "key2", "initial2", "key3", "file3").res,
		r("3", 100).v(1, "ns/op").config("key1", "file1", "key3", "file3").res,
	}
	if diff := cmp.Diff(want, got, cmpRecords); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
}

func TestReaderNoScan(t *testing.T) {
	r := NewReader(strings.NewReader(""), "")
	if _, ok := r.Result().(*SyntaxError); !ok {
		t.Errorf("Result before Scan = %v, want *SyntaxError", r.Result())
	}
	if r.Scan() {
		t.Errorf("Scan of empty input succeeded")
	}
}
