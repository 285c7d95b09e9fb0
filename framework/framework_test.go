// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framework

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yewstack/benchdata/benchdata"
)

func entry(tool string, results ...interface{}) *benchdata.Entry {
	e := &benchdata.Entry{
		Commit: benchdata.Commit{ID: "abc"},
		Date:   1000,
		Tool:   tool,
	}
	for i := 0; i < len(results); i += 2 {
		v := benchdata.NullValue()
		if f, ok := results[i+1].(float64); ok {
			v = benchdata.NewValue(f)
		}
		e.Benches = append(e.Benches, benchdata.Measurement{Name: results[i].(string), Value: v})
	}
	return e
}

func TestCompare(t *testing.T) {
	e := entry(benchdata.ToolCustomSmallerIsBetter,
		"vanillajs-keyed 01_run1k", 40.0,
		"yew-keyed 01_run1k", 60.0,
		"yew-keyed 02_replace1k", nil,
		"vanillajs-keyed 04_select1k", 5.0,
		"yew-keyed 04_select1k", 10.0,
		"yew-keyed 21_ready-memory", 2.0,
		"vanillajs-keyed 21_ready-memory", 1.0,
		"yew-keyed 34_startup-totalbytes", 300.0,
		"baseline", 0.29,
	)
	c := Compare("s", e)

	if diff := cmp.Diff([]string{"vanillajs-keyed", "yew-keyed"}, c.Frameworks); diff != "" {
		t.Errorf("frameworks (-want +got):\n%s", diff)
	}
	want := []Row{
		{ID: "01_run1k", Label: "create rows", Kind: "cpu", Unit: "ms", Best: "vanillajs-keyed", Results: map[string]Result{
			"vanillajs-keyed": {Value: 40, Factor: 1, Class: "c00"},
			"yew-keyed":       {Value: 60, Factor: 1.5, Class: "c04"},
		}},
		// Both are faster than one frame, so they tie.
		{ID: "04_select1k", Label: "select row", Kind: "cpu", Unit: "ms", Best: "vanillajs-keyed", Results: map[string]Result{
			"vanillajs-keyed": {Value: 5, Factor: 1, Class: "c00"},
			"yew-keyed":       {Value: 10, Factor: 1, Class: "c00"},
		}},
		{ID: "21_ready-memory", Label: "ready memory", Kind: "memory", Unit: "MiB", Best: "vanillajs-keyed", Results: map[string]Result{
			"vanillajs-keyed": {Value: 1, Factor: 1, Class: "c00"},
			"yew-keyed":       {Value: 2, Factor: 2, Class: "c08"},
		}},
		{ID: "34_startup-totalbytes", Label: "total kilobyte weight", Kind: "size", Unit: "KiB", Best: "yew-keyed", Results: map[string]Result{
			"yew-keyed": {Value: 300, Factor: 1, Class: "c00"},
		}},
	}
	if diff := cmp.Diff(want, c.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	wantMeans := map[string]map[string]float64{
		"vanillajs-keyed": {"cpu": 1, "memory": 1},
		"yew-keyed":       {"cpu": 1.25, "memory": 2, "size": 1},
	}
	if diff := cmp.Diff(wantMeans, c.Means); diff != "" {
		t.Errorf("means (-want +got):\n%s", diff)
	}
}

func TestCompareBiggerIsBetter(t *testing.T) {
	c := Compare("s", entry(benchdata.ToolCustomBiggerIsBetter,
		"a 01_run1k", 20.0,
		"b 01_run1k", 40.0,
	))
	if len(c.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(c.Rows))
	}
	row := c.Rows[0]
	if row.Best != "b" || row.Results["a"].Factor != 2 || row.Results["b"].Factor != 1 {
		t.Errorf("row = %+v", row)
	}
}

func TestCompareZero(t *testing.T) {
	c := Compare("s", entry(benchdata.ToolCustomSmallerIsBetter,
		"a 21_ready-memory", 0.0,
		"b 21_ready-memory", 1.0,
	))
	row := c.Rows[0]
	if row.Best != "a" || row.Results["a"].Factor != 1 {
		t.Errorf("row = %+v", row)
	}
	if r := row.Results["b"]; r.Factor != 0 || r.Class != "" {
		t.Errorf("factor against zero = %+v, want undefined", r)
	}
	if _, ok := c.Means["b"]; ok {
		t.Errorf("undefined factor counted in means: %v", c.Means)
	}
}

func TestCompareNoFrameworks(t *testing.T) {
	d, err := benchdata.ReadFile("../benchdata/testdata/data.js")
	if err != nil {
		t.Fatal(err)
	}
	s := d.Suite("Yew SSR benchmarks")
	c := Compare(s.Name, s.Last())
	if len(c.Frameworks) != 0 || len(c.Rows) != 0 {
		t.Errorf("got %+v, want an empty comparison", c)
	}
}

func TestColorClass(t *testing.T) {
	for _, test := range []struct {
		factor float64
		want   string
	}{
		{0.5, "c00"},
		{1, "c00"},
		{1.124, "c00"},
		{1.125, "c01"},
		{2.1, "c08"},
		{3.9, "c14"},
		{4, "c15"},
		{10, "c15"},
	} {
		if got := ColorClass(test.factor); got != test.want {
			t.Errorf("ColorClass(%v) = %q, want %q", test.factor, got, test.want)
		}
	}
}
