// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const (
	masterSuite = "Yew master branch benchmarks (Lower is better)"
	ssrSuite    = "Yew SSR benchmarks"
	firstCommit = "4be9308b846904bb55608a8d28b5dade66bdb6e1"
	rerunCommit = "9d6ab3d0a4c0e53f5fa2b10e8e5e0c9b2b9f7c11"
)

func readTestdata(t *testing.T) (*Document, []byte) {
	t.Helper()
	data, err := os.ReadFile("testdata/data.js")
	if err != nil {
		t.Fatal(err)
	}
	d, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	return d, data
}

func TestRoundTrip(t *testing.T) {
	d, data := readTestdata(t)

	var buf bytes.Buffer
	if err := d.WriteJS(&buf); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(data), buf.String()); diff != "" {
		t.Errorf("WriteJS did not reproduce the input (-want +got):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	d, _ := readTestdata(t)

	var buf bytes.Buffer
	if err := d.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	d2, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse of plain JSON: %v", err)
	}
	if got, want := d2.SuiteNames(), d.SuiteNames(); !cmp.Equal(got, want) {
		t.Errorf("suites = %q, want %q", got, want)
	}
	if d2.Len() != d.Len() {
		t.Errorf("Len = %d, want %d", d2.Len(), d.Len())
	}
}

func TestParseNullEntry(t *testing.T) {
	for _, input := range []string{
		`{"entries": {"s": [null]}}`,
		`window.BENCHMARK_DATA = {"entries": {"a": [], "s": [{"commit": {"id": "x"}}, null]}}`,
	} {
		_, err := ParseBytes([]byte(input))
		if err == nil {
			t.Errorf("ParseBytes(%s) succeeded", input)
			continue
		}
		if !strings.Contains(err.Error(), `suite "s": entry`) || !strings.Contains(err.Error(), "is null") {
			t.Errorf("ParseBytes(%s) error %q does not name the entry", input, err)
		}
	}
}

func TestDocumentShape(t *testing.T) {
	d, _ := readTestdata(t)

	if d.LastUpdate != 1641900000000 {
		t.Errorf("LastUpdate = %d", d.LastUpdate)
	}
	if d.RepoURL != "https://github.com/yewstack/yew" {
		t.Errorf("RepoURL = %q", d.RepoURL)
	}
	if got, want := d.SuiteNames(), []string{masterSuite, ssrSuite}; !cmp.Equal(got, want) {
		t.Errorf("SuiteNames = %q, want %q", got, want)
	}
	s := d.Suite(masterSuite)
	if len(s.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(s.Entries))
	}
	e := s.Entries[0]
	if e.Commit.ID != firstCommit || e.Commit.Author.Username != "ada" || e.Tool != ToolCustomSmallerIsBetter {
		t.Errorf("unexpected first entry %+v", e)
	}
	if e.Commit.Distinct == nil || !*e.Commit.Distinct {
		t.Errorf("distinct not preserved")
	}
	if got := s.Entries[1].Commit.Message; !strings.Contains(got, "<Suspense> & friends") {
		t.Errorf("message = %q", got)
	}
	if d.Suite("nope") != nil {
		t.Errorf("Suite(nope) != nil")
	}
}

func TestBenchNamesAndRuns(t *testing.T) {
	d, _ := readTestdata(t)
	s := d.Suite(masterSuite)

	want := []string{
		"yew-struct-keyed 01_run1k",
		"yew-struct-keyed 02_replace1k",
		"yew-struct-keyed 21_ready-memory",
		"yew-struct-keyed 34_startup-totalbytes",
	}
	if diff := cmp.Diff(want, s.BenchNames()); diff != "" {
		t.Errorf("BenchNames (-want +got):\n%s", diff)
	}
	if got := len(s.Runs(rerunCommit)); got != 2 {
		t.Errorf("Runs(rerun) = %d entries, want 2", got)
	}
	if got := s.Commits(); !cmp.Equal(got, []string{firstCommit, rerunCommit}) {
		t.Errorf("Commits = %q", got)
	}
}

func TestSeries(t *testing.T) {
	d, _ := readTestdata(t)
	s := d.Suite(masterSuite)

	ser := s.Series("yew-struct-keyed 02_replace1k")
	want := []Point{
		{Index: 0, Date: 1641835900541, Commit: firstCommit, Value: 191.017},
		{Index: 2, Date: 1641896000000, Commit: rerunCommit, Value: 190.25},
	}
	if diff := cmp.Diff(want, ser.Points); diff != "" {
		t.Errorf("Series points (-want +got):\n%s", diff)
	}
	if ser.Missing != 1 {
		t.Errorf("Missing = %d, want 1", ser.Missing)
	}
	if ser.Better != -1 {
		t.Errorf("Better = %d, want -1 for %s", ser.Better, ToolCustomSmallerIsBetter)
	}
	if got := ser.CommitValues(rerunCommit); !cmp.Equal(got, []float64{190.25}) {
		t.Errorf("CommitValues = %v", got)
	}

	empty := s.Series("no such bench")
	if len(empty.Points) != 0 || empty.Missing != 0 {
		t.Errorf("unknown bench: got %+v", empty)
	}
}

// TestSeriesNull pins down the handling of the "null" sentinel:
// it is filtered from the series, never reported as zero.
func TestSeriesNull(t *testing.T) {
	for _, test := range []struct {
		value   string
		want    []float64
		missing int
	}{
		{"100", []float64{100}, 0},
		{"null", []float64{}, 1},
		{"0", []float64{0}, 0},
	} {
		v, err := ParseValue(test.value)
		if err != nil {
			t.Fatalf("ParseValue(%q): %v", test.value, err)
		}
		s := &Suite{Name: "s", Entries: []*Entry{{
			Commit:  Commit{ID: "c"},
			Date:    1,
			Benches: []Measurement{{Name: "X", Value: v}},
		}}}
		ser := s.Series("X")
		if diff := cmp.Diff(test.want, ser.Values()); diff != "" {
			t.Errorf("value %q: series (-want +got):\n%s", test.value, diff)
		}
		if ser.Missing != test.missing {
			t.Errorf("value %q: Missing = %d, want %d", test.value, ser.Missing, test.missing)
		}
	}
}

func TestValidate(t *testing.T) {
	d, _ := readTestdata(t)
	if err := d.Validate(); err != nil {
		t.Fatalf("testdata: %v", err)
	}

	bad := New("https://example.com/repo")
	bad.suites = []*Suite{{Name: "s", Entries: []*Entry{
		{Commit: Commit{ID: "a", Timestamp: "2022-01-10T22:24:53+05:00"}, Date: 20,
			Benches: []Measurement{{Name: "x", Value: Value{text: "1e3"}}}},
		{Commit: Commit{ID: "", Timestamp: "yesterday"}, Date: 10,
			Benches: []Measurement{{Name: "x", Value: Value{text: "NaN"}}, {Name: "y"}}},
	}}}
	err := bad.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate = %v, want *ValidationError", err)
	}
	var got []string
	for _, p := range verr.Problems {
		got = append(got, p.String())
	}
	want := []string{
		`suite "s" entry 1: missing commit id`,
		`suite "s" entry 1: commit timestamp "yesterday" is not ISO-8601`,
		`suite "s" entry 1 bench "x": value "NaN" is neither a finite number nor "null"`,
		`suite "s" entry 1 bench "y": empty value`,
		`suite "s" entry 1: date 10 is before previous entry's 20`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems (-want +got):\n%s", diff)
	}
}

func TestAppend(t *testing.T) {
	d := New("https://github.com/yewstack/yew")
	commit := Commit{ID: "abc", Timestamp: "2022-01-10T22:24:53+05:00"}
	at := time.UnixMilli(1000)

	e1 := NewEntry(commit, ToolCustomSmallerIsBetter, at, []Measurement{{Name: "x", Value: NewValue(1.5)}})
	if err := d.Append("suite", e1); err != nil {
		t.Fatal(err)
	}
	if d.LastUpdate != 1000 {
		t.Errorf("LastUpdate = %d, want 1000", d.LastUpdate)
	}

	// Re-running the same commit at the same time is allowed.
	e2 := NewEntry(commit, ToolCustomSmallerIsBetter, at, []Measurement{{Name: "x", Value: NullValue()}})
	if err := d.Append("suite", e2); err != nil {
		t.Fatal(err)
	}

	old := NewEntry(commit, ToolCustomSmallerIsBetter, time.UnixMilli(999), nil)
	if err := d.Append("suite", old); !errors.Is(err, ErrOutOfOrder) {
		t.Errorf("Append(old) = %v, want ErrOutOfOrder", err)
	}

	invalid := NewEntry(Commit{}, ToolCustomSmallerIsBetter, time.UnixMilli(2000), nil)
	var verr *ValidationError
	if err := d.Append("other", invalid); !errors.As(err, &verr) {
		t.Errorf("Append(invalid) = %v, want *ValidationError", err)
	}
	if d.Suite("other") != nil {
		t.Errorf("rejected entry created a suite")
	}
	if err := d.Append("suite", nil); err == nil {
		t.Errorf("Append(nil) succeeded")
	}
	if got := len(d.Suite("suite").Entries); got != 2 {
		t.Errorf("suite has %d entries, want 2", got)
	}

	var buf bytes.Buffer
	if err := d.WriteJS(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"value": "1.5"`) || !strings.Contains(buf.String(), `"value": "null"`) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestValue(t *testing.T) {
	for _, test := range []struct {
		json   string
		text   string
		float  float64
		ok     bool
		output string
	}{
		{`"170.614"`, "170.614", 170.614, true, `"170.614"`},
		{`"null"`, "null", 0, false, `"null"`},
		{`null`, "null", 0, false, `null`},
		{`42.5`, "42.5", 42.5, true, `42.5`},
		{`"30.182499999999997"`, "30.182499999999997", 30.182499999999997, true, `"30.182499999999997"`},
	} {
		var v Value
		if err := v.UnmarshalJSON([]byte(test.json)); err != nil {
			t.Errorf("%s: %v", test.json, err)
			continue
		}
		if v.String() != test.text {
			t.Errorf("%s: text = %q, want %q", test.json, v.String(), test.text)
		}
		f, ok := v.Float()
		if ok != test.ok || f != test.float {
			t.Errorf("%s: Float() = %v, %v, want %v, %v", test.json, f, ok, test.float, test.ok)
		}
		out, err := v.MarshalJSON()
		if err != nil || string(out) != test.output {
			t.Errorf("%s: MarshalJSON = %s, %v, want %s", test.json, out, err, test.output)
		}
	}

	if _, err := ParseValue("fast"); err == nil {
		t.Errorf("ParseValue(fast) succeeded")
	}
	if _, err := ParseValue("Inf"); err == nil {
		t.Errorf("ParseValue(Inf) succeeded")
	}
}

func TestParseCustom(t *testing.T) {
	in := `[
	{"name": "01_run1k", "unit": "ms", "value": 170.6},
	{"name": "02_replace1k", "unit": "", "value": "191.017", "range": "± 2%"},
	{"name": "03_update", "unit": "", "value": null}
]`
	ms, err := ParseCustom(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d measurements", len(ms))
	}
	if f, _ := ms[0].Value.Float(); f != 170.6 || ms[0].Unit != "ms" {
		t.Errorf("first = %+v", ms[0])
	}
	if ms[1].Range != "± 2%" {
		t.Errorf("range = %q", ms[1].Range)
	}
	if !ms[2].Value.IsNull() {
		t.Errorf("third value = %q, want null", ms[2].Value)
	}

	if _, err := ParseCustom(strings.NewReader(`[{"name": "x", "value": "slow"}]`)); err == nil {
		t.Errorf("ParseCustom accepted a non-numeric value")
	}
}

func TestResolveCommit(t *testing.T) {
	d, _ := readTestdata(t)
	s := d.Suite(masterSuite)
	if id, err := s.ResolveCommit("4be9"); err != nil || id != firstCommit {
		t.Errorf("ResolveCommit(4be9) = %q, %v", id, err)
	}
	if _, err := s.ResolveCommit("ffff"); err == nil {
		t.Errorf("ResolveCommit(ffff) succeeded")
	}
}
