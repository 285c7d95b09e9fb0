// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yewstack/benchdata/benchdata"
	. "github.com/yewstack/benchdata/store"
	"github.com/yewstack/benchdata/store/dbtest"
)

func readDoc(t *testing.T) *benchdata.Document {
	t.Helper()
	doc, err := benchdata.ReadFile("../benchdata/testdata/data.js")
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func importDoc(t *testing.T, db *DB, doc *benchdata.Document) {
	t.Helper()
	n, err := db.Import(context.Background(), doc)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != doc.Len() {
		t.Fatalf("Import inserted %d entries, want %d", n, doc.Len())
	}
}

// TestDocumentRoundTrip verifies that a document imported into the
// database is reconstructed byte for byte.
func TestDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)
	doc := readDoc(t)
	importDoc(t, db, doc)

	got, err := db.Document(ctx, doc.RepoURL)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	var want, have bytes.Buffer
	if err := doc.WriteJS(&want); err != nil {
		t.Fatal(err)
	}
	if err := got.WriteJS(&have); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.String(), have.String()); diff != "" {
		t.Errorf("reconstructed document (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile("../benchdata/testdata/data.js")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, have.Bytes()) {
		t.Errorf("reconstructed document differs from testdata/data.js")
	}
}

func TestSeries(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)
	doc := readDoc(t)
	importDoc(t, db, doc)

	for _, s := range doc.Suites() {
		for _, name := range s.BenchNames() {
			got, err := db.Series(ctx, s.Name, name)
			if err != nil {
				t.Fatalf("Series(%q, %q): %v", s.Name, name, err)
			}
			if diff := cmp.Diff(s.Series(name), got); diff != "" {
				t.Errorf("Series(%q, %q) (-file +db):\n%s", s.Name, name, diff)
			}
		}
	}

	got, err := db.Series(ctx, "no such suite", "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Points) != 0 || got.Missing != 0 {
		t.Errorf("Series of unknown suite = %+v, want empty", got)
	}
}

func TestSeriesNull(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)
	at := time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)
	for i, v := range []benchdata.Value{benchdata.NewValue(100), benchdata.NullValue(), benchdata.NewValue(0)} {
		e := benchdata.NewEntry(commit("c"), benchdata.ToolCustomSmallerIsBetter, at.Add(time.Duration(i)*time.Hour),
			[]benchdata.Measurement{{Name: "b", Value: v}})
		if _, err := db.InsertEntry(ctx, "s", e); err != nil {
			t.Fatalf("InsertEntry %d: %v", i, err)
		}
	}
	ser, err := db.Series(ctx, "s", "b")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{100, 0}, ser.Values()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if ser.Missing != 1 {
		t.Errorf("Missing = %d, want 1", ser.Missing)
	}
}

func commit(id string) benchdata.Commit {
	return benchdata.Commit{ID: id, Timestamp: "2022-01-10T00:00:00Z"}
}

func TestInsertEntry(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)
	at := time.Date(2022, 1, 10, 12, 0, 0, 0, time.UTC)
	bench := []benchdata.Measurement{{Name: "b", Value: benchdata.NewValue(1)}}

	for i, suite := range []string{"s1", "s1", "s2", "s1"} {
		e := benchdata.NewEntry(commit("c"), benchdata.ToolGo, at, bench)
		if _, err := db.InsertEntry(ctx, suite, e); err != nil {
			t.Fatalf("InsertEntry #%d: %v", i, err)
		}
	}
	idx, err := db.InsertEntry(ctx, "s2", benchdata.NewEntry(commit("d"), benchdata.ToolGo, at.Add(time.Second), bench))
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}

	// Out of order.
	_, err = db.InsertEntry(ctx, "s1", benchdata.NewEntry(commit("e"), benchdata.ToolGo, at.Add(-time.Second), bench))
	if !errors.Is(err, benchdata.ErrOutOfOrder) {
		t.Errorf("InsertEntry of old entry: got %v, want ErrOutOfOrder", err)
	}

	// Invalid.
	_, err = db.InsertEntry(ctx, "s1", &benchdata.Entry{Date: at.UnixMilli()})
	var verr *benchdata.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("InsertEntry of invalid entry: got %v, want *ValidationError", err)
	}

	if _, err := db.InsertEntry(ctx, "", benchdata.NewEntry(commit("f"), benchdata.ToolGo, at, bench)); err == nil {
		t.Error("InsertEntry with empty suite succeeded")
	}

	n, err := db.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("CountEntries = %d, want 5", n)
	}
	suites, err := db.Suites(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"s1", "s2"}, suites); diff != "" {
		t.Errorf("Suites (-want +got):\n%s", diff)
	}
}

// TestImportIncremental verifies that importing a grown document only
// inserts the new entries.
func TestImportIncremental(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)
	doc := readDoc(t)
	importDoc(t, db, doc)

	n, err := db.Import(ctx, doc)
	if err != nil || n != 0 {
		t.Fatalf("second Import = %d, %v, want 0, nil", n, err)
	}

	s := doc.Suites()[0]
	last := s.Last()
	next := benchdata.NewEntry(last.Commit, last.Tool, time.UnixMilli(last.Date+1000), last.Benches)
	if err := doc.Append(s.Name, next); err != nil {
		t.Fatal(err)
	}
	n, err = db.Import(ctx, doc)
	if err != nil || n != 1 {
		t.Fatalf("Import of grown document = %d, %v, want 1, nil", n, err)
	}
	total, err := db.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != doc.Len() {
		t.Errorf("CountEntries = %d, want %d", total, doc.Len())
	}

	// A database that is ahead of the document cannot be synced.
	if _, err := db.Import(ctx, readDoc(t)); err == nil {
		t.Error("Import of shorter document succeeded")
	}
}
