// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/chart"
	"github.com/yewstack/benchdata/framework"
	"github.com/yewstack/benchdata/trend"
)

// dataJS serves the history file as JavaScript.
func (a *App) dataJS(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	doc, err := a.load(r.Context())
	if err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := doc.WriteJS(&buf); err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(buf.Bytes())
}

// suiteInfo is the /api/suites description of a suite.
type suiteInfo struct {
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	Commits  int    `json:"commits"`
	Benches  int    `json:"benches"`
	LastDate int64  `json:"lastDate"`
}

func describe(s *benchdata.Suite) suiteInfo {
	info := suiteInfo{
		Name:    s.Name,
		Entries: len(s.Entries),
		Commits: len(s.Commits()),
		Benches: len(s.BenchNames()),
	}
	if last := s.Last(); last != nil {
		info.LastDate = last.Date
	}
	return info
}

func (a *App) suites(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	doc, err := a.load(r.Context())
	if err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	infos := []suiteInfo{}
	for _, s := range doc.Suites() {
		infos = append(infos, describe(s))
	}
	a.writeJSON(w, r, infos)
}

// suite returns the suite named by the "suite" parameter, replying
// with an error if there is none.
func (a *App) suite(w http.ResponseWriter, r *http.Request) (*benchdata.Suite, bool) {
	name := r.FormValue("suite")
	if name == "" {
		a.fail(w, r, http.StatusBadRequest, errors.New("missing suite parameter"))
		return nil, false
	}
	doc, err := a.load(r.Context())
	if err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	s := doc.Suite(name)
	if s == nil {
		a.fail(w, r, http.StatusNotFound, errors.Wrapf(benchdata.ErrNoSuite, "%q", name))
		return nil, false
	}
	return s, true
}

func (a *App) benches(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	s, ok := a.suite(w, r)
	if !ok {
		return
	}
	names := s.BenchNames()
	if names == nil {
		names = []string{}
	}
	a.writeJSON(w, r, names)
}

// lookupSeries returns the series of the "suite" and "bench"
// parameters, from the database if there is one.
func (a *App) lookupSeries(ctx context.Context, w http.ResponseWriter, r *http.Request) (*benchdata.Series, bool) {
	suite, bench := r.FormValue("suite"), r.FormValue("bench")
	if suite == "" || bench == "" {
		a.fail(w, r, http.StatusBadRequest, errors.New("missing suite or bench parameter"))
		return nil, false
	}
	var ser *benchdata.Series
	if a.DB != nil {
		var err error
		if ser, err = a.DB.Series(ctx, suite, bench); err != nil {
			a.fail(w, r, http.StatusInternalServerError, err)
			return nil, false
		}
	} else {
		s, ok := a.suite(w, r)
		if !ok {
			return nil, false
		}
		ser = s.Series(bench)
	}
	if len(ser.Points) == 0 && ser.Missing == 0 {
		a.fail(w, r, http.StatusNotFound, errors.Errorf("no results for %q in suite %q", bench, suite))
		return nil, false
	}
	return ser, true
}

func (a *App) series(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	if ser, ok := a.lookupSeries(r.Context(), w, r); ok {
		a.writeJSON(w, r, ser)
	}
}

func (a *App) trend(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	if ser, ok := a.lookupSeries(r.Context(), w, r); ok {
		a.writeJSON(w, r, trend.Of(ser))
	}
}

// frameworks serves the framework comparison of the last run of a
// commit, or of the suite's last run if there is no commit parameter.
func (a *App) frameworks(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	s, ok := a.suite(w, r)
	if !ok {
		return
	}
	e := s.Last()
	if commit := r.FormValue("commit"); commit != "" {
		id, err := s.ResolveCommit(commit)
		if err != nil {
			a.fail(w, r, http.StatusNotFound, err)
			return
		}
		runs := s.Runs(id)
		e = runs[len(runs)-1]
	}
	if e == nil {
		a.fail(w, r, http.StatusNotFound, errors.Errorf("suite %q has no runs", s.Name))
		return
	}
	a.writeJSON(w, r, framework.Compare(s.Name, e))
}

// chart serves the chart of a series as PNG, or as SVG with
// format=svg.
func (a *App) chart(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	format := chart.PNG
	if f := r.FormValue("format"); f != "" {
		var err error
		if format, err = chart.ParseFormat(f); err != nil {
			a.fail(w, r, http.StatusBadRequest, err)
			return
		}
	}
	ser, ok := a.lookupSeries(r.Context(), w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, ser, chart.Options{Format: format}); err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if format == chart.SVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Write(buf.Bytes())
}
