// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trend reduces a benchmark series to one row per commit.
//
// A commit that was benchmarked several times contributes several
// points to a benchdata.Series. A Trend aggregates those re-runs so
// that consecutive commits can be compared.
package trend

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/yewstack/benchdata/benchdata"
)

// A Row summarizes all runs of one commit.
type Row struct {
	Commit string  `json:"commit"`
	Index  int     `json:"index"` // suite index of the first run
	Date   int64   `json:"date"`  // date of the first run
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Runs   int     `json:"runs"`

	// Delta is the relative change of Mean from the previous row,
	// such as 0.05 for a 5% increase. It is 0 for the first row.
	Delta float64 `json:"delta"`

	// Change is +1 if Delta is an improvement for the benchmark's
	// tool, -1 if it is a regression, and 0 if there is no change or
	// the tool does not say which direction is better.
	Change int `json:"change"`
}

// Verdict describes r.Change as "improvement", "regression" or "".
func (r Row) Verdict() string {
	switch r.Change {
	case 1:
		return "improvement"
	case -1:
		return "regression"
	}
	return ""
}

// A Trend is the per-commit history of one benchmark.
type Trend struct {
	Suite string `json:"suite"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`

	// Better is benchdata.Better of the series' tool.
	Better int   `json:"better"`
	Rows   []Row `json:"rows"`
}

// Of computes the trend of ser. Rows are in order of each commit's
// first run. Null values never reach ser, so they do not affect the
// aggregates.
func Of(ser *benchdata.Series) *Trend {
	tr := &Trend{Suite: ser.Suite, Name: ser.Name, Unit: ser.Unit, Better: ser.Better, Rows: []Row{}}
	if len(ser.Points) == 0 {
		return tr
	}

	agg := ggstat.Agg("commit")(
		ggstat.AggMean("value"),
		ggstat.AggMin("value", "index", "date"),
		ggstat.AggMax("value"),
		ggstat.AggCount("runs"),
	).F(Table(ser))
	t := agg.Table(agg.Tables()[0])

	commits := t.MustColumn("commit").([]string)
	means := t.MustColumn("mean value").([]float64)
	mins := t.MustColumn("min value").([]float64)
	maxes := t.MustColumn("max value").([]float64)
	firsts := t.MustColumn("min index").([]int)
	dates := t.MustColumn("min date").([]int64)
	runs := t.MustColumn("runs").([]int)

	for i, c := range commits {
		row := Row{
			Commit: c,
			Index:  firsts[i],
			Date:   dates[i],
			Mean:   means[i],
			Min:    mins[i],
			Max:    maxes[i],
			Runs:   runs[i],
		}
		if i > 0 && means[i-1] != 0 {
			row.Delta = means[i]/means[i-1] - 1
			switch {
			case row.Delta > 0:
				row.Change = ser.Better
			case row.Delta < 0:
				row.Change = -ser.Better
			}
		}
		tr.Rows = append(tr.Rows, row)
	}
	return tr
}

// Table returns the points of ser as a table with columns "index",
// "date", "commit" and "value".
func Table(ser *benchdata.Series) *table.Table {
	n := len(ser.Points)
	idx, dates := make([]int, n), make([]int64, n)
	commits, values := make([]string, n), make([]float64, n)
	for i, p := range ser.Points {
		idx[i], dates[i], commits[i], values[i] = p.Index, p.Date, p.Commit, p.Value
	}
	return new(table.Builder).
		Add("index", idx).
		Add("date", dates).
		Add("commit", commits).
		Add("value", values).
		Done()
}

// Last returns the last row of tr, or false if tr is empty.
func (tr *Trend) Last() (Row, bool) {
	if len(tr.Rows) == 0 {
		return Row{}, false
	}
	return tr.Rows[len(tr.Rows)-1], true
}
