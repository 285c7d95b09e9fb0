// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framework compares the frameworks measured in one benchmark
// run.
//
// A run of the browser framework benchmark records every scenario for
// each framework, as measurements named "<framework> <scenario>". For
// each scenario, every framework's value is divided by the best value
// of any framework, giving a factor of 1 for the best and larger
// factors for slower or bigger ones. The factors of one framework are
// averaged per scenario kind (cpu, memory, startup, size).
package framework

import (
	"fmt"
	"math"
	"sort"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/scenario"
)

// CPUFloor is the smallest CPU duration in milliseconds that factors
// distinguish: one frame at 60Hz. Faster results count as CPUFloor.
const CPUFloor = 1000.0 / 60

// A Result is one framework's value for a scenario.
type Result struct {
	Value float64 `json:"value"`

	// Factor is Value relative to the best value for the scenario,
	// at least 1. It is 0 if the ratio is undefined.
	Factor float64 `json:"factor"`
	Class  string  `json:"class,omitempty"` // ColorClass(Factor)
}

// A Row holds the results of every framework for one scenario.
type Row struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Kind    string            `json:"kind"`
	Unit    string            `json:"unit"`
	Best    string            `json:"best"`    // framework with factor 1
	Results map[string]Result `json:"results"` // by framework
}

// A Comparison is the framework table of one run.
type Comparison struct {
	Suite      string   `json:"suite"`
	Commit     string   `json:"commit"`
	Date       int64    `json:"date"`
	Frameworks []string `json:"frameworks"` // in order of first appearance
	Rows       []Row    `json:"rows"`       // in scenario order

	// Means holds the mean factor of each framework per kind.
	Means map[string]map[string]float64 `json:"means"`
}

// Compare compares the frameworks recorded in e, a run of suite.
// Measurements that do not name both a framework and a known scenario,
// and null values, are ignored. If the run's tool prefers larger
// values, factors are taken against the largest value instead.
func Compare(suite string, e *benchdata.Entry) *Comparison {
	c := &Comparison{
		Suite:      suite,
		Commit:     e.Commit.ID,
		Date:       e.Date,
		Frameworks: []string{},
		Rows:       []Row{},
		Means:      map[string]map[string]float64{},
	}
	bigger := benchdata.Better(e.Tool) > 0

	type scenarioRow struct {
		sc  scenario.Scenario
		row *Row
	}
	rows := make(map[string]*scenarioRow)
	seen := make(map[string]bool)
	for _, m := range e.Benches {
		sc := scenario.Parse(m.Name)
		if sc.Framework == "" || sc.Kind == scenario.Unknown {
			continue
		}
		v, ok := m.Value.Float()
		if !ok {
			continue
		}
		sr := rows[sc.ID]
		if sr == nil {
			sr = &scenarioRow{sc: sc, row: &Row{
				ID:      sc.ID,
				Label:   sc.Label(),
				Kind:    sc.Kind.String(),
				Unit:    scenario.Unit(m.Name, m.Unit),
				Results: map[string]Result{},
			}}
			rows[sc.ID] = sr
		}
		if _, dup := sr.row.Results[sc.Framework]; dup {
			continue
		}
		sr.row.Results[sc.Framework] = Result{Value: v}
		if !seen[sc.Framework] {
			seen[sc.Framework] = true
			c.Frameworks = append(c.Frameworks, sc.Framework)
		}
	}

	ordered := make([]*scenarioRow, 0, len(rows))
	for _, sr := range rows {
		ordered = append(ordered, sr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].sc, ordered[j].sc
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	})

	sums := make(map[string]map[string]float64)
	counts := make(map[string]map[string]int)
	for _, sr := range ordered {
		row := sr.row
		score := func(fw string) float64 {
			v := row.Results[fw].Value
			if sr.sc.Kind == scenario.CPU {
				v = math.Max(v, CPUFloor)
			}
			return v
		}
		for _, fw := range c.Frameworks {
			if _, ok := row.Results[fw]; !ok {
				continue
			}
			if row.Best == "" ||
				(bigger && score(fw) > score(row.Best)) ||
				(!bigger && score(fw) < score(row.Best)) {
				row.Best = fw
			}
		}
		best := score(row.Best)
		for fw, r := range row.Results {
			r.Factor = factor(score(fw), best, bigger)
			if r.Factor == 0 {
				continue
			}
			r.Class = ColorClass(r.Factor)
			row.Results[fw] = r
			if sums[fw] == nil {
				sums[fw], counts[fw] = map[string]float64{}, map[string]int{}
			}
			sums[fw][row.Kind] += r.Factor
			counts[fw][row.Kind]++
		}
		c.Rows = append(c.Rows, *row)
	}
	for fw, byKind := range sums {
		c.Means[fw] = map[string]float64{}
		for kind, sum := range byKind {
			c.Means[fw][kind] = sum / float64(counts[fw][kind])
		}
	}
	return c
}

// factor returns v relative to best, or 0 if the ratio is undefined
// because a zero value would be the divisor.
func factor(v, best float64, bigger bool) float64 {
	switch {
	case v == best:
		return 1
	case bigger && v != 0:
		return best / v
	case !bigger && best != 0:
		return v / best
	}
	return 0
}

var colorSteps = []float64{
	1.000, 1.125, 1.250, 1.375,
	1.500, 1.625, 1.750, 1.875,
	2.000, 2.250, 2.500, 2.750,
	3.000, 3.250, 3.500, 4.000,
}

// ColorClass returns the shading class of a factor, from "c00" for
// factors below 1.125 to "c15" for factors of 4 and above.
func ColorClass(factor float64) string {
	i := sort.Search(len(colorSteps), func(i int) bool { return colorSteps[i] > factor }) - 1
	return fmt.Sprintf("c%02d", max(i, 0))
}
