// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "sync"

// A baseUnit is what a pre-scaled unit token tidies to.
type baseUnit struct {
	unit   string
	factor float64
}

// prescaled maps unit tokens that carry a scale to their base unit.
// Time tidies to "sec" and sizes tidy to "B".
var prescaled = map[string]baseUnit{
	"ns":  {"sec", 1e-9},
	"us":  {"sec", 1e-6},
	"µs":  {"sec", 1e-6},
	"ms":  {"sec", 1e-3},
	"s":   {"sec", 1},
	"kB":  {"B", 1 << 10},
	"KB":  {"B", 1 << 10},
	"KiB": {"B", 1 << 10},
	"MiB": {"B", 1 << 20},
	"GiB": {"B", 1 << 30},
	"MB":  {"B", 1e6},
	"GB":  {"B", 1e9},
}

type tidyEntry struct {
	tidied string
	factor float64
}

var tidyCache sync.Map // unit string -> *tidyEntry

// Tidy normalizes a value with a (possibly pre-scaled) unit into base
// units. Times are converted to "sec" and sizes to "B": 170 "ms"
// becomes 0.17 "sec" and 1.5 "MiB" becomes 1572864 "B". Only the
// numerator of a compound unit is rewritten, so "MB/s" becomes "B/s".
// Units that are already in base form, including the empty unit, are
// returned unchanged.
//
// The kilobyte units "kB" and "KB" are treated as 1024 bytes, which is
// how browser tooling reports transfer sizes.
func Tidy(value float64, unit string) (tidiedValue float64, tidiedUnit string) {
	newUnit, factor := tidyUnit(unit)
	return value * factor, newUnit
}

func tidyUnit(unit string) (tidied string, factor float64) {
	switch unit {
	case "", "sec", "B", "sec/op", "B/op", "allocs/op":
		return unit, 1
	case "ns/op":
		return "sec/op", 1e-9
	case "MB/s":
		return "B/s", 1e6
	}

	if tc, ok := tidyCache.Load(unit); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.factor
	}
	tidied, factor = tidyUnitUncached(unit)
	tidyCache.Store(unit, &tidyEntry{tidied, factor})
	return
}

func tidyUnitUncached(unit string) (tidied string, factor float64) {
	type edit struct {
		pos, len int
		replace  string
	}

	factor = 1
	p := newParser(unit)
	var edits []edit
	for p.next() {
		if p.denom {
			continue
		}
		if b, ok := prescaled[p.tok]; ok {
			edits = append(edits, edit{p.pos, len(p.tok), b.unit})
			factor *= b.factor
		}
	}
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		unit = unit[:e.pos] + e.replace + unit[e.pos+e.len:]
	}
	return unit, factor
}
