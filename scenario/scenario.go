// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenario interprets the measurement names recorded by the
// browser framework benchmark, such as "yew-struct-keyed 01_run1k".
//
// A name is a framework identifier followed by a scenario identifier
// of the form NN_slug. The two-digit prefix determines what the
// scenario measures and therefore the unit of its values.
package scenario

import (
	"fmt"
	"strconv"
	"strings"
)

// A Kind is the class of quantity a scenario measures.
type Kind int

// CPU scenarios time a DOM operation, Memory scenarios record heap
// size after one, and the startup scenarios record page load metrics.
const (
	Unknown Kind = iota
	CPU
	Memory
	StartupTime
	StartupSize
)

func (k Kind) String() string {
	switch k {
	case CPU:
		return "cpu"
	case Memory:
		return "memory"
	case StartupTime:
		return "startup"
	case StartupSize:
		return "size"
	}
	return "unknown"
}

// Unit returns the unit values of kind k are recorded in, or "" if k
// is Unknown.
func (k Kind) Unit() string {
	switch k {
	case CPU, StartupTime:
		return "ms"
	case Memory:
		return "MiB"
	case StartupSize:
		return "KiB"
	}
	return ""
}

// KindOf returns the kind of the scenario with numeric prefix n.
func KindOf(n int) Kind {
	switch {
	case n >= 1 && n <= 19:
		return CPU
	case n >= 21 && n <= 29:
		return Memory
	case n >= 30 && n <= 33:
		return StartupTime
	case n == 34:
		return StartupSize
	}
	return Unknown
}

// A Scenario is a parsed measurement name.
type Scenario struct {
	Framework string // e.g. "yew-struct-keyed"; may be empty
	ID        string // e.g. "01_run1k"
	Number    int    // numeric prefix of ID, or -1
	Kind      Kind
}

// Parse splits a measurement name into its framework and scenario ID.
// Names without a recognizable NN_ scenario suffix parse with Kind
// Unknown and Number -1; Parse never fails.
func Parse(name string) Scenario {
	name = strings.TrimSpace(name)
	sc := Scenario{ID: name, Number: -1}
	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		sc.Framework, sc.ID = strings.TrimSpace(name[:i]), name[i+1:]
	}
	us := strings.IndexByte(sc.ID, '_')
	if us < 1 {
		return sc
	}
	n, err := strconv.Atoi(sc.ID[:us])
	if err != nil || n < 0 {
		return sc
	}
	sc.Number = n
	sc.Kind = KindOf(n)
	return sc
}

// Label returns a human-readable description of the scenario, such as
// "create rows". Unrecognized scenarios are labeled with their ID.
func (sc Scenario) Label() string {
	if l, ok := labels[sc.ID]; ok {
		return l
	}
	return sc.ID
}

func (sc Scenario) String() string {
	if sc.Framework == "" {
		return sc.ID
	}
	return fmt.Sprintf("%s %s", sc.Framework, sc.ID)
}

// Unit returns the unit for a measurement called name. The declared
// unit takes precedence; otherwise the unit is implied by the
// scenario's kind, or "" if the value is dimensionless.
func Unit(name, declared string) string {
	if declared != "" {
		return declared
	}
	return Parse(name).Kind.Unit()
}

var labels = map[string]string{
	"01_run1k":                  "create rows",
	"02_replace1k":              "replace all rows",
	"03_update10th1k_x16":       "partial update",
	"04_select1k":               "select row",
	"05_swap1k":                 "swap rows",
	"06_remove-one-1k":          "remove row",
	"07_create10k":              "create many rows",
	"08_create1k-after1k_x2":    "append rows to large table",
	"09_clear1k_x8":             "clear rows",
	"21_ready-memory":           "ready memory",
	"22_run-memory":             "run memory",
	"23_update5-memory":         "update every 10th row for 1k rows (5 cycles)",
	"24_run5-memory":            "replace 1k rows (5 cycles)",
	"25_run-clear-memory":       "creating/clearing 1k rows (5 cycles)",
	"30_startup":                "startup time",
	"31_startup-ci":             "consistently interactive",
	"32_startup-bt":             "script bootup time",
	"33_startup-mainthreadcost": "main thread work cost",
	"34_startup-totalbytes":     "total kilobyte weight",
}
