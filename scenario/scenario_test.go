// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import "testing"

func TestParse(t *testing.T) {
	for _, test := range []struct {
		name      string
		framework string
		id        string
		number    int
		kind      Kind
		label     string
	}{
		{"yew-struct-keyed 01_run1k", "yew-struct-keyed", "01_run1k", 1, CPU, "create rows"},
		{"yew-hooks 09_clear1k_x8", "yew-hooks", "09_clear1k_x8", 9, CPU, "clear rows"},
		{"yew-struct-keyed 21_ready-memory", "yew-struct-keyed", "21_ready-memory", 21, Memory, "ready memory"},
		{"yew-struct-keyed 33_startup-mainthreadcost", "yew-struct-keyed", "33_startup-mainthreadcost", 33, StartupTime, "main thread work cost"},
		{"yew-struct-keyed 34_startup-totalbytes", "yew-struct-keyed", "34_startup-totalbytes", 34, StartupSize, "total kilobyte weight"},
		{"07_create10k", "", "07_create10k", 7, CPU, "create many rows"},
		{"some framework 42_new", "some framework", "42_new", 42, Unknown, "42_new"},
		{"baseline", "", "baseline", -1, Unknown, "baseline"},
		{"hello world", "hello", "world", -1, Unknown, "world"},
		{"x _y", "x", "_y", -1, Unknown, "_y"},
	} {
		sc := Parse(test.name)
		if sc.Framework != test.framework || sc.ID != test.id || sc.Number != test.number || sc.Kind != test.kind {
			t.Errorf("Parse(%q) = %+v, want framework %q id %q number %d kind %v",
				test.name, sc, test.framework, test.id, test.number, test.kind)
		}
		if got := sc.Label(); got != test.label {
			t.Errorf("Parse(%q).Label() = %q, want %q", test.name, got, test.label)
		}
	}
}

func TestUnit(t *testing.T) {
	for _, test := range []struct {
		name, declared, want string
	}{
		{"yew-struct-keyed 01_run1k", "", "ms"},
		{"yew-struct-keyed 22_run-memory", "", "MiB"},
		{"yew-struct-keyed 31_startup-ci", "", "ms"},
		{"yew-struct-keyed 34_startup-totalbytes", "", "KiB"},
		{"yew-struct-keyed 01_run1k", "s", "s"},
		{"baseline", "", ""},
		{"baseline", "ms", "ms"},
	} {
		if got := Unit(test.name, test.declared); got != test.want {
			t.Errorf("Unit(%q, %q) = %q, want %q", test.name, test.declared, got, test.want)
		}
	}
}
