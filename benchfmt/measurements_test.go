// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"strings"
	"testing"
)

func TestReadMeasurements(t *testing.T) {
	const input = `goos: linux
BenchmarkRender-8 1000 1205 ns/op 96 B/op 2 allocs/op
BenchmarkDiff 3 0.25 ms
BenchmarkBroken 10
PASS
`
	ms, errs, err := ReadMeasurements(NewReader(strings.NewReader(input), "bench.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 || errs[0].Line != 4 {
		t.Errorf("syntax errors = %v, want one on line 4", errs)
	}

	type want struct{ name, value, unit, extra string }
	wants := []want{
		{"Render-8 - ns/op", "1205", "ns/op", "1000 times"},
		{"Render-8 - B/op", "96", "B/op", "1000 times"},
		{"Render-8 - allocs/op", "2", "allocs/op", "1000 times"},
		{"Diff", "0.25", "ms", "3 times"},
	}
	if len(ms) != len(wants) {
		t.Fatalf("got %d measurements, want %d: %+v", len(ms), len(wants), ms)
	}
	for i, w := range wants {
		m := ms[i]
		if m.Name != w.name || m.Value.String() != w.value || m.Unit != w.unit || m.Extra != w.extra {
			t.Errorf("measurement %d = {%q %q %q %q}, want %+v", i, m.Name, m.Value, m.Unit, m.Extra, w)
		}
	}
}
