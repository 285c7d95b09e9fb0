// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
)

// ParseCustom reads measurements in the custom tool format, a JSON
// list of {"name", "unit", "value", "range", "extra"} objects as
// consumed by the customSmallerIsBetter and customBiggerIsBetter
// tools. Values may be numbers, strings or null.
func ParseCustom(r io.Reader) ([]Measurement, error) {
	var ms []Measurement
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ms); err != nil {
		return nil, errors.Wrap(err, "parsing custom benchmark results")
	}
	for i, m := range ms {
		if m.Name == "" {
			return nil, errors.Errorf("result %d: missing name", i)
		}
		if err := m.Value.check(); err != nil {
			return nil, errors.Wrapf(err, "result %q", m.Name)
		}
	}
	return ms, nil
}

// NewEntry returns an Entry for a run of tool at commit, dated at.
func NewEntry(commit Commit, tool string, at time.Time, benches []Measurement) *Entry {
	return &Entry{
		Commit:  commit,
		Date:    at.UnixMilli(),
		Tool:    tool,
		Benches: benches,
	}
}
