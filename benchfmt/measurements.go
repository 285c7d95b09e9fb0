// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"

	"github.com/yewstack/benchdata/benchdata"
)

// Measurements converts res into history measurements, one per value.
// Values are recorded as they were read, before tidying. If res has
// more than one value, each measurement is named "<name> - <unit>".
func Measurements(res *Result) []benchdata.Measurement {
	ms := make([]benchdata.Measurement, 0, len(res.Values))
	for _, v := range res.Values {
		val, unit := v.Value, v.Unit
		if v.OrigUnit != "" {
			val, unit = v.OrigValue, v.OrigUnit
		}
		name := res.Name
		if len(res.Values) > 1 {
			name = fmt.Sprintf("%s - %s", res.Name, unit)
		}
		ms = append(ms, benchdata.Measurement{
			Name:  name,
			Value: benchdata.NewValue(val),
			Unit:  unit,
			Extra: fmt.Sprintf("%d times", res.Iters),
		})
	}
	return ms
}

// A Scanner is the record-reading part of Reader and Files.
type Scanner interface {
	Scan() bool
	Result() Record
	Err() error
}

// ReadMeasurements reads every result from s and converts it with
// Measurements. Syntax errors do not stop reading; they are returned
// in errs. err is the I/O error reported by s, if any.
func ReadMeasurements(s Scanner) (ms []benchdata.Measurement, errs []*SyntaxError, err error) {
	for s.Scan() {
		switch rec := s.Result().(type) {
		case *Result:
			ms = append(ms, Measurements(rec)...)
		case *SyntaxError:
			errs = append(errs, rec)
		}
	}
	return ms, errs, s.Err()
}
