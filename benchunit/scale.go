// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a number and
// its scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val and appends the unit prefix. For example, if the
// Scaler has class Decimal, Format(123456789) returns "123.5M".
//
// Values with units should be tidied first (see Tidy), or the result
// can read as a nonsense unit such as "megamilliseconds".
func (s Scaler) Format(val float64) string {
	return string(s.appendNum(nil, val)) + s.Prefix
}

// FormatUnit formats val followed by a space, the unit prefix and
// unit, as in "170.6 msec" or "1.203 MiB".
func (s Scaler) FormatUnit(val float64, unit string) string {
	buf := s.appendNum(make([]byte, 0, 20), val)
	if s.Prefix == "" && unit == "" {
		return string(buf)
	}
	buf = append(buf, ' ')
	buf = append(buf, s.Prefix...)
	buf = append(buf, unit...)
	return string(buf)
}

func (s Scaler) appendNum(buf []byte, val float64) []byte {
	return strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
}

// NoOpScaler formats numbers with the fewest digits that capture the
// exact value, and no prefix. It is meant for machine-readable output.
var NoOpScaler = Scaler{-1, 1, ""}

// A prefix is one scale step, with the smallest values that print as
// 100.0, 10.00 and 1.000 at that step.
type prefix struct {
	factor        float64
	name          string
	t100, t10, t1 float64
}

var (
	siPrefixes  = siSteps()
	iecPrefixes = iecSteps()

	// fracThresh[i] is the smallest value printed with i+fracBase
	// digits after the decimal point.
	fracThresh, fracBase = fractionSteps()
)

// siSteps derives each threshold by parsing the printed rounding
// boundary so that thresholds and printing agree exactly.
func siSteps() []prefix {
	var ps []prefix
	exp := 12
	for _, name := range []string{"T", "G", "M", "k", "", "m", "µ", "n"} {
		ps = append(ps, prefix{
			factor: math.Pow(10, float64(exp)),
			name:   name,
			t100:   parseF("99.995e%d", exp),
			t10:    parseF("9.9995e%d", exp),
			t1:     parseF(".99995e%d", exp),
		})
		exp -= 3
	}
	return ps
}

// iecSteps stops at "B": binary prefixes have no fractional forms.
// Values in [1000, 1024) of one step print with the next smaller step,
// so 1020 KiB is not shown as 0.996 MiB.
func iecSteps() []prefix {
	var ps []prefix
	exp := 40
	for _, name := range []string{"Ti", "Gi", "Mi", "Ki", ""} {
		ps = append(ps, prefix{
			factor: math.Pow(2, float64(exp)),
			name:   name,
			t100:   parseF("0x1.8ffae147ae148p%d", 6+exp),  // 99.995
			t10:    parseF("0x1.3ffbe76c8b439p%d", 3+exp),  // 9.9995
			t1:     parseF("0x1.fff972474538fp%d", -1+exp), // .99995
		})
		exp -= 10
	}
	return ps
}

func fractionSteps() ([]float64, int) {
	var ts []float64
	for exp := -1; exp > -9; exp-- {
		ts = append(ts, parseF("9.9995e%d", exp))
	}
	return ts, 3
}

func parseF(format string, exp int) float64 {
	f, err := strconv.ParseFloat(fmt.Sprintf(format, exp), 64)
	if err != nil {
		panic(err)
	}
	return f
}

// Scale formats val using at least three significant digits,
// appending an SI or binary prefix. See Scaler.Format for details.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// Format tidies value in unit and formats it with at least three
// significant digits and a unit prefix: Format(170.614, "ms") returns
// "170.6 msec" and Format(1.2, "MiB") returns "1.200 MiB".
func Format(value float64, unit string) string {
	v, u := Tidy(value, unit)
	return CommonScale([]float64{v}, ClassOf(u)).FormatUnit(v, u)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []float64, cls Class) Scaler {
	// The scale is set by the non-zero value closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var ps []prefix
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		ps = siPrefixes
	case Binary:
		ps = iecPrefixes
	}

	for _, p := range ps {
		switch {
		case min >= p.t100:
			return Scaler{1, p.factor, p.name}
		case min >= p.t10:
			return Scaler{2, p.factor, p.name}
		case min >= p.t1:
			return Scaler{3, p.factor, p.name}
		}
	}

	// Below the smallest prefix: use it with more digits after the
	// decimal point.
	p := ps[len(ps)-1]
	val := min / p.factor
	for i, thresh := range fracThresh {
		if val >= thresh || i == len(fracThresh)-1 {
			return Scaler{i + fracBase, p.factor, p.name}
		}
	}
	panic("not reachable")
}
