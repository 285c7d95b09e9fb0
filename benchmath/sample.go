// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath computes statistics over repeated benchmark
// measurements, such as the runs recorded for one commit.
//
// Callers do not pick statistical tests directly. Instead they state a
// distributional assumption (AssumeNothing, AssumeNormal or
// AssumeExact) and the assumption chooses the summary statistic and
// the test.
//
// Results carry a list of warnings as []error. These do not prevent
// analysis but should be shown to the user with the results.
package benchmath

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

// A Sample is a set of repeated measurements of a given benchmark.
type Sample struct {
	// Values are the measured values, in ascending order.
	Values []float64

	// Thresholds stores the statistical thresholds used by tests
	// on this sample.
	Thresholds *Thresholds

	// Warnings is a list of warnings about this sample that
	// should be reported to the user.
	Warnings []error
}

// NewSample constructs a Sample from a set of measurements. It sorts
// values in place. A nil t means DefaultThresholds.
func NewSample(values []float64, t *Thresholds) *Sample {
	sort.Float64s(values)
	return &Sample{Values: values, Thresholds: t}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

func (s *Sample) thresholds() *Thresholds {
	if s.Thresholds == nil {
		return &DefaultThresholds
	}
	return s.Thresholds
}

// A Thresholds configures various thresholds used by statistical tests.
//
// This should be initialized to DefaultThresholds because it may be
// extended with other fields in the future.
type Thresholds struct {
	// CompareAlpha is the alpha level below which
	// Assumption.Compare rejects the null hypothesis that two
	// samples come from the same distribution.
	CompareAlpha float64
}

// DefaultThresholds contains a reasonable set of defaults for Thresholds.
var DefaultThresholds = Thresholds{
	CompareAlpha: 0.05,
}

// An Assumption indicates a distributional assumption about a sample.
type Assumption interface {
	// SummaryLabel returns the name of the summary statistic under
	// this assumption, such as "median" or "mean".
	SummaryLabel() string

	// Summary returns a summary statistic and its confidence
	// interval at the given confidence level, in [0,1], for s.
	Summary(s *Sample, confidence float64) Summary

	// Compare tests whether s1 and s2 come from the same
	// distribution.
	Compare(s1, s2 *Sample) Comparison
}

// ParseAssumption returns the Assumption called name: "nothing" (or
// "median"), "normal" (or "mean"), or "exact".
func ParseAssumption(name string) (Assumption, error) {
	switch strings.ToLower(name) {
	case "nothing", "median", "":
		return AssumeNothing, nil
	case "normal", "mean":
		return AssumeNormal, nil
	case "exact":
		return AssumeExact, nil
	}
	return nil, errors.Errorf("unknown assumption %q (want nothing, normal or exact)", name)
}

// A Summary summarizes a Sample.
type Summary struct {
	// Center is some measure of the central tendency of a sample.
	Center float64

	// Lo and Hi give the bounds of the confidence interval around
	// Center.
	Lo, Hi float64

	// Confidence is the actual confidence level of the confidence
	// interval given by Lo, Hi. It will be >= the requested
	// confidence level.
	Confidence float64

	// Warnings is a list of warnings about this summary or its
	// confidence interval.
	Warnings []error
}

// PctRangeString returns the half-width of the confidence interval as
// a percentage of Center, such as "3%".
func (s Summary) PctRangeString() string {
	if math.IsInf(s.Lo, 0) || math.IsInf(s.Hi, 0) {
		return "∞"
	}

	// Bounds on the other side of zero have no percent form.
	csign := mathx.Sign(s.Center)
	if csign != mathx.Sign(s.Lo) || csign != mathx.Sign(s.Hi) {
		return "?"
	}

	// Only reachable with Lo == Hi == 0.
	if s.Center == 0 {
		return "0%"
	}

	v := math.Max(s.Hi/s.Center-1, 1-s.Lo/s.Center)
	return fmt.Sprintf("%.0f%%", 100*v)
}

// A Comparison is the result of comparing two samples to test if they
// come from the same distribution.
type Comparison struct {
	// P is the p-value of the null hypothesis that two samples
	// come from the same distribution. P can be 0, which
	// indicates an exact result.
	P float64

	// N1 and N2 are the sizes of the two samples.
	N1, N2 int

	// Alpha is the alpha threshold for this test. If P < Alpha,
	// we reject the null hypothesis that the two samples come
	// from the same distribution.
	Alpha float64

	// Warnings is a list of warnings about this comparison
	// result.
	Warnings []error
}

// String summarizes the comparison as "p=0.PPP n=N1+N2", omitting the
// p-value for exact results and writing "n=N" when N1 == N2.
func (c Comparison) String() string {
	var s string
	if c.P != 0 {
		s = fmt.Sprintf("p=%0.3f ", c.P)
	}
	if c.N1 == c.N2 {
		return s + fmt.Sprintf("n=%d", c.N1)
	}
	return s + fmt.Sprintf("n=%d+%d", c.N1, c.N2)
}

// Significant reports whether the comparison rejects the null
// hypothesis that the samples come from the same distribution.
func (c Comparison) Significant() bool {
	return c.P <= c.Alpha
}

// FormatDelta formats the difference between the centers old and new
// of the two compared samples. It returns "~" if the difference is not
// significant and otherwise the percent change from old to new.
func (c Comparison) FormatDelta(old, new float64) string {
	if !c.Significant() {
		return "~"
	}
	if old == new {
		return "0.00%"
	}
	if old == 0 {
		return "?"
	}
	pct := ((new / old) - 1.0) * 100.0
	return fmt.Sprintf("%+.2f%%", pct)
}
