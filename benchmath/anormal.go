// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import "github.com/aclements/go-moremath/stats"

// AssumeNormal is an assumption that a sample is normally distributed.
// The summary statistic is the sample mean with a Student's t
// confidence interval, and comparisons use Welch's two-sample t-test.
var AssumeNormal = assumeNormal{}

type assumeNormal struct{}

var _ Assumption = assumeNormal{}

func (assumeNormal) SummaryLabel() string {
	return "mean"
}

func (assumeNormal) Summary(s *Sample, confidence float64) Summary {
	mean, lo, hi := s.sample().MeanCI(confidence)
	return Summary{
		Center:     mean,
		Lo:         lo,
		Hi:         hi,
		Confidence: confidence,
	}
}

func (assumeNormal) Compare(s1, s2 *Sample) Comparison {
	c := Comparison{N1: len(s1.Values), N2: len(s2.Values), Alpha: s1.thresholds().CompareAlpha}
	t, err := stats.TwoSampleWelchTTest(s1.sample(), s2.sample(), stats.LocationDiffers)
	if err != nil {
		// Report a failed test as no significant difference.
		c.P = 1
		c.Warnings = []error{err}
		return c
	}
	c.P = t.P
	return c
}
