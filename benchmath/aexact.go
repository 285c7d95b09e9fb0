// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import "fmt"

// AssumeExact is an assumption that a value can be measured exactly
// and so needs no repeated sampling, such as the byte size of a
// bundle. It reports a warning if the values of a sample differ.
var AssumeExact = assumeExact{}

type assumeExact struct{}

var _ Assumption = assumeExact{}

func (assumeExact) SummaryLabel() string {
	return "exact"
}

func (assumeExact) Summary(s *Sample, confidence float64) Summary {
	// Values are sorted, so equal values are adjacent. Use the
	// mode so that the summary is still useful when they differ.
	first, last := s.Values[0], s.Values[len(s.Values)-1]
	modeVal, modeCount := first, 0
	for i := 0; i < len(s.Values); {
		j := i
		for j < len(s.Values) && s.Values[j] == s.Values[i] {
			j++
		}
		if j-i > modeCount {
			modeVal, modeCount = s.Values[i], j-i
		}
		i = j
	}
	summary := Summary{Center: modeVal, Lo: first, Hi: last, Confidence: 1}
	if first != last {
		summary.Warnings = []error{fmt.Errorf("exact distribution expected, but values range from %v to %v", first, last)}
	}
	return summary
}

func (assumeExact) Compare(s1, s2 *Sample) Comparison {
	return Comparison{P: 0, N1: len(s1.Values), N2: len(s2.Values), Alpha: s1.thresholds().CompareAlpha}
}
