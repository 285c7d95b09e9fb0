// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"
	"math"
	"sync"

	"github.com/aclements/go-moremath/stats"
)

// AssumeNothing is a non-parametric Assumption: it makes no
// assumptions about the distribution of a sample. The summary
// statistic is the median, with a confidence interval given by order
// statistics, and comparisons use the Mann-Whitney U-test.
//
// This is the right choice for wall-clock timings, whose distributions
// are usually skewed and often multi-modal.
var AssumeNothing = assumeNothing{}

type assumeNothing struct{}

var _ Assumption = assumeNothing{}

// maxMedianSamples bounds the search in medianSamples.
const maxMedianSamples = 50

func (assumeNothing) SummaryLabel() string {
	return "median"
}

func (assumeNothing) Summary(s *Sample, confidence float64) Summary {
	n := len(s.Values)
	summary := Summary{Center: s.sample().Quantile(0.5)}

	// The interval [x(k), x(n-1-k)] covers the median with
	// probability 1 - 2*P(X <= k) for X ~ Binomial(n, 1/2). Use the
	// narrowest such interval that still has the requested
	// confidence.
	k, actual := -1, 0.0
	for i := 0; 2*i < n-1; i++ {
		c := 1 - 2*binomTail(n, i)
		if c < confidence {
			break
		}
		k, actual = i, c
	}
	if k < 0 {
		op, need := medianSamples(confidence)
		summary.Lo, summary.Hi = math.Inf(-1), math.Inf(1)
		summary.Confidence = 1
		summary.Warnings = append(summary.Warnings,
			fmt.Errorf("need %s %d samples for confidence interval at level %v", op, need, confidence))
		return summary
	}
	summary.Lo, summary.Hi = s.Values[k], s.Values[n-1-k]
	summary.Confidence = actual
	return summary
}

// medianSamples returns the minimum sample size needed to compute a
// confidence interval for the median at the given confidence level.
// If more than maxMedianSamples are needed, it returns ">" and
// maxMedianSamples.
func medianSamples(confidence float64) (op string, n int) {
	for n := 2; n <= maxMedianSamples; n++ {
		if 1-2*binomTail(n, 0) >= confidence {
			return ">=", n
		}
	}
	return ">", maxMedianSamples
}

// binomTail returns P(X <= k) for X ~ Binomial(n, 1/2). The result is
// exact for the sample sizes used here.
func binomTail(n, k int) float64 {
	var sum, c float64 = 0, 1
	for i := 0; i <= k; i++ {
		sum += c
		c = c * float64(n-i) / float64(i+1)
	}
	return math.Ldexp(sum, -n)
}

func (assumeNothing) Compare(s1, s2 *Sample) Comparison {
	alpha := s1.thresholds().CompareAlpha
	c := Comparison{N1: len(s1.Values), N2: len(s2.Values), Alpha: alpha}

	res, err := stats.MannWhitneyUTest(s1.Values, s2.Values, stats.LocationDiffers)
	switch {
	case err == stats.ErrSamplesEqual:
		// Every value is the same, so there is no evidence of
		// a difference.
		c.P = 1
		c.Warnings = append(c.Warnings, fmt.Errorf("all samples are equal"))
		return c
	case err != nil:
		c.P = 1
		c.Warnings = append(c.Warnings, err)
		return c
	}
	c.P = res.P

	op, need := uTestSamples(alpha)
	if op == ">" || c.N1 < need || c.N2 < need {
		c.Warnings = append(c.Warnings,
			fmt.Errorf("need %s %d samples to detect a difference at alpha level %v", op, need, alpha))
	}
	return c
}

// maxUTestSamples bounds the table of minimal U-test p-values.
const maxUTestSamples = 10

var (
	uTestMinPOnce sync.Once
	uTestMinP     []float64 // uTestMinP[n] for n in [1, maxUTestSamples]
)

// minUTestP returns the table of the smallest p-value the U-test can
// produce for two samples of size n each, which happens when the
// samples do not overlap at all.
func minUTestP() []float64 {
	uTestMinPOnce.Do(func() {
		uTestMinP = make([]float64, maxUTestSamples+1)
		uTestMinP[0] = 1
		var s1, s2 []float64
		for n := 1; n <= maxUTestSamples; n++ {
			s1 = append(s1, -1)
			s2 = append(s2, 1)
			res, err := stats.MannWhitneyUTest(s1, s2, stats.LocationDiffers)
			if err != nil {
				panic(err)
			}
			uTestMinP[n] = res.P
		}
	})
	return uTestMinP
}

// uTestSamples returns the minimum sample size for the U-test to
// be able to reject the null hypothesis at the given alpha level. If
// more than maxUTestSamples are needed, it returns ">" and
// maxUTestSamples.
func uTestSamples(alpha float64) (op string, n int) {
	minP := minUTestP()
	for n := 1; n <= maxUTestSamples; n++ {
		if minP[n] <= alpha {
			return ">=", n
		}
	}
	return ">", maxUTestSamples
}
