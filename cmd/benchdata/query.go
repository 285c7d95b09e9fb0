// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/benchmath"
	"github.com/yewstack/benchdata/benchunit"
	"github.com/yewstack/benchdata/internal/texttab"
	"github.com/yewstack/benchdata/scenario"
	"github.com/yewstack/benchdata/trend"
)

func (c *cli) suitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			var tab texttab.Table
			tab.Row().Cells("suite", "runs", "commits", "benchmarks", "last run")
			for _, s := range doc.Suites() {
				last := "-"
				if e := s.Last(); e != nil {
					last = formatDate(e.Date)
				}
				tab.Row().Cell(s.Name).
					Cell(strconv.Itoa(len(s.Entries)), texttab.Right).
					Cell(strconv.Itoa(len(s.Commits())), texttab.Right).
					Cell(strconv.Itoa(len(s.BenchNames())), texttab.Right).
					Cell(last)
			}
			return tab.Format(c.stdout)
		},
	}
}

func (c *cli) benchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benches",
		Short: "List the benchmarks of a suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSuite(cmd.Context())
			if err != nil {
				return err
			}
			var tab texttab.Table
			tab.Row().Cells("benchmark", "scenario", "unit", "values", "missing")
			for _, name := range s.BenchNames() {
				ser := s.Series(name)
				label := ""
				if sc := scenario.Parse(name); sc.Kind != scenario.Unknown {
					label = sc.Label()
				}
				tab.Row().Cells(name, label, scenario.Unit(name, ser.Unit)).
					Cell(strconv.Itoa(len(ser.Points)), texttab.Right).
					Cell(strconv.Itoa(ser.Missing), texttab.Right)
			}
			return tab.Format(c.stdout)
		},
	}
	addSuiteFlag(cmd)
	return cmd
}

// benchSeries returns the series named by the --bench flag.
func (c *cli) benchSeries(cmd *cobra.Command) (*benchdata.Series, error) {
	s, err := c.loadSuite(cmd.Context())
	if err != nil {
		return nil, err
	}
	name := c.v.GetString("bench")
	if name == "" {
		return nil, errors.New("--bench is required")
	}
	ser := s.Series(name)
	if len(ser.Points) == 0 && ser.Missing == 0 {
		return nil, errors.Errorf("no results for %q in suite %q", name, s.Name)
	}
	return ser, nil
}

func addBenchFlags(cmd *cobra.Command) {
	addSuiteFlag(cmd)
	cmd.Flags().StringP("bench", "b", "", "benchmark `name`")
	cmd.Flags().Bool("json", false, "print JSON")
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the history of one benchmark",
		Long: `Series prints every recorded value of one benchmark in order.
Runs that recorded "null" are skipped and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ser, err := c.benchSeries(cmd)
			if err != nil {
				return err
			}
			if c.v.GetBool("json") {
				return c.printJSON(ser)
			}
			unit := scenario.Unit(ser.Name, ser.Unit)
			var tab texttab.Table
			tab.Row().Cells("run", "date", "commit", "value")
			for _, p := range ser.Points {
				tab.Row().Cell(strconv.Itoa(p.Index), texttab.Right).
					Cells(formatDate(p.Date), shortID(p.Commit)).
					Cell(formatValue(p.Value, unit), texttab.Right)
			}
			if err := tab.Format(c.stdout); err != nil {
				return err
			}
			if ser.Missing > 0 {
				c.printf("(%d runs recorded no value)\n", ser.Missing)
			}
			return nil
		},
	}
	addBenchFlags(cmd)
	return cmd
}

func (c *cli) trendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Print the per-commit trend of one benchmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ser, err := c.benchSeries(cmd)
			if err != nil {
				return err
			}
			tr := trend.Of(ser)
			if c.v.GetBool("json") {
				return c.printJSON(tr)
			}
			unit := scenario.Unit(ser.Name, ser.Unit)
			var tab texttab.Table
			tab.Row().Cells("commit", "date", "runs", "mean", "min", "max", "delta", "")
			for i, r := range tr.Rows {
				delta := ""
				if i > 0 {
					delta = fmt.Sprintf("%+.2f%%", 100*r.Delta)
				}
				tab.Row().Cells(shortID(r.Commit), formatDate(r.Date)).
					Cell(strconv.Itoa(r.Runs), texttab.Right).
					Cell(formatValue(r.Mean, unit), texttab.Right).
					Cell(formatValue(r.Min, unit), texttab.Right).
					Cell(formatValue(r.Max, unit), texttab.Right).
					Cell(delta, texttab.Right).
					Cell(r.Verdict())
			}
			return tab.Format(c.stdout)
		},
	}
	addBenchFlags(cmd)
	return cmd
}

func addStatFlags(cmd *cobra.Command) {
	addSuiteFlag(cmd)
	cmd.Flags().String("assume", "nothing", "distributional `assumption`: nothing, normal or exact")
	cmd.Flags().Float64("confidence", 0.95, "confidence `level` for summaries")
	cmd.Flags().Float64("alpha", benchmath.DefaultThresholds.CompareAlpha, "significance `level` for comparisons")
}

func (c *cli) assumption() (benchmath.Assumption, error) {
	return benchmath.ParseAssumption(c.v.GetString("assume"))
}

func (c *cli) summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary commit",
		Short: "Summarize the runs of one commit",
		Long: `Summary prints the center and confidence interval of every
benchmark over the runs recorded for a commit. The commit may be
abbreviated to any unique prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSuite(cmd.Context())
			if err != nil {
				return err
			}
			id, err := s.ResolveCommit(args[0])
			if err != nil {
				return err
			}
			assume, err := c.assumption()
			if err != nil {
				return err
			}
			conf := c.v.GetFloat64("confidence")

			var tab texttab.Table
			tab.Row().Cells("benchmark", assume.SummaryLabel(), "±", "n")
			var warnings []string
			for _, name := range s.BenchNames() {
				ser := s.Series(name)
				vals := ser.CommitValues(id)
				if len(vals) == 0 {
					continue
				}
				unit := scenario.Unit(name, ser.Unit)
				sum := assume.Summary(benchmath.NewSample(vals, nil), conf)
				tab.Row().Cell(name).
					Cell(formatValue(sum.Center, unit), texttab.Right).
					Cell(sum.PctRangeString(), texttab.Right).
					Cell(strconv.Itoa(len(vals)), texttab.Right)
				for _, w := range sum.Warnings {
					warnings = append(warnings, fmt.Sprintf("%s: %v", name, w))
				}
			}
			c.printf("commit: %s\n\n", id)
			if err := tab.Format(c.stdout); err != nil {
				return err
			}
			printWarnings(c, warnings)
			return nil
		},
	}
	addStatFlags(cmd)
	return cmd
}

func (c *cli) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare old new",
		Short: "Compare the runs of two commits",
		Long: `Compare tests every benchmark for a difference between the runs
recorded for two commits. Changes that are not statistically
significant are shown as "~".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSuite(cmd.Context())
			if err != nil {
				return err
			}
			var ids [2]string
			for i, arg := range args {
				if ids[i], err = s.ResolveCommit(arg); err != nil {
					return err
				}
			}
			assume, err := c.assumption()
			if err != nil {
				return err
			}
			conf := c.v.GetFloat64("confidence")
			thresholds := &benchmath.Thresholds{CompareAlpha: c.v.GetFloat64("alpha")}

			var tab texttab.Table
			tab.Row().Cell("benchmark").
				Cells(shortID(ids[0]), "±", shortID(ids[1]), "±", "delta", "")
			var warnings []string
			for _, name := range s.BenchNames() {
				ser := s.Series(name)
				old, new := ser.CommitValues(ids[0]), ser.CommitValues(ids[1])
				if len(old) == 0 || len(new) == 0 {
					continue
				}
				unit := scenario.Unit(name, ser.Unit)
				s1 := benchmath.NewSample(old, thresholds)
				s2 := benchmath.NewSample(new, thresholds)
				sum1, sum2 := assume.Summary(s1, conf), assume.Summary(s2, conf)
				cmp := assume.Compare(s1, s2)

				tab.Row().Cell(name).
					Cell(formatValue(sum1.Center, unit), texttab.Right).
					Cell(sum1.PctRangeString(), texttab.Right).
					Cell(formatValue(sum2.Center, unit), texttab.Right).
					Cell(sum2.PctRangeString(), texttab.Right).
					Cell(cmp.FormatDelta(sum1.Center, sum2.Center), texttab.Right).
					Cell("(" + cmp.String() + ")")
				for _, w := range cmp.Warnings {
					warnings = append(warnings, fmt.Sprintf("%s: %v", name, w))
				}
			}
			if err := tab.Format(c.stdout); err != nil {
				return err
			}
			printWarnings(c, warnings)
			return nil
		},
	}
	addStatFlags(cmd)
	return cmd
}

func printWarnings(c *cli, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	c.printf("\n")
	for _, w := range warnings {
		c.printf("warning: %s\n", w)
	}
}

func shortID(id string) string {
	return benchdata.Commit{ID: id}.ShortID()
}

func formatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// formatValue formats v in unit with a unit prefix. Dimensionless
// values are printed with at least three significant digits.
func formatValue(v float64, unit string) string {
	if unit == "" {
		return benchunit.Scale(v, benchunit.Decimal)
	}
	return benchunit.Format(v, unit)
}
