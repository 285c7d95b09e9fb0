// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yewstack/benchdata/framework"
	"github.com/yewstack/benchdata/internal/texttab"
)

func (c *cli) frameworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frameworks [commit]",
		Short: "Compare the frameworks measured in one run",
		Long: `Frameworks compares the frameworks recorded in the last run of a
commit, or in the suite's last run if no commit is given. Each value
is followed by its factor relative to the best framework for that
scenario. CPU durations under one frame count as one frame. The
last rows give each framework's mean factor per scenario kind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSuite(cmd.Context())
			if err != nil {
				return err
			}
			e := s.Last()
			if len(args) == 1 {
				id, err := s.ResolveCommit(args[0])
				if err != nil {
					return err
				}
				runs := s.Runs(id)
				e = runs[len(runs)-1]
			}
			if e == nil {
				return errors.Errorf("suite %q has no runs", s.Name)
			}
			cmp := framework.Compare(s.Name, e)
			if c.v.GetBool("json") {
				return c.printJSON(cmp)
			}
			if len(cmp.Frameworks) == 0 {
				return errors.Errorf("run of %s in suite %q names no frameworks", shortID(cmp.Commit), s.Name)
			}

			var tab texttab.Table
			tab.Row().Cell("scenario").Cells(cmp.Frameworks...)
			for _, row := range cmp.Rows {
				tab.Row().Cell(row.Label)
				for _, fw := range cmp.Frameworks {
					r, ok := row.Results[fw]
					switch {
					case !ok:
						tab.Cell("-", texttab.Right)
					case r.Factor == 0:
						tab.Cell(formatValue(r.Value, row.Unit), texttab.Right)
					default:
						tab.Cell(fmt.Sprintf("%s (%.2f)", formatValue(r.Value, row.Unit), r.Factor), texttab.Right)
					}
				}
			}
			for _, kind := range meanKinds(cmp) {
				tab.Row().Cell("mean " + kind)
				for _, fw := range cmp.Frameworks {
					if m, ok := cmp.Means[fw][kind]; ok {
						tab.Cell(fmt.Sprintf("%.2f", m), texttab.Right)
					} else {
						tab.Cell("-", texttab.Right)
					}
				}
			}
			c.printf("commit: %s\n\n", cmp.Commit)
			return tab.Format(c.stdout)
		},
	}
	addSuiteFlag(cmd)
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

// meanKinds returns the scenario kinds with a mean factor, in the
// order their first row appears.
func meanKinds(cmp *framework.Comparison) []string {
	seen := map[string]int{}
	for i, row := range cmp.Rows {
		if _, ok := seen[row.Kind]; !ok {
			seen[row.Kind] = i
		}
	}
	var kinds []string
	for kind := range seen {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return seen[kinds[i]] < seen[kinds[j]] })
	return kinds
}
