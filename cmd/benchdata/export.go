// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/benchfmt"
	"github.com/yewstack/benchdata/chart"
)

func (c *cli) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the history in another format",
		Long: `Export prints the history on standard output.

With --format=go (the default) every run of --suite, or of every
suite if --suite is empty, is written in the Go benchmark format
understood by benchstat. The suite, commit, run date and tool are
written as configuration lines. Null values are omitted.

With --format=json the history is written as plain JSON, and with
--format=js as the JavaScript history file itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			suites := doc.Suites()
			if name := c.v.GetString("suite"); name != "" {
				s := doc.Suite(name)
				if s == nil {
					return errors.Wrapf(benchdata.ErrNoSuite, "%q", name)
				}
				suites = []*benchdata.Suite{s}
				doc = benchdata.New(doc.RepoURL)
				for _, e := range s.Entries {
					if err := doc.Append(s.Name, e); err != nil {
						return err
					}
				}
			}

			switch format := c.v.GetString("format"); format {
			case "go":
				w := benchfmt.NewWriter(c.stdout)
				for _, s := range suites {
					if err := w.WriteSuite(s); err != nil {
						return err
					}
				}
				return nil
			case "json":
				return doc.WriteJSON(c.stdout)
			case "js":
				return doc.WriteJS(c.stdout)
			default:
				return errors.Errorf("unknown format %q (want go, json or js)", format)
			}
		},
	}
	addSuiteFlag(cmd)
	cmd.Flags().String("format", "go", "output `format`: go, json or js")
	return cmd
}

func (c *cli) chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the history of every benchmark of a suite",
		Long: `Chart draws one chart per benchmark of --suite into the --out
directory. Each chart plots every run against its commit, with a line
through the per-commit mean.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSuite(cmd.Context())
			if err != nil {
				return err
			}
			format, err := chart.ParseFormat(c.v.GetString("format"))
			if err != nil {
				return err
			}
			opts := chart.Options{Format: format, Parallel: c.v.GetInt("parallel")}
			paths, err := chart.RenderAll(cmd.Context(), s, c.v.GetString("out"), opts, c.logger)
			if err != nil {
				return err
			}
			for _, p := range paths {
				c.printf("%s\n", p)
			}
			c.logger.Info("rendered charts", zap.String("suite", s.Name), zap.Int("count", len(paths)))
			return nil
		},
	}
	addSuiteFlag(cmd)
	f := cmd.Flags()
	f.StringP("out", "o", "charts", "write charts to `dir`")
	f.String("format", "png", "image `format`: png or svg")
	f.Int("parallel", runtime.GOMAXPROCS(0), "draw at most `n` charts at once")
	return cmd
}
