// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchdata inspects and maintains a continuous-benchmark history file.
//
// Usage:
//
//	benchdata [--data file] [--config file] [-v] command [flags] [args]
//
// The history file (default data.js) is the JavaScript file
//
//	window.BENCHMARK_DATA = {...}
//
// written by continuous benchmarking and read by its dashboard. The
// commands are:
//
//	validate   check the history file against its schema
//	suites     list suites
//	benches    list the benchmarks of a suite
//	series     print the history of one benchmark
//	trend      print the per-commit trend of one benchmark
//	summary    summarize the runs of one commit
//	compare    compare the runs of two commits
//	frameworks compare the frameworks measured in one run
//	append     record a new run
//	export     print a suite in Go benchmark format or as JSON
//	chart      draw charts of every benchmark of a suite
//	import     index the history in a SQL database
//	serve      serve the history over HTTP
//	upload     record a new run on a server
//
// Every flag can also be set in the config file (benchdata.yaml in the
// current directory by default) or with an environment variable
// named BENCHDATA_ followed by the flag name in upper case, with
// dashes replaced by underscores, such as BENCHDATA_DB_DSN.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/net/context"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/fs"
)

// A cli holds the state shared by all commands.
type cli struct {
	v      *viper.Viper
	stdout io.Writer
	logger *zap.Logger

	cfgFile string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), stdout: stdout, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "benchdata",
		Short:        "Inspect and maintain a benchmark history file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.SetOut(stdout)
	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config `file` (default is ./benchdata.yaml)")
	pf.String("data", "data.js", "benchmark history `file`")
	pf.BoolP("verbose", "v", false, "print debug log messages")

	root.AddCommand(
		c.validateCmd(),
		c.suitesCmd(),
		c.benchesCmd(),
		c.seriesCmd(),
		c.trendCmd(),
		c.summaryCmd(),
		c.compareCmd(),
		c.frameworksCmd(),
		c.appendCmd(),
		c.exportCmd(),
		c.chartCmd(),
		c.importCmd(),
		c.serveCmd(),
		c.uploadCmd(),
	)
	return root
}

// init reads the configuration and builds the logger. Flags bound
// here include those of the command being run.
func (c *cli) init(cmd *cobra.Command) error {
	v := c.v
	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("benchdata")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config")
		}
	}
	v.SetEnvPrefix("BENCHDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if v.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	c.logger = logger
	if used := v.ConfigFileUsed(); used != "" {
		c.logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// dataFS returns the filesystem holding the history file and the
// file's name within it.
func (c *cli) dataFS() (fs.FS, string) {
	path := c.v.GetString("data")
	return fs.DirFS{Root: filepath.Dir(path)}, filepath.Base(path)
}

// load reads the history file.
func (c *cli) load(ctx context.Context) (*benchdata.Document, error) {
	dir, name := c.dataFS()
	doc, err := fs.Load(ctx, dir, name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("loaded history",
		zap.String("path", c.v.GetString("data")),
		zap.Int("suites", len(doc.Suites())),
		zap.Int("entries", doc.Len()))
	return doc, nil
}

// loadSuite reads the history file and returns the suite named by the
// --suite flag. If the flag is empty and the history has exactly one
// suite, that suite is used.
func (c *cli) loadSuite(ctx context.Context) (*benchdata.Suite, error) {
	doc, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	name := c.v.GetString("suite")
	if name == "" {
		if suites := doc.Suites(); len(suites) == 1 {
			return suites[0], nil
		}
		return nil, errors.Errorf("--suite is required; suites are %q", doc.SuiteNames())
	}
	s := doc.Suite(name)
	if s == nil {
		return nil, errors.Wrapf(benchdata.ErrNoSuite, "%q", name)
	}
	return s, nil
}

func addSuiteFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("suite", "s", "", "suite `name`")
}

func (c *cli) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.stdout, format, args...)
}
