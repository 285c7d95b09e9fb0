// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/benchfmt"
	"github.com/yewstack/benchdata/fs"
)

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check history files against the schema",
		Long: `Validate checks that every entry has a commit id, an ISO-8601 commit
timestamp and a date, that every value is a finite number or "null",
and that the entries of each suite are in date order. With no
arguments it checks the --data file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{c.v.GetString("data")}
			}
			bad := 0
			for _, path := range args {
				doc, err := benchdata.ReadFile(path)
				if err != nil {
					return err
				}
				err = doc.Validate()
				var verr *benchdata.ValidationError
				switch {
				case errors.As(err, &verr):
					for _, p := range verr.Problems {
						c.printf("%s: %s\n", path, p)
					}
					bad += len(verr.Problems)
				case err != nil:
					return err
				default:
					c.printf("%s: ok, %d suites, %d entries\n", path, len(doc.Suites()), doc.Len())
				}
			}
			if bad > 0 {
				return errors.Errorf("found %d problems", bad)
			}
			return nil
		},
	}
}

// addEntryFlags adds the flags that describe a new run.
func addEntryFlags(f *pflag.FlagSet) {
	f.StringP("suite", "s", "", "suite `name`")
	f.String("format", "custom", "input `format`: custom (JSON list of results) or go (go test -bench output)")
	f.String("tool", "", "tool `tag` recorded with the run (default customSmallerIsBetter, or go for --format=go)")
	f.String("commit", "", "`id` of the benchmarked commit")
	f.String("commit-timestamp", "", "commit `time` in ISO-8601 form (default now)")
	f.String("commit-message", "", "commit `message`")
	f.String("commit-url", "", "commit `URL`")
	f.String("author-name", "", "commit author `name`")
	f.String("author-email", "", "commit author `email`")
	f.String("author-username", "", "commit author `username`")
	f.String("date", "", "run `time` in ISO-8601 form (default now)")
}

func (c *cli) parseTime(key string, now time.Time) (time.Time, error) {
	s := c.v.GetString(key)
	if s == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, errors.Wrapf(err, "--%s", key)
}

// newEntry builds an entry from the entry flags and the results read
// from the named files, or standard input if there are none.
func (c *cli) newEntry(paths []string) (*benchdata.Entry, error) {
	v := c.v
	if v.GetString("commit") == "" {
		return nil, errors.New("--commit is required")
	}
	now := time.Now()
	ts, err := c.parseTime("commit-timestamp", now)
	if err != nil {
		return nil, err
	}
	date, err := c.parseTime("date", now)
	if err != nil {
		return nil, err
	}
	commit := benchdata.Commit{
		Author: benchdata.Person{
			Name:     v.GetString("author-name"),
			Email:    v.GetString("author-email"),
			Username: v.GetString("author-username"),
		},
		ID:        v.GetString("commit"),
		Message:   v.GetString("commit-message"),
		Timestamp: ts.Format(time.RFC3339),
		URL:       v.GetString("commit-url"),
	}
	commit.Committer = commit.Author

	var benches []benchdata.Measurement
	tool := v.GetString("tool")
	switch format := v.GetString("format"); format {
	case "custom":
		if tool == "" {
			tool = benchdata.ToolCustomSmallerIsBetter
		}
		if benches, err = readCustom(paths); err != nil {
			return nil, err
		}
	case "go":
		if tool == "" {
			tool = benchdata.ToolGo
		}
		files := &benchfmt.Files{Paths: paths, AllowStdin: true}
		ms, syntaxErrs, err := benchfmt.ReadMeasurements(files)
		if err != nil {
			return nil, err
		}
		for _, serr := range syntaxErrs {
			c.logger.Warn("skipping malformed result", zap.Error(serr))
		}
		benches = ms
	default:
		return nil, errors.Errorf("unknown format %q (want custom or go)", format)
	}
	if len(benches) == 0 {
		return nil, errors.New("no benchmark results in input")
	}
	return benchdata.NewEntry(commit, tool, date, benches), nil
}

func readCustom(paths []string) ([]benchdata.Measurement, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var all []benchdata.Measurement
	for _, path := range paths {
		var r io.Reader = os.Stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		ms, err := benchdata.ParseCustom(r)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		all = append(all, ms...)
	}
	return all, nil
}

func (c *cli) appendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append [file...]",
		Short: "Record a new run in the history file",
		Long: `Append reads benchmark results from the named files, or standard
input, and appends them as a new run of --suite at --commit. The run
must not be older than the last run of the suite. If the history
file does not exist it is created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			suite := c.v.GetString("suite")
			if suite == "" {
				return errors.New("--suite is required")
			}
			e, err := c.newEntry(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			dir, name := c.dataFS()
			doc, err := fs.Load(ctx, dir, name)
			if errors.Is(err, fs.ErrNotExist) {
				doc, err = benchdata.New(c.v.GetString("repo-url")), nil
			}
			if err != nil {
				return err
			}
			if err := doc.Append(suite, e); err != nil {
				return err
			}
			if err := fs.Save(ctx, dir, name, doc); err != nil {
				return err
			}
			c.logger.Info("appended entry",
				zap.String("suite", suite),
				zap.String("commit", e.Commit.ShortID()),
				zap.Int("benches", len(e.Benches)))
			c.printf("appended run %d of suite %q with %d results\n",
				len(doc.Suite(suite).Entries)-1, suite, len(e.Benches))
			return nil
		},
	}
	addEntryFlags(cmd.Flags())
	cmd.Flags().String("repo-url", "", "repository `URL` recorded in a new history file")
	return cmd
}

// uploadStatus is the server's response to an upload.
type uploadStatus struct {
	Suite   string `json:"suite"`
	Index   int    `json:"index"`
	Entries int    `json:"entries"`
}

func (c *cli) uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [file...]",
		Short: "Record a new run on a benchdata server",
		Long: `Upload is like append, but sends the run to the server at --server.
If --token is set, it is sent as an OAuth2 bearer token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			suite := c.v.GetString("suite")
			if suite == "" {
				return errors.New("--suite is required")
			}
			e, err := c.newEntry(args)
			if err != nil {
				return err
			}
			status, err := c.upload(cmd.Context(), suite, e)
			if err != nil {
				return err
			}
			c.printf("uploaded run %d of suite %q (%d entries in history)\n", status.Index, status.Suite, status.Entries)
			return nil
		},
	}
	addEntryFlags(cmd.Flags())
	cmd.Flags().String("server", "http://localhost:8080", "upload to server at `url`")
	cmd.Flags().String("token", "", "OAuth2 bearer `token`")
	return cmd
}

func (c *cli) upload(ctx context.Context, suite string, e *benchdata.Entry) (*uploadStatus, error) {
	hc := http.DefaultClient
	if token := c.v.GetString("token"); token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	u := strings.TrimSuffix(c.v.GetString("server"), "/") + "/upload?" + url.Values{"suite": {suite}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "upload failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("upload failed: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	status := new(uploadStatus)
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		return nil, errors.Wrap(err, "cannot parse upload response")
	}
	c.logger.Debug("uploaded entry", zap.Duration("elapsed", time.Since(start)))
	return status, nil
}
