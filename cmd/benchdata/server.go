// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/net/context"

	"github.com/yewstack/benchdata/app"
	"github.com/yewstack/benchdata/fs/gcs"
	"github.com/yewstack/benchdata/store"
	_ "github.com/yewstack/benchdata/store/sqlite3"
)

func addDBFlags(f *pflag.FlagSet, dsn string) {
	f.String("db-driver", "sqlite3", "database `driver`: sqlite3 or mysql")
	f.String("db-dsn", dsn, "database `source` name")
	f.String("cloudsql", "", "connect to the Cloud SQL MySQL `instance` (project:region:name)")
	f.String("cloudsql-user", "root", "Cloud SQL `user`")
	f.String("cloudsql-password", "", "Cloud SQL `password`")
	f.String("cloudsql-database", "benchdata", "Cloud SQL `database`")
}

// openDB opens the database named by the database flags. It returns
// nil if no database is configured.
func (c *cli) openDB() (*store.DB, error) {
	v := c.v
	driver, dsn := v.GetString("db-driver"), v.GetString("db-dsn")
	if inst := v.GetString("cloudsql"); inst != "" {
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@cloudsql(%s)/%s",
			v.GetString("cloudsql-user"), v.GetString("cloudsql-password"), inst, v.GetString("cloudsql-database"))
	}
	if dsn == "" {
		return nil, nil
	}
	db, err := store.OpenSQL(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	c.logger.Debug("opened database", zap.String("driver", driver))
	return db, nil
}

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Index the history in a SQL database",
		Long: `Import copies the runs of the history file that the database does
not have yet into the database. Runs already in the database are not
touched, so import can be repeated as the history grows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := c.load(ctx)
			if err != nil {
				return err
			}
			db, err := c.openDB()
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("--db-dsn or --cloudsql is required")
			}
			defer db.Close()
			n, err := db.Import(ctx, doc)
			if err != nil {
				return err
			}
			total, err := db.CountEntries(ctx)
			if err != nil {
				return err
			}
			c.printf("imported %d runs; database holds %d runs\n", n, total)
			return nil
		},
	}
	addDBFlags(cmd.Flags(), "benchdata.db")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the history over HTTP",
		Long: `Serve starts an HTTP server for the history file.

The history is read from --data, or from the object of that name in
the Google Cloud Storage bucket --bucket. If a database is configured
it is synced with the history at startup and after every upload, and
answers series queries.

Uploads must carry the bearer token --token, if set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	f := cmd.Flags()
	addDBFlags(f, "")
	f.String("addr", ":8080", "serve HTTP on `address`")
	f.String("bucket", "", "read and write the history in the GCS `bucket`")
	f.String("repo-url", "", "repository `URL` recorded in a new history file")
	f.String("token", "", "require bearer `token` for uploads")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	v := c.v
	a := &app.App{
		RepoURL: v.GetString("repo-url"),
		Logger:  c.logger,
		Metrics: app.NewMetrics(),
	}
	if bucket := v.GetString("bucket"); bucket != "" {
		gfs, err := gcs.NewFS(ctx, bucket)
		if err != nil {
			return errors.Wrap(err, "opening bucket")
		}
		a.FS, a.DataFile = gfs, v.GetString("data")
	} else {
		a.FS, a.DataFile = c.dataFS()
	}
	if token := v.GetString("token"); token != "" {
		a.Auth = bearerAuth(token)
	}

	db, err := c.openDB()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		a.DB = db
		if err := a.Sync(ctx); err != nil {
			return errors.Wrap(err, "indexing history")
		}
	}

	mux := http.NewServeMux()
	a.RegisterOnMux(mux)
	srv := &http.Server{
		Addr:              v.GetString("addr"),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		c.logger.Info("listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	c.logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// bearerAuth returns an App.Auth function that accepts requests
// carrying token as an OAuth2 bearer token.
func bearerAuth(token string) func(http.ResponseWriter, *http.Request) (string, error) {
	return func(w http.ResponseWriter, r *http.Request) (string, error) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="benchdata"`)
			http.Error(w, "invalid or missing token", http.StatusUnauthorized)
			return "", app.ErrResponseWritten
		}
		return "uploader", nil
	}
}
