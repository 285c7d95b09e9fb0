// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the benchmark history server. Combine an App
// with a filesystem, and optionally a database, to get an HTTP server.
//
// The history file in FS is the source of truth. The database, when
// present, is an index of the file used to answer series queries; it
// is brought up to date with store.DB.Import whenever the file grows.
package app

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/context"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/fs"
	"github.com/yewstack/benchdata/store"
)

// DefaultDataFile is the name of the history file used when
// App.DataFile is empty.
const DefaultDataFile = "data.js"

// App manages the server logic. Construct an App instance using a
// literal with at least FS and call RegisterOnMux to connect it with
// an HTTP server.
type App struct {
	FS       fs.FS
	DataFile string
	RepoURL  string // for a history file that does not exist yet

	DB      *store.DB // optional
	Logger  *zap.Logger
	Metrics *Metrics // optional

	// Auth obtains the username for an /upload request.
	// If necessary, it can write its own response (e.g. a
	// redirect) and return ErrResponseWritten. A nil Auth
	// accepts every request.
	Auth func(http.ResponseWriter, *http.Request) (string, error)

	mu sync.Mutex // serializes uploads
}

// ErrResponseWritten can be returned by App.Auth to abort the normal /upload handling.
var ErrResponseWritten = errors.New("response written")

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	for _, h := range []struct {
		pattern string
		fn      http.HandlerFunc
	}{
		{"/", a.index},
		{"/data.js", a.dataJS},
		{"/api/suites", a.suites},
		{"/api/benches", a.benches},
		{"/api/series", a.series},
		{"/api/trend", a.trend},
		{"/api/frameworks", a.frameworks},
		{"/chart.png", a.chart},
		{"/upload", a.upload},
	} {
		mux.Handle(h.pattern, a.Metrics.instrument(h.pattern, h.fn))
	}
	if a.Metrics != nil {
		mux.Handle("/metrics", a.Metrics.Handler())
	}
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) dataFile() string {
	if a.DataFile == "" {
		return DefaultDataFile
	}
	return a.DataFile
}

// load reads the current history. A missing file is an empty history.
func (a *App) load(ctx context.Context) (*benchdata.Document, error) {
	doc, err := fs.Load(ctx, a.FS, a.dataFile())
	if errors.Is(err, fs.ErrNotExist) {
		return benchdata.New(a.RepoURL), nil
	}
	return doc, err
}

// Sync brings the database index up to date with the history file.
// It does nothing if a has no database.
func (a *App) Sync(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	doc, err := a.load(ctx)
	if err != nil {
		return err
	}
	n, err := a.DB.Import(ctx, doc)
	if n > 0 {
		a.logger().Info("indexed entries", zap.Int("count", n))
	}
	return err
}

// fail logs err and replies with an HTTP error.
func (a *App) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	log := a.logger().With(zap.String("path", r.URL.Path), zap.Int("code", code))
	if code >= 500 {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("bad request", zap.Error(err))
	}
	http.Error(w, err.Error(), code)
}

func (a *App) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		a.logger().Error("writing response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// requireGET rejects requests with other methods.
func requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, r.URL.Path+" must be called as a GET request", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
