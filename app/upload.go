// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/fs"
)

// maxUpload limits the size of an uploaded entry.
const maxUpload = 8 << 20

// uploadStatus is the response to an /upload POST served as JSON.
type uploadStatus struct {
	Suite   string `json:"suite"`
	Index   int    `json:"index"`   // index of the new entry in its suite
	Entries int    `json:"entries"` // entries in the history after the upload
}

// upload is the handler for the /upload endpoint. It appends the
// JSON-encoded benchdata.Entry in the body of a POST request to the
// suite named by the "suite" parameter.
func (a *App) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "/upload must be called as a POST request", http.StatusMethodNotAllowed)
		return
	}

	user := ""
	if a.Auth != nil {
		var err error
		user, err = a.Auth(w, r)
		switch {
		case err == ErrResponseWritten:
			return
		case err != nil:
			a.fail(w, r, http.StatusForbidden, err)
			return
		}
	}

	suite := r.FormValue("suite")
	if suite == "" {
		a.fail(w, r, http.StatusBadRequest, errors.New("missing suite parameter"))
		return
	}
	var e benchdata.Entry
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpload))
	if err := dec.Decode(&e); err != nil {
		a.fail(w, r, http.StatusBadRequest, errors.Wrap(err, "decoding entry"))
		return
	}

	status, err := a.appendEntry(r, suite, &e)
	if err != nil {
		var verr *benchdata.ValidationError
		code := http.StatusInternalServerError
		if errors.As(err, &verr) || errors.Is(err, benchdata.ErrOutOfOrder) {
			code = http.StatusBadRequest
		}
		a.fail(w, r, code, err)
		return
	}
	a.Metrics.appended(suite)
	a.logger().Info("appended entry",
		zap.String("suite", suite),
		zap.String("commit", e.Commit.ShortID()),
		zap.Int("index", status.Index),
		zap.String("user", user))
	a.writeJSON(w, r, status)
}

// appendEntry adds e to the history file and then to the database.
func (a *App) appendEntry(r *http.Request, suite string, e *benchdata.Entry) (*uploadStatus, error) {
	ctx := r.Context()
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := doc.Append(suite, e); err != nil {
		return nil, err
	}
	if err := fs.Save(ctx, a.FS, a.dataFile(), doc); err != nil {
		return nil, err
	}
	// The entry is recorded once the file is saved. A failed Import
	// is caught up by the next upload or Sync.
	if a.DB != nil {
		if _, err := a.DB.Import(ctx, doc); err != nil {
			a.logger().Error("indexing entry", zap.String("suite", suite), zap.Error(err))
		}
	}
	return &uploadStatus{
		Suite:   suite,
		Index:   len(doc.Suite(suite).Entries) - 1,
		Entries: doc.Len(),
	}, nil
}
