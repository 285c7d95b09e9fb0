// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"regexp"
	"testing"
)

func TestCreateTablesValueColumn(t *testing.T) {
	for _, driver := range []string{"sqlite3", "mysql"} {
		var buf bytes.Buffer
		if err := createTmpl.Execute(&buf, map[string]bool{driver: true}); err != nil {
			t.Fatal(err)
		}
		// Values are decimal text of any length.
		if !regexp.MustCompile(`\n\tValue TEXT NOT NULL,`).Match(buf.Bytes()) {
			t.Errorf("%s: Measurements.Value is not TEXT:\n%s", driver, buf.String())
		}
	}
}
