// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store indexes benchmark history in a SQL database.
//
// The database mirrors the append-only history file: entries are
// inserted at the end of their suite and never updated or deleted.
package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/yewstack/benchdata/benchdata"
)

// DB is a benchmark history database. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertSuite       *sql.Stmt
	selectSuite       *sql.Stmt
	lastEntry         *sql.Stmt
	insertEntry       *sql.Stmt
	insertMeasurement *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// enable foreign keys. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Suites (
	SuiteID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(255) NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS Entries (
	SuiteID BIGINT UNSIGNED,
	EntryID BIGINT UNSIGNED,
	CommitID VARCHAR(255) NOT NULL,
	Recorded BIGINT NOT NULL,
	Tool VARCHAR(64),
	CommitJSON BLOB,
	PRIMARY KEY (SuiteID, EntryID),
{{if not .sqlite3}}
	Index (CommitID),
{{end}}
	FOREIGN KEY (SuiteID) REFERENCES Suites(SuiteID)
);
CREATE TABLE IF NOT EXISTS Measurements (
	SuiteID BIGINT UNSIGNED,
	EntryID BIGINT UNSIGNED,
	Seq INT UNSIGNED,
	Name VARCHAR(255) NOT NULL,
	Value TEXT NOT NULL,
	Bare BOOLEAN NOT NULL,
	Unit VARCHAR(64),
	RangeText VARCHAR(255),
	Extra VARCHAR(1024),
	PRIMARY KEY (SuiteID, EntryID, Seq),
{{if not .sqlite3}}
	Index (SuiteID, Name),
{{end}}
	FOREIGN KEY (SuiteID, EntryID) REFERENCES Entries(SuiteID, EntryID)
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS EntriesCommitID ON Entries(CommitID);
CREATE INDEX IF NOT EXISTS MeasurementsSuiteName ON Measurements(SuiteID, Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return errors.Wrap(err, "create table")
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	insertSuite := "INSERT IGNORE INTO Suites(Name) VALUES (?)"
	if driverName == "sqlite3" {
		insertSuite = "INSERT OR IGNORE INTO Suites(Name) VALUES (?)"
	}
	for _, p := range []struct {
		stmt **sql.Stmt
		q    string
	}{
		{&db.insertSuite, insertSuite},
		{&db.selectSuite, "SELECT SuiteID FROM Suites WHERE Name = ?"},
		{&db.lastEntry, "SELECT EntryID, Recorded FROM Entries WHERE SuiteID = ? ORDER BY EntryID DESC LIMIT 1"},
		{&db.insertEntry, "INSERT INTO Entries(SuiteID, EntryID, CommitID, Recorded, Tool, CommitJSON) VALUES (?, ?, ?, ?, ?, ?)"},
		{&db.insertMeasurement, "INSERT INTO Measurements(SuiteID, EntryID, Seq, Name, Value, Bare, Unit, RangeText, Extra) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"},
	} {
		stmt, err := db.sql.Prepare(p.q)
		if err != nil {
			return errors.Wrapf(err, "prepare %q", p.q)
		}
		*p.stmt = stmt
	}
	return nil
}

// InsertEntry appends e to the suite called suite, creating the suite
// if needed, and returns the index of e in its suite. The entry and
// all of its measurements are written in a single transaction.
//
// Like benchdata.Document.Append, InsertEntry rejects invalid entries
// and entries dated before the last entry of the suite.
func (db *DB) InsertEntry(ctx context.Context, suite string, e *benchdata.Entry) (idx int64, err error) {
	if suite == "" {
		return 0, errors.New("empty suite name")
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}
	commit, err := json.Marshal(e.Commit)
	if err != nil {
		return 0, err
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err := tx.StmtContext(ctx, db.insertSuite).ExecContext(ctx, suite); err != nil {
		return 0, errors.Wrap(err, "insert suite")
	}
	var suiteID int64
	if err := tx.StmtContext(ctx, db.selectSuite).QueryRowContext(ctx, suite).Scan(&suiteID); err != nil {
		return 0, errors.Wrap(err, "select suite")
	}

	var lastDate int64
	err = tx.StmtContext(ctx, db.lastEntry).QueryRowContext(ctx, suiteID).Scan(&idx, &lastDate)
	switch {
	case err == sql.ErrNoRows:
		idx, err = 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "select last entry")
	case e.Date < lastDate:
		return 0, errors.Wrapf(benchdata.ErrOutOfOrder, "suite %q: date %d before %d", suite, e.Date, lastDate)
	default:
		idx++
	}

	if _, err := tx.StmtContext(ctx, db.insertEntry).ExecContext(ctx, suiteID, idx, e.Commit.ID, e.Date, e.Tool, commit); err != nil {
		return 0, errors.Wrap(err, "insert entry")
	}
	insertM := tx.StmtContext(ctx, db.insertMeasurement)
	for i, m := range e.Benches {
		bare := isBare(m.Value)
		if _, err := insertM.ExecContext(ctx, suiteID, idx, i, m.Name, m.Value.String(), bare, m.Unit, m.Range, m.Extra); err != nil {
			return 0, errors.Wrapf(err, "insert measurement %q", m.Name)
		}
	}
	return idx, nil
}

// isBare reports whether v was written as a bare JSON number or null
// rather than as a string.
func isBare(v benchdata.Value) bool {
	b, _ := v.MarshalJSON()
	return len(b) == 0 || b[0] != '"'
}

// decodeValue restores a Value stored by InsertEntry.
func decodeValue(text string, bare bool) (benchdata.Value, error) {
	var v benchdata.Value
	if bare {
		err := v.UnmarshalJSON([]byte(text))
		return v, err
	}
	return benchdata.ParseValue(text)
}

// Import inserts the entries of doc that are not yet in db. For each
// suite, db must hold a prefix of the suite's entries, as it does
// after a previous Import of an earlier version of the same history.
// It returns the number of entries inserted.
func (db *DB) Import(ctx context.Context, doc *benchdata.Document) (int, error) {
	counts, err := db.suiteCounts(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range doc.Suites() {
		have := counts[s.Name]
		if have > len(s.Entries) {
			return n, errors.Errorf("suite %q: database has %d entries, document only %d", s.Name, have, len(s.Entries))
		}
		for _, e := range s.Entries[have:] {
			if _, err := db.InsertEntry(ctx, s.Name, e); err != nil {
				return n, errors.Wrapf(err, "suite %q", s.Name)
			}
			n++
		}
	}
	return n, nil
}

func (db *DB) suiteCounts(ctx context.Context) (map[string]int, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT s.Name, COUNT(e.EntryID) FROM Suites s LEFT JOIN Entries e ON s.SuiteID = e.SuiteID GROUP BY s.SuiteID, s.Name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// Suites returns the names of the suites in db in creation order.
func (db *DB) Suites(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Name FROM Suites ORDER BY SuiteID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Series returns the history of the benchmark bench in suite. It is
// the same Series benchdata.Suite.Series computes from the file:
// "null" values are skipped and counted in Missing.
func (db *DB) Series(ctx context.Context, suite, bench string) (*benchdata.Series, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT e.EntryID, e.Recorded, e.CommitID, e.Tool, m.Value, m.Bare, m.Unit
FROM Suites s
JOIN Entries e ON e.SuiteID = s.SuiteID
JOIN Measurements m ON m.SuiteID = e.SuiteID AND m.EntryID = e.EntryID
WHERE s.Name = ? AND m.Name = ?
ORDER BY e.EntryID, m.Seq`, suite, bench)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ser := &benchdata.Series{Suite: suite, Name: bench, Points: []benchdata.Point{}}
	for rows.Next() {
		var p benchdata.Point
		var text string
		var bare bool
		var tool, unit sql.NullString
		if err := rows.Scan(&p.Index, &p.Date, &p.Commit, &tool, &text, &bare, &unit); err != nil {
			return nil, err
		}
		if ser.Unit == "" {
			ser.Unit = unit.String
		}
		v, err := decodeValue(text, bare)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", p.Index)
		}
		f, ok := v.Float()
		if !ok {
			ser.Missing++
			continue
		}
		p.Value = f
		ser.Points = append(ser.Points, p)
		ser.Better = benchdata.Better(tool.String)
	}
	return ser, rows.Err()
}

// Document reconstructs the history held in db. Suites appear in
// creation order and entries in insertion order. LastUpdate is the
// date of the newest entry.
func (db *DB) Document(ctx context.Context, repoURL string) (*benchdata.Document, error) {
	type key struct{ suite, entry int64 }
	var (
		order   []key
		names   = make(map[int64]string)
		entries = make(map[key]*benchdata.Entry)
	)

	rows, err := db.sql.QueryContext(ctx, `
SELECT s.SuiteID, s.Name, e.EntryID, e.Recorded, e.Tool, e.CommitJSON
FROM Suites s JOIN Entries e ON e.SuiteID = s.SuiteID
ORDER BY s.SuiteID, e.EntryID`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var k key
		var name string
		var tool sql.NullString
		var commit []byte
		e := new(benchdata.Entry)
		if err := rows.Scan(&k.suite, &name, &k.entry, &e.Date, &tool, &commit); err != nil {
			rows.Close()
			return nil, err
		}
		e.Tool = tool.String
		if err := json.Unmarshal(commit, &e.Commit); err != nil {
			rows.Close()
			return nil, errors.Wrapf(err, "suite %q entry %d: commit", name, k.entry)
		}
		names[k.suite] = name
		entries[k] = e
		order = append(order, k)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.sql.QueryContext(ctx, `
SELECT SuiteID, EntryID, Name, Value, Bare, Unit, RangeText, Extra
FROM Measurements ORDER BY SuiteID, EntryID, Seq`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var k key
		var m benchdata.Measurement
		var text string
		var bare bool
		var unit, rng, extra sql.NullString
		if err := rows.Scan(&k.suite, &k.entry, &m.Name, &text, &bare, &unit, &rng, &extra); err != nil {
			rows.Close()
			return nil, err
		}
		e := entries[k]
		if e == nil {
			continue
		}
		if m.Value, err = decodeValue(text, bare); err != nil {
			rows.Close()
			return nil, errors.Wrapf(err, "suite %q entry %d bench %q", names[k.suite], k.entry, m.Name)
		}
		m.Unit, m.Range, m.Extra = unit.String, rng.String, extra.String
		e.Benches = append(e.Benches, m)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	doc := benchdata.New(repoURL)
	for _, k := range order {
		if err := doc.Append(names[k.suite], entries[k]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}

// CountEntries returns the number of entries in db.
func (db *DB) CountEntries(ctx context.Context) (n int, err error) {
	err = db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Entries").Scan(&n)
	return
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertSuite, db.selectSuite, db.lastEntry, db.insertEntry, db.insertMeasurement} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
