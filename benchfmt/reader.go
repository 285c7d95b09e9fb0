// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Reader reads the Go benchmark format.
//
// Its API is modeled on bufio.Scanner. To construct a new Reader,
// either call NewReader, or call Reset on a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	rec    Record
	config []Config

	fileName string
	line     int
}

// A SyntaxError represents a syntax error on a particular line of a
// benchmark results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Record is a single record read from a benchmark file. It is a
// *Result or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. If this record was not
	// read from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var (
	_ Record = (*Result)(nil)
	_ Record = (*SyntaxError)(nil)
)

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse the Go benchmark format from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input and
// clears all accumulated configuration.
//
// initConfig is an alternating sequence of keys and values installed
// as configuration before any lines of the input are read.
func (r *Reader) Reset(ior io.Reader, fileName string, initConfig ...string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.s = bufio.NewScanner(ior)
	r.err = nil
	r.rec = nil
	r.config = r.config[:0]
	r.fileName = fileName
	r.line = 0

	if len(initConfig)%2 != 0 {
		panic("len(initConfig) must be a multiple of 2")
	}
	for i := 0; i < len(initConfig); i += 2 {
		r.setConfig(initConfig[i], initConfig[i+1])
	}
}

func (r *Reader) setConfig(key, value string) {
	res := Result{Config: r.config}
	res.SetConfig(key, value)
	r.config = res.Config
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Scan advances the reader to the next record and reports whether one
// was read. The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false, in
// which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if strings.HasPrefix(line, "Benchmark") {
			rec := r.parseBenchmarkLine(line)
			if rec == nil {
				continue
			}
			r.rec = rec
			return true
		}
		if key, val, ok := parseKeyValueLine(line); ok {
			r.setConfig(key, val)
		}
		// Other lines are ignored.
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Result returns the record that was just read by Scan: a *Result or
// a *SyntaxError. Syntax errors are not fatal; the caller can continue
// to call Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// parseKeyValueLine parses a "key: value" configuration line. Keys
// start with a lower case letter and contain neither spaces nor upper
// case letters. An empty value deletes the key.
func parseKeyValueLine(line string) (key, val string, ok bool) {
	colon := -1
	for i, c := range line {
		if i == 0 && !unicode.IsLower(c) {
			return "", "", false
		}
		if unicode.IsSpace(c) || unicode.IsUpper(c) {
			return "", "", false
		}
		if i > 0 && c == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return "", "", false
	}
	key, val = line[:colon], line[colon+1:]
	if val == "" {
		return key, "", true
	}
	// "key:" must be separated from the value by spaces or tabs.
	trimmed := strings.TrimLeft(val, " \t")
	if len(trimmed) == len(val) {
		return "", "", false
	}
	return key, trimmed, true
}

// parseBenchmarkLine parses line as a benchmark result. It returns nil
// for lines that only name a benchmark, as printed by "go test -v".
func (r *Reader) parseBenchmarkLine(line string) Record {
	fields := strings.FieldsFunc(line[len("Benchmark"):], unicode.IsSpace)
	if len(fields) == 0 {
		return nil
	}
	name := fields[0]
	if len(fields) == 1 {
		if !unicode.IsSpace(lastRune(line)) {
			return nil
		}
		return r.newSyntaxError("missing iteration count")
	}

	iters, err := strconv.Atoi(fields[1])
	if err != nil {
		return r.newSyntaxError("parsing iteration count: " + numErr(err))
	}

	res := &Result{
		Config:   append([]Config(nil), r.config...),
		Name:     name,
		Iters:    iters,
		fileName: r.fileName,
		line:     r.line,
	}
	rest := fields[2:]
	if len(rest) == 0 {
		return r.newSyntaxError("missing measurements")
	}
	for ; len(rest) > 0; rest = rest[2:] {
		val, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return r.newSyntaxError("parsing measurement: " + numErr(err))
		}
		if len(rest) < 2 {
			return r.newSyntaxError("missing units")
		}
		res.Values = append(res.Values, NewValue(val, rest[1]))
	}
	return res
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// numErr returns the underlying reason of a strconv error.
func numErr(err error) string {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err.Error()
	}
	return err.Error()
}
