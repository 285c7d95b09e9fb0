// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables for terminal output.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows [][]cell
	cols int
}

type cell struct {
	value     string
	margin    string
	alignment align
}

// A CellOption changes how a cell is laid out.
type CellOption func(c *cell)

// LeftMargin sets the text printed to the left of a cell in place
// of the default single space.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.margin = x
	}
}

var (
	Left  CellOption = func(c *cell) { c.alignment = alignLeft }
	Right CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	r := len(t.rows) - 1
	c := cell{value: value, margin: " "}
	if len(t.rows[r]) == 0 {
		c.margin = ""
	}
	for _, o := range opts {
		o(&c)
	}
	t.rows[r] = append(t.rows[r], c)
	if len(t.rows[r]) > t.cols {
		t.cols = len(t.rows[r])
	}
	return t
}

// Cells adds a left-aligned cell for each value.
func (t *Table) Cells(values ...string) *Table {
	for _, v := range values {
		t.Cell(v)
	}
	return t
}

// Format lays out table t and writes it to w. Trailing spaces are
// never printed.
func (t *Table) Format(w io.Writer) error {
	// Column widths include the widest left margin of the column.
	margins := make([]int, t.cols)
	widths := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			margins[i] = max(margins[i], utf8.RuneCountInString(c.margin))
			widths[i] = max(widths[i], utf8.RuneCountInString(c.value))
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, c := range row {
			fmt.Fprintf(&line, "%*s", margins[i], c.margin)
			line.WriteString(c.alignment.pad(c.value, widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
