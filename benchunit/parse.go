// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit manipulates benchmark units and formats numbers
// in those units.
//
// Units are strings such as "ms", "MiB" or "sec/op". A unit may be
// compound: "*" and "/" separate factors of the numerator and
// denominator, and "-" or spaces join words within a factor.
package benchunit

import (
	"fmt"
	"unicode"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal values are scaled by powers of 1000 using SI
	// prefixes such as "k" and "M".
	Decimal Class = iota
	// Binary values are scaled by powers of 1024 using IEC
	// prefixes such as "Ki" and "Mi".
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// byteTokens are the unit tokens that measure bytes.
var byteTokens = map[string]bool{
	"B": true, "bytes": true,
	"kB": true, "KB": true, "KiB": true,
	"MB": true, "MiB": true,
	"GB": true, "GiB": true,
}

// ClassOf returns the Class of unit. If unit measures bytes in the
// numerator, this is Binary. Otherwise, it is Decimal.
func ClassOf(unit string) Class {
	p := newParser(unit)
	for p.next() {
		if byteTokens[p.tok] && !p.denom {
			return Binary
		}
	}
	return Decimal
}

// parser splits a unit into tokens.
type parser struct {
	rest string // unparsed unit
	rpos int    // bytes consumed from the original unit

	tok   string
	pos   int  // byte offset of tok in the original unit
	denom bool // tok is in the denominator
}

func newParser(unit string) *parser {
	return &parser{rest: unit}
}

func isSep(r rune) bool {
	return r == '*' || r == '/' || r == '-' || unicode.IsSpace(r)
}

func (p *parser) next() bool {
	start := -1
	for i, r := range p.rest {
		switch r {
		case '*':
			p.denom = false
		case '/':
			p.denom = true
		}
		if !isSep(r) {
			start = i
			break
		}
	}
	if start < 0 {
		p.rest = ""
		return false
	}
	p.rpos += start
	p.rest = p.rest[start:]

	end := len(p.rest)
	for i, r := range p.rest {
		if isSep(r) {
			end = i
			break
		}
	}
	p.tok = p.rest[:end]
	p.pos = p.rpos
	p.rpos += end
	p.rest = p.rest[end:]
	return true
}
