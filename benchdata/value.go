// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Null is the textual sentinel recorded in place of a measurement
// that was not collected.
const Null = "null"

// A Value is a measurement as it was recorded: a decimal number kept
// as text, or the sentinel "null".
//
// Values keep the exact lexical form they were read with, including
// whether they were written as a JSON string or as a bare JSON number,
// so that re-serializing a Document reproduces its input.
type Value struct {
	text string
	bare bool
}

// NewValue returns the Value for v, formatted with the fewest digits
// that represent v exactly.
func NewValue(v float64) Value {
	return Value{text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// NullValue returns a Value recording that no measurement was collected.
func NullValue() Value {
	return Value{text: Null}
}

// ParseValue returns the Value for text, which must be a finite
// decimal number or "null".
func ParseValue(text string) (Value, error) {
	v := Value{text: text}
	if err := v.check(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// String returns v's original text.
func (v Value) String() string {
	return v.text
}

// IsNull reports whether v is the "null" sentinel.
func (v Value) IsNull() bool {
	return v.text == Null
}

// Float parses v. It returns false for the null sentinel and for
// text that is not a finite number. A null value is never reported
// as zero.
func (v Value) Float() (float64, bool) {
	if v.text == "" || v.IsNull() {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (v Value) check() error {
	switch {
	case v.text == "":
		return errors.New("empty value")
	case v.IsNull():
		return nil
	}
	if _, ok := v.Float(); !ok {
		return errors.Errorf("value %q is neither a finite number nor %q", v.text, Null)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.bare {
		return []byte(v.text), nil
	}
	var buf bytes.Buffer
	if err := encodeTo(&buf, v.text); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a string, a
// number or the null literal.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Value{text: Null, bare: true}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "measurement value")
	}
	*v = Value{text: n.String(), bare: true}
	return nil
}
