// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// jsPrefix is the assignment that wraps the JSON document in the
// generated data file.
const jsPrefix = "window.BENCHMARK_DATA = "

// jsonDoc is the on-disk shape of a Document. Entries is decoded by
// hand to keep suite order.
type jsonDoc struct {
	LastUpdate int64           `json:"lastUpdate"`
	RepoURL    string          `json:"repoUrl"`
	Entries    json.RawMessage `json:"entries"`
}

// Parse reads a Document from r. The input may be the generated
// JavaScript file or the bare JSON object.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseBytes is like Parse but reads from a byte slice.
func ParseBytes(data []byte) (*Document, error) {
	data = stripJS(data)
	var jd jsonDoc
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, errors.Wrap(err, "parsing benchmark data")
	}
	d := &Document{LastUpdate: jd.LastUpdate, RepoURL: jd.RepoURL}
	if len(jd.Entries) == 0 || bytes.Equal(jd.Entries, []byte("null")) {
		return d, nil
	}
	if err := d.decodeSuites(jd.Entries); err != nil {
		return nil, errors.Wrap(err, "parsing benchmark entries")
	}
	return d, nil
}

// ReadFile reads the Document stored in the named file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return d, nil
}

// stripJS removes the JavaScript assignment around the JSON object,
// if present.
func stripJS(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte("window.")) {
		return data
	}
	if i := bytes.IndexByte(data, '='); i >= 0 {
		data = data[i+1:]
	}
	data = bytes.TrimSpace(data)
	data = bytes.TrimSuffix(data, []byte(";"))
	return bytes.TrimSpace(data)
}

func (d *Document) decodeSuites(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("entries: want object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string) // object keys are always strings
		if d.Suite(name) != nil {
			return errors.Errorf("duplicate suite %q", name)
		}
		s := &Suite{Name: name}
		if err := dec.Decode(&s.Entries); err != nil {
			return errors.Wrapf(err, "suite %q", name)
		}
		for i, e := range s.Entries {
			if e == nil {
				return errors.Errorf("suite %q: entry %d is null", name, i)
			}
		}
		d.suites = append(d.suites, s)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON implements json.Marshaler. The output lists suites in
// Document order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"lastUpdate":`)
	if err := encodeTo(&buf, d.LastUpdate); err != nil {
		return nil, err
	}
	buf.WriteString(`,"repoUrl":`)
	if err := encodeTo(&buf, d.RepoURL); err != nil {
		return nil, err
	}
	buf.WriteString(`,"entries":{`)
	for i, s := range d.suites {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeTo(&buf, s.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		entries := s.Entries
		if entries == nil {
			entries = []*Entry{}
		}
		if err := encodeTo(&buf, entries); err != nil {
			return nil, errors.Wrapf(err, "suite %q", s.Name)
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	nd, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*d = *nd
	return nil
}

// MarshalJSON implements json.Marshaler so that entries without
// measurements are written as an empty list.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type entry Entry
	c := *e
	if c.Benches == nil {
		c.Benches = []Measurement{}
	}
	var buf bytes.Buffer
	if err := encodeTo(&buf, (*entry)(&c)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeTo appends the compact JSON encoding of v to buf without
// escaping HTML characters and without a trailing newline.
func encodeTo(buf *bytes.Buffer, v interface{}) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends '\n'
	return nil
}

// WriteJSON writes d to w as indented JSON.
func (d *Document) WriteJSON(w io.Writer) error {
	data, err := d.indented()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteJS writes d to w in the generated JavaScript form read by
// dashboards. For a Document read from such a file and not modified,
// the output is identical to the input.
func (d *Document) WriteJS(w io.Writer) error {
	data, err := d.indented()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, jsPrefix); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (d *Document) indented() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
