// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/benchunit"
	"github.com/yewstack/benchdata/scenario"
	"github.com/yewstack/benchdata/trend"
)

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Benchmarks</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; }
td, th { padding: 2px 8px; text-align: left; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>Benchmarks</h1>
{{with .RepoURL}}<p>Repository: {{.}}</p>{{end}}
<p>Last updated {{.LastUpdate}}. <a href="/data.js">data.js</a></p>
{{range .Suites}}
<h2>{{.Name}}</h2>
<p>{{.Entries}} runs of {{.Commits}} commits.</p>
<table>
<tr><th>Benchmark</th><th>Scenario</th><th>Latest</th><th>Change</th><th></th></tr>
{{range .Benches}}
<tr>
<td>{{.Name}}</td>
<td>{{.Label}}</td>
<td class="num">{{.Latest}}</td>
<td class="num">{{.Delta}}{{with .Verdict}} ({{.}}){{end}}</td>
<td><a href="{{.Chart}}">chart</a> <a href="{{.Trend}}">trend</a></td>
</tr>
{{end}}
</table>
{{else}}
<p>No benchmark results have been recorded.</p>
{{end}}
</body>
</html>
`

type indexData struct {
	RepoURL    string
	LastUpdate string
	Suites     []indexSuite
}

type indexSuite struct {
	suiteInfo
	Benches []indexBench
}

type indexBench struct {
	Name, Label   string
	Latest, Delta string
	Verdict       string
	Chart, Trend  safehtml.URL
}

// index serves an HTML overview of every suite and benchmark.
func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireGET(w, r) {
		return
	}
	doc, err := a.load(r.Context())
	if err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, newIndexData(doc)); err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func newIndexData(doc *benchdata.Document) *indexData {
	data := &indexData{RepoURL: doc.RepoURL, LastUpdate: "never"}
	if doc.LastUpdate > 0 {
		data.LastUpdate = time.UnixMilli(doc.LastUpdate).UTC().Format(time.RFC3339)
	}
	for _, s := range doc.Suites() {
		is := indexSuite{suiteInfo: describe(s)}
		for _, name := range s.BenchNames() {
			ser := s.Series(name)
			ib := indexBench{Name: name, Latest: "-", Delta: "-"}
			if sc := scenario.Parse(name); sc.Kind != scenario.Unknown {
				ib.Label = sc.Label()
			}
			tr := trend.Of(ser)
			if row, ok := tr.Last(); ok {
				ib.Latest = formatValue(row.Mean, scenario.Unit(name, ser.Unit))
				if len(tr.Rows) > 1 {
					ib.Delta = formatDelta(row.Delta)
					ib.Verdict = row.Verdict()
				}
			}
			q := url.Values{"suite": {s.Name}, "bench": {name}}.Encode()
			ib.Chart = safehtml.URLSanitized("/chart.png?" + q)
			ib.Trend = safehtml.URLSanitized("/api/trend?" + q)
			is.Benches = append(is.Benches, ib)
		}
		data.Suites = append(data.Suites, is)
	}
	return data
}

func formatValue(v float64, unit string) string {
	if unit == "" {
		return benchunit.Scale(v, benchunit.Decimal)
	}
	return benchunit.Format(v, unit)
}

func formatDelta(d float64) string {
	if d == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%+.2f%%", d*100)
}
