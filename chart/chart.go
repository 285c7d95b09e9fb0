// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws the history of a benchmark as a line chart.
//
// Every recorded run is drawn as a point at its position in the suite,
// and a line joins the per-commit means. Runs that recorded "null" have
// no point. The X axis is labeled with abbreviated commit IDs.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/yewstack/benchdata/benchdata"
	"github.com/yewstack/benchdata/scenario"
	"github.com/yewstack/benchdata/trend"
)

// A Format is an image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, SVG:
		return f, nil
	}
	return "", errors.Errorf("unknown image format %q (want png or svg)", s)
}

// Options control the size and format of rendered charts. Zero fields
// take default values.
type Options struct {
	Format Format
	Width  vg.Length
	Height vg.Length
	DPI    int

	// Parallel limits the number of charts RenderAll draws at
	// once. Zero means no limit.
	Parallel int
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = PNG
	}
	if o.Width == 0 {
		o.Width = 20 * vg.Centimeter
	}
	if o.Height == 0 {
		o.Height = 8 * vg.Centimeter
	}
	if o.DPI == 0 {
		o.DPI = 96
	}
	return o
}

const pointRad = 2

var (
	runColor  = color.NRGBA{0x33, 0x66, 0xcc, 0xa0}
	meanColor = color.NRGBA{0xcc, 0x33, 0x33, 0xff}
)

// New builds the chart of ser.
func New(ser *benchdata.Series) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = ser.Name
	if sc := scenario.Parse(ser.Name); sc.Kind != scenario.Unknown {
		pl.Title.Text = fmt.Sprintf("%s (%s)", ser.Name, sc.Label())
	}
	pl.X.Label.Text = "commit"
	pl.Y.Label.Text = scenario.Unit(ser.Name, ser.Unit)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	if len(ser.Points) == 0 {
		return pl, nil
	}

	runs := make(plotter.XYs, len(ser.Points))
	for i, p := range ser.Points {
		runs[i].X, runs[i].Y = float64(p.Index), p.Value
	}
	scatter, err := plotter.NewScatter(runs)
	if err != nil {
		return nil, errors.Wrap(err, "plotting runs")
	}
	scatter.GlyphStyle.Color = runColor
	scatter.GlyphStyle.Radius = vg.Points(pointRad)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	tr := trend.Of(ser)
	means := make(plotter.XYs, len(tr.Rows))
	ticks := make([]plot.Tick, len(tr.Rows))
	for i, row := range tr.Rows {
		means[i].X, means[i].Y = float64(row.Index), row.Mean
		ticks[i] = plot.Tick{Value: float64(row.Index), Label: shortID(row.Commit)}
	}
	line, err := plotter.NewLine(means)
	if err != nil {
		return nil, errors.Wrap(err, "plotting means")
	}
	line.LineStyle.Color = meanColor
	line.LineStyle.Width = vg.Points(1)

	pl.Add(line, scatter)
	pl.X.Tick.Marker = plot.ConstantTicks(ticks)
	pl.X.Tick.Label.Rotation = -0.4
	pl.X.Tick.Label.XAlign = draw.XLeft
	pl.X.Tick.Label.YAlign = draw.YTop

	// Pad the X range so edge points are not drawn on the axes.
	pl.X.Min -= 0.5
	pl.X.Max += 0.5
	if pl.Y.Min > 0 {
		pl.Y.Min = 0
	}
	return pl, nil
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

// Render draws the chart of ser to w.
func Render(w io.Writer, ser *benchdata.Series, opts Options) error {
	opts = opts.withDefaults()
	pl, err := New(ser)
	if err != nil {
		return err
	}

	var can vg.CanvasWriterTo
	switch opts.Format {
	case PNG:
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(opts.Width, opts.Height),
			vgimg.UseDPI(opts.DPI),
			vgimg.UseBackgroundColor(color.White))}
	case SVG:
		can = vgsvg.New(opts.Width, opts.Height)
	default:
		return errors.Errorf("unknown image format %q", opts.Format)
	}
	pl.Draw(draw.New(can))
	_, err = can.WriteTo(w)
	return err
}

// FileName returns the file name RenderAll uses for bench: its name
// with every run of characters other than letters, digits, '-', '_'
// and '.' replaced by '_', followed by the format extension.
func FileName(bench string, format Format) string {
	var b strings.Builder
	under := false
	for _, r := range bench {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
			under = false
			continue
		}
		if !under {
			b.WriteByte('_')
			under = true
		}
	}
	name := strings.Trim(b.String(), "_.")
	if name == "" {
		name = "bench"
	}
	return name + "." + string(format)
}

// RenderAll renders the chart of every benchmark of s into dir,
// creating dir if needed, and returns the paths of the written files
// in BenchNames order.
func RenderAll(ctx context.Context, s *benchdata.Suite, dir string, opts Options, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, err
	}

	names := s.BenchNames()
	paths := make([]string, len(names))
	seen := make(map[string]string)
	for i, name := range names {
		file := FileName(name, opts.Format)
		if other, ok := seen[file]; ok {
			return nil, errors.Errorf("benchmarks %q and %q both map to file %s", other, name, file)
		}
		seen[file] = name
		paths[i] = filepath.Join(dir, file)
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderFile(paths[i], s.Series(name), opts); err != nil {
				return errors.Wrapf(err, "rendering %q", name)
			}
			logger.Debug("rendered chart", zap.String("bench", name), zap.String("path", paths[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func renderFile(path string, ser *benchdata.Series, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Render(f, ser, opts)
}
