// Package render draws chart specs as PNG images with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"hotspot/internal/models"
)

var colors = map[string]color.Color{
	"indianred": color.RGBA{R: 205, G: 92, B: 92, A: 255},
}

var fallbackColor color.Color = color.RGBA{R: 99, G: 110, B: 250, A: 255}

func markColor(name string) color.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return fallbackColor
}

func newPlot(l models.Layout) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	if l.TitleFontSize > 0 {
		p.Title.TextStyle.Font.Size = vg.Points(float64(l.TitleFontSize))
	}
	p.X.Label.Text = l.XAxis.Title
	p.Y.Label.Text = l.YAxis.Title
	if l.ShowGrid {
		p.Add(plotter.NewGrid())
	}
	return p
}

// pixels converts a layout size in pixels to vg lengths at the 96 DPI that
// the PNG canvas uses.
func pixels(px int) vg.Length {
	return vg.Length(float64(px) * 72 / 96)
}

func write(w io.Writer, p *plot.Plot, l models.Layout) error {
	wt, err := p.WriterTo(pixels(l.Width), pixels(l.Height), "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Bar draws a ranked horizontal bar chart with count labels on each bar.
func Bar(w io.Writer, c models.BarChart) error {
	p := newPlot(c.Layout)

	if len(c.Bars) > 0 {
		values := make(plotter.Values, len(c.Bars))
		names := make([]string, len(c.Bars))
		labels := plotter.XYLabels{
			XYs:    make(plotter.XYs, len(c.Bars)),
			Labels: make([]string, len(c.Bars)),
		}
		for i, b := range c.Bars {
			values[i] = float64(b.Count)
			names[i] = b.Name
			labels.XYs[i] = plotter.XY{X: float64(b.Count) / 2, Y: float64(i)}
			labels.Labels[i] = b.Label
		}

		bars, err := plotter.NewBarChart(values, vg.Points(14))
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.Horizontal = true
		bars.Color = markColor(c.Layout.Color)
		bars.LineStyle.Width = 0
		p.Add(bars)

		text, err := plotter.NewLabels(labels)
		if err != nil {
			return fmt.Errorf("bar labels: %w", err)
		}
		p.Add(text)
		p.NominalY(names...)
	}

	return write(w, p, c.Layout)
}

// Line draws the daily detection series with dates on the x axis.
func Line(w io.Writer, c models.LineChart) error {
	p := newPlot(c.Layout)
	p.X.Tick.Marker = plot.TimeTicks{Format: time.DateOnly}

	if len(c.Series) > 0 {
		xys := make(plotter.XYs, len(c.Series))
		for i, pt := range c.Series {
			xys[i] = plotter.XY{X: float64(pt.Date.Unix()), Y: float64(pt.Count)}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("line chart: %w", err)
		}
		line.LineStyle.Color = markColor(c.Layout.Color)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
	}

	return write(w, p, c.Layout)
}

// Density draws every hotspot as a dot coloured by its radiative power.
func Density(w io.Writer, c models.DensityMap) error {
	p := newPlot(c.Layout)

	if len(c.Points) > 0 {
		xys := make(plotter.XYs, len(c.Points))
		for i, pt := range c.Points {
			xys[i] = plotter.XY{X: pt.Longitude, Y: pt.Latitude}
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("density chart: %w", err)
		}

		heat := moreland.ExtendedBlackBody()
		heat.SetMin(0)
		heat.SetMax(max(c.MaxFRP, 1))
		radius := vg.Points(float64(max(c.View.Radius, 1)) / 2)

		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			col, err := heat.At(c.Points[i].FRP)
			if err != nil {
				col = fallbackColor
			}
			return draw.GlyphStyle{Color: col, Radius: radius, Shape: draw.CircleGlyph{}}
		}
		p.Add(scatter)
	}

	return write(w, p, c.Layout)
}

// Confidence draws confidence shares as percentage bars; gonum/plot has no
// pie plotter.
func Confidence(w io.Writer, c models.PieChart) error {
	p := newPlot(c.Layout)

	if len(c.Slices) > 0 {
		values := make(plotter.Values, len(c.Slices))
		names := make([]string, len(c.Slices))
		for i, s := range c.Slices {
			values[i] = s.Percent
			names[i] = string(s.Level)
		}
		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return fmt.Errorf("confidence chart: %w", err)
		}
		bars.Color = markColor(c.Layout.Color)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.NominalX(names...)
		p.Y.Min = 0
		p.Y.Max = 100
	}

	return write(w, p, c.Layout)
}

// Chart renders any of the dashboard chart types.
func Chart(w io.Writer, chart any) error {
	switch c := chart.(type) {
	case models.BarChart:
		return Bar(w, c)
	case models.LineChart:
		return Line(w, c)
	case models.DensityMap:
		return Density(w, c)
	case models.PieChart:
		return Confidence(w, c)
	}
	return fmt.Errorf("render: unsupported chart %T", chart)
}
