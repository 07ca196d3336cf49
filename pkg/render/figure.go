// Package render is a small retained-mode chart surface. Callers build a
// Figure, add axes, append series to them, and finally render the whole
// figure to SVG or PNG. Nothing is written until one of the Write methods
// is called, so drawing helpers can keep mutating axes up to that point.
//
// The package intentionally covers only what chromatogram-style charts
// need: vertically stacked subplots with an optional shared x range, bars,
// lines, scatter markers, error bars, vertical markers, and rotated text
// annotations.
package render

import (
	"image/color"
	"math"
)

// Figure is a drawing surface of fixed pixel size holding vertically
// stacked axes. It retains all drawing commands; WriteSVG and WritePNG
// render the same state through different backends.
type Figure struct {
	Width  int
	Height int

	style    Style
	supTitle string
	axes     []*Axes
	sharedX  bool
}

// Default figure size in pixels.
const (
	DefaultWidth  = 1170
	DefaultHeight = 830
)

// NewFigure creates a figure with the default style.
func NewFigure(width, height int) *Figure {
	return NewFigureStyled(width, height, DefaultStyle())
}

// NewFigureStyled creates a figure with an explicit style.
func NewFigureStyled(width, height int, style Style) *Figure {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Figure{Width: width, Height: height, style: style}
}

// Style returns the figure's style.
func (f *Figure) Style() Style { return f.style }

// SetSupTitle sets the figure-level title drawn centred above all axes.
func (f *Figure) SetSupTitle(title string) { f.supTitle = title }

// Subplots appends n vertically stacked axes and returns them. When sharedX
// is true the axes share a common x range and only the bottom axes draws
// x tick labels.
func (f *Figure) Subplots(n int, sharedX bool) []*Axes {
	if n < 1 {
		n = 1
	}
	f.sharedX = sharedX
	out := make([]*Axes, n)
	for i := range out {
		ax := newAxes(f)
		f.axes = append(f.axes, ax)
		out[i] = ax
	}
	return out
}

// Subplot appends and returns a single axes spanning the figure.
func (f *Figure) Subplot() *Axes {
	return f.Subplots(1, false)[0]
}

// Axes returns the figure's axes in creation order.
func (f *Figure) Axes() []*Axes { return f.axes }

// Axes is a single subplot: axis state plus the series drawn into it.
type Axes struct {
	fig *Figure

	title  string
	xLabel string
	yLabel string

	// NaN means auto-compute from data.
	xMin, xMax float64
	yMin, yMax float64

	sciY   bool
	minorX bool

	series   []series
	colorIdx int
}

func newAxes(f *Figure) *Axes {
	nan := math.NaN()
	return &Axes{fig: f, xMin: nan, xMax: nan, yMin: nan, yMax: nan}
}

// SetTitle sets the axes title drawn above the plot frame.
func (a *Axes) SetTitle(s string) { a.title = s }

// SetXLabel sets the x axis label.
func (a *Axes) SetXLabel(s string) { a.xLabel = s }

// SetYLabel sets the y axis label, drawn rotated along the axis.
func (a *Axes) SetYLabel(s string) { a.yLabel = s }

// SetXLim fixes the x range.
func (a *Axes) SetXLim(min, max float64) { a.xMin, a.xMax = min, max }

// SetYLim fixes the y range.
func (a *Axes) SetYLim(min, max float64) { a.yMin, a.yMax = min, max }

// SetYBottom pins the lower y limit, leaving the top to auto-range.
func (a *Axes) SetYBottom(v float64) { a.yMin = v }

// SciYLabels formats y tick labels in scientific notation with one decimal
// place, with the shared power-of-ten offset drawn above the axis.
func (a *Axes) SciYLabels() { a.sciY = true }

// MinorXTicks enables unlabelled minor ticks between the major x ticks.
func (a *Axes) MinorXTicks() { a.minorX = true }

// nextColor advances the palette cycle.
func (a *Axes) nextColor() color.RGBA {
	p := a.fig.style.Palette
	c := p[a.colorIdx%len(p)]
	a.colorIdx++
	return c
}

// Bar draws a single vertical bar centred at x. A non-positive width uses
// the style default. The colour assigned from the palette cycle is
// returned so overlays (scatter points) can match it.
func (a *Axes) Bar(x, height, width float64) color.RGBA {
	if width <= 0 {
		width = a.fig.style.BarWidth
	}
	c := a.nextColor()
	a.series = append(a.series, &barSeries{X: x, Height: height, Width: width, Color: c})
	return c
}

// Line draws a polyline through the given points with the next palette
// colour and returns that colour.
func (a *Axes) Line(xs, ys []float64) color.RGBA {
	c := a.nextColor()
	a.LineColored(xs, ys, c)
	return c
}

// LineColored draws a polyline with an explicit colour.
func (a *Axes) LineColored(xs, ys []float64, c color.RGBA) {
	a.series = append(a.series, &lineSeries{Xs: xs, Ys: ys, Color: c})
}

// Scatter draws x-shaped markers at the given points.
func (a *Axes) Scatter(xs, ys []float64, c color.RGBA) {
	a.series = append(a.series, &scatterSeries{Xs: xs, Ys: ys, Color: c})
}

// ErrorBar draws a vertical error bar at (x, y) spanning y-low to y+high,
// with caps. The whiskers are not clipped to the plot frame.
func (a *Axes) ErrorBar(x, y, low, high float64) {
	a.series = append(a.series, &errorBarSeries{X: x, Y: y, Low: low, High: high})
}

// VLine draws a dashed vertical marker spanning the full y range.
func (a *Axes) VLine(x float64, c color.RGBA) {
	a.series = append(a.series, &vlineSeries{X: x, Color: c})
}

// Annotate draws text anchored at the data point. When vertical is true the
// text is rotated 90 degrees counter-clockwise and grows upward from the
// anchor.
func (a *Axes) Annotate(x, y float64, text string, vertical bool) {
	a.series = append(a.series, &annotationSeries{X: x, Y: y, Text: text, Vertical: vertical})
}
