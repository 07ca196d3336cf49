package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/chromaplot/chromaplot/pkg/metrics"
)

// WriteSVG renders the figure as SVG to w.
func (f *Figure) WriteSVG(w io.Writer) error {
	defer metrics.Timer(metrics.FigureRender)()

	st := f.style
	canvas := svg.New(w)
	canvas.Start(f.Width, f.Height)
	canvas.Rect(0, 0, f.Width, f.Height, "fill:"+css(st.Background))

	if f.supTitle != "" {
		canvas.Text(f.Width/2, int(marginTop)+8, f.supTitle,
			fmt.Sprintf("fill:%s;font-size:16px;font-family:sans-serif;font-weight:bold;text-anchor:middle", css(st.Text)))
	}

	for _, fr := range f.layout() {
		f.svgAxes(canvas, &fr)
	}

	canvas.End()
	return nil
}

func (f *Figure) svgAxes(canvas *svg.SVG, fr *axesFrame) {
	st := f.style
	axisStyle := fmt.Sprintf("stroke:%s;stroke-width:1", css(st.Axis))
	labelStyle := fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif", css(st.Subtle))

	// Series first so the frame is drawn on top of bar edges.
	for _, s := range fr.ax.series {
		f.svgSeries(canvas, fr, s)
	}

	// Frame.
	canvas.Rect(int(fr.x0), int(fr.y0), int(fr.w), int(fr.h), "fill:none;"+axisStyle)

	// Axes title.
	if fr.ax.title != "" {
		canvas.Text(int(fr.x0+fr.w/2), int(fr.y0)-6, fr.ax.title,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:sans-serif;text-anchor:middle", css(st.Text)))
	}

	// X ticks.
	bottom := fr.y0 + fr.h
	for _, t := range fr.xTicks {
		x := int(fr.px(t.v))
		canvas.Line(x, int(bottom), x, int(bottom+tickLen), axisStyle)
		if fr.showXLabels {
			canvas.Text(x, int(bottom+tickLen+12), t.label, labelStyle+";text-anchor:middle")
		}
	}
	for _, m := range fr.xMinor {
		x := int(fr.px(m))
		canvas.Line(x, int(bottom), x, int(bottom+minorTickLen), axisStyle)
	}
	if fr.showXLabels && fr.ax.xLabel != "" {
		canvas.Text(int(fr.x0+fr.w/2), int(bottom+tickLen+28), fr.ax.xLabel,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-anchor:middle", css(st.Text)))
	}

	// Y ticks.
	for _, t := range fr.yTicks {
		y := int(fr.py(t.v))
		canvas.Line(int(fr.x0-tickLen), y, int(fr.x0), y, axisStyle)
		canvas.Text(int(fr.x0-tickLen-4), y+4, t.label, labelStyle+";text-anchor:end")
	}
	if fr.ax.sciY && fr.yExp != 0 {
		canvas.Text(int(fr.x0), int(fr.y0)-4, sciOffsetLabel(fr.yExp), labelStyle)
	}
	if fr.ax.yLabel != "" {
		canvas.TranslateRotate(int(fr.x0-marginLeft+16), int(fr.y0+fr.h/2), -90)
		canvas.Text(0, 0, fr.ax.yLabel,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-anchor:middle", css(st.Text)))
		canvas.Gend()
	}
}

func (f *Figure) svgSeries(canvas *svg.SVG, fr *axesFrame, s series) {
	st := f.style
	switch s := s.(type) {
	case *barSeries:
		x0 := fr.px(s.X - s.Width/2)
		x1 := fr.px(s.X + s.Width/2)
		yTop := fr.py(s.Height)
		yBase := fr.py(fr.clampY(0))
		canvas.Rect(int(x0), int(yTop), int(x1-x0), int(yBase-yTop), "fill:"+css(s.Color))
	case *lineSeries:
		xs := make([]int, 0, len(s.Xs))
		ys := make([]int, 0, len(s.Xs))
		for i := range s.Xs {
			xs = append(xs, int(fr.px(s.Xs[i])))
			ys = append(ys, int(fr.py(s.Ys[i])))
		}
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", css(s.Color), st.LineWidth))
	case *scatterSeries:
		r := st.MarkerSize / 2
		style := fmt.Sprintf("stroke:%s;stroke-width:1.5", css(s.Color))
		for i := range s.Xs {
			x := fr.px(s.Xs[i])
			y := fr.py(s.Ys[i])
			canvas.Line(int(x-r), int(y-r), int(x+r), int(y+r), style)
			canvas.Line(int(x-r), int(y+r), int(x+r), int(y-r), style)
		}
	case *errorBarSeries:
		x := int(fr.px(s.X))
		yLo := int(fr.py(s.Y - s.Low))
		yHi := int(fr.py(s.Y + s.High))
		capW := int(st.CapSize)
		style := fmt.Sprintf("stroke:%s;stroke-width:1.5", css(st.ErrorBar))
		canvas.Line(x, yLo, x, yHi, style)
		canvas.Line(x-capW, yLo, x+capW, yLo, style)
		canvas.Line(x-capW, yHi, x+capW, yHi, style)
	case *vlineSeries:
		x := int(fr.px(s.X))
		canvas.Line(x, int(fr.y0), x, int(fr.y0+fr.h),
			fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:4,3", css(s.Color)))
	case *annotationSeries:
		x := int(fr.px(s.X))
		y := int(fr.py(s.Y))
		style := fmt.Sprintf("fill:%s;font-size:11px;font-family:sans-serif", css(st.Text))
		if s.Vertical {
			canvas.TranslateRotate(x, y-4, -90)
			canvas.Text(0, 0, s.Text, style)
			canvas.Gend()
		} else {
			canvas.Text(x, y-4, s.Text, style+";text-anchor:middle")
		}
	}
}

// clampY limits a y data value to the axes range so bars anchored at zero
// stay inside the frame when the range excludes zero.
func (fr *axesFrame) clampY(y float64) float64 {
	if y < fr.yMin {
		return fr.yMin
	}
	if y > fr.yMax {
		return fr.yMax
	}
	return y
}
