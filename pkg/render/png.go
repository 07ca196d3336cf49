package render

import (
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/chromaplot/chromaplot/pkg/metrics"
)

// WritePNG renders the figure as PNG to w. The raster backend mirrors the
// SVG geometry exactly; only text metrics differ.
func (f *Figure) WritePNG(w io.Writer) error {
	defer metrics.Timer(metrics.FigureRender)()

	st := f.style
	dc := gg.NewContext(f.Width, f.Height)
	dc.SetColor(st.Background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if f.supTitle != "" {
		dc.SetColor(st.Text)
		dc.DrawStringAnchored(f.supTitle, float64(f.Width)/2, marginTop+4, 0.5, 0.5)
	}

	for _, fr := range f.layout() {
		f.pngAxes(dc, &fr)
	}

	return dc.EncodePNG(w)
}

func (f *Figure) pngAxes(dc *gg.Context, fr *axesFrame) {
	st := f.style

	for _, s := range fr.ax.series {
		f.pngSeries(dc, fr, s)
	}

	// Frame.
	dc.SetColor(st.Axis)
	dc.SetLineWidth(1)
	dc.DrawRectangle(fr.x0, fr.y0, fr.w, fr.h)
	dc.Stroke()

	if fr.ax.title != "" {
		dc.SetColor(st.Text)
		dc.DrawStringAnchored(fr.ax.title, fr.x0+fr.w/2, fr.y0-10, 0.5, 0.5)
	}

	bottom := fr.y0 + fr.h
	dc.SetColor(st.Axis)
	for _, t := range fr.xTicks {
		x := fr.px(t.v)
		dc.DrawLine(x, bottom, x, bottom+tickLen)
		dc.Stroke()
	}
	for _, m := range fr.xMinor {
		x := fr.px(m)
		dc.DrawLine(x, bottom, x, bottom+minorTickLen)
		dc.Stroke()
	}
	if fr.showXLabels {
		dc.SetColor(st.Subtle)
		for _, t := range fr.xTicks {
			dc.DrawStringAnchored(t.label, fr.px(t.v), bottom+tickLen+8, 0.5, 0.5)
		}
		if fr.ax.xLabel != "" {
			dc.SetColor(st.Text)
			dc.DrawStringAnchored(fr.ax.xLabel, fr.x0+fr.w/2, bottom+tickLen+24, 0.5, 0.5)
		}
	}

	dc.SetColor(st.Axis)
	for _, t := range fr.yTicks {
		y := fr.py(t.v)
		dc.DrawLine(fr.x0-tickLen, y, fr.x0, y)
		dc.Stroke()
	}
	dc.SetColor(st.Subtle)
	for _, t := range fr.yTicks {
		dc.DrawStringAnchored(t.label, fr.x0-tickLen-4, fr.py(t.v), 1, 0.5)
	}
	if fr.ax.sciY && fr.yExp != 0 {
		dc.DrawStringAnchored(sciOffsetLabel(fr.yExp), fr.x0, fr.y0-6, 0, 0.5)
	}
	if fr.ax.yLabel != "" {
		dc.SetColor(st.Text)
		x := fr.x0 - marginLeft + 16
		y := fr.y0 + fr.h/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), x, y)
		dc.DrawStringAnchored(fr.ax.yLabel, x, y, 0.5, 0.5)
		dc.Pop()
	}
}

func (f *Figure) pngSeries(dc *gg.Context, fr *axesFrame, s series) {
	st := f.style
	switch s := s.(type) {
	case *barSeries:
		x0 := fr.px(s.X - s.Width/2)
		x1 := fr.px(s.X + s.Width/2)
		yTop := fr.py(s.Height)
		yBase := fr.py(fr.clampY(0))
		dc.SetColor(s.Color)
		dc.DrawRectangle(x0, yTop, x1-x0, yBase-yTop)
		dc.Fill()
	case *lineSeries:
		if len(s.Xs) < 2 {
			return
		}
		dc.SetColor(s.Color)
		dc.SetLineWidth(st.LineWidth)
		dc.NewSubPath()
		dc.MoveTo(fr.px(s.Xs[0]), fr.py(s.Ys[0]))
		for i := 1; i < len(s.Xs); i++ {
			dc.LineTo(fr.px(s.Xs[i]), fr.py(s.Ys[i]))
		}
		dc.Stroke()
	case *scatterSeries:
		r := st.MarkerSize / 2
		dc.SetColor(s.Color)
		dc.SetLineWidth(1.5)
		for i := range s.Xs {
			x := fr.px(s.Xs[i])
			y := fr.py(s.Ys[i])
			dc.DrawLine(x-r, y-r, x+r, y+r)
			dc.Stroke()
			dc.DrawLine(x-r, y+r, x+r, y-r)
			dc.Stroke()
		}
	case *errorBarSeries:
		x := fr.px(s.X)
		yLo := fr.py(s.Y - s.Low)
		yHi := fr.py(s.Y + s.High)
		dc.SetColor(st.ErrorBar)
		dc.SetLineWidth(1.5)
		dc.DrawLine(x, yLo, x, yHi)
		dc.Stroke()
		dc.DrawLine(x-st.CapSize, yLo, x+st.CapSize, yLo)
		dc.Stroke()
		dc.DrawLine(x-st.CapSize, yHi, x+st.CapSize, yHi)
		dc.Stroke()
	case *vlineSeries:
		x := fr.px(s.X)
		dc.SetColor(s.Color)
		dc.SetLineWidth(1)
		dc.SetDash(4, 3)
		dc.DrawLine(x, fr.y0, x, fr.y0+fr.h)
		dc.Stroke()
		dc.SetDash()
	case *annotationSeries:
		x := fr.px(s.X)
		y := fr.py(s.Y) - 4
		dc.SetColor(st.Text)
		if s.Vertical {
			dc.Push()
			dc.RotateAbout(gg.Radians(-90), x, y)
			dc.DrawStringAnchored(s.Text, x, y, 0, 0.5)
			dc.Pop()
		} else {
			dc.DrawStringAnchored(s.Text, x, y, 0.5, 0.5)
		}
	}
}
