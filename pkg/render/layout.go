package render

import "math"

// Layout constants in px. The geometry is computed once per render and
// shared by the SVG and PNG backends so both produce the same picture.
const (
	marginLeft   = 78.0
	marginRight  = 24.0
	marginTop    = 18.0
	marginBottom = 16.0
	supTitleH    = 30.0
	axesTitleH   = 20.0
	xLabelH      = 34.0
	axesGap      = 14.0
	tickLen      = 6.0
	minorTickLen = 3.0
)

// axesFrame is the resolved geometry for one axes: pixel rect, data
// ranges, and tick placement.
type axesFrame struct {
	ax *Axes

	x0, y0 float64 // top-left of the plot rect
	w, h   float64

	xMin, xMax float64
	yMin, yMax float64

	xTicks []tick
	yTicks []tick
	xMinor []float64

	yExp        int // scientific offset exponent; only meaningful when ax.sciY
	showXLabels bool
}

// px maps a data x value to a pixel x coordinate.
func (fr *axesFrame) px(x float64) float64 {
	return fr.x0 + (x-fr.xMin)/(fr.xMax-fr.xMin)*fr.w
}

// py maps a data y value to a pixel y coordinate (inverted axis).
func (fr *axesFrame) py(y float64) float64 {
	return fr.y0 + fr.h - (y-fr.yMin)/(fr.yMax-fr.yMin)*fr.h
}

// layout resolves every axes' pixel rect, data ranges, and ticks.
func (f *Figure) layout() []axesFrame {
	n := len(f.axes)
	if n == 0 {
		return nil
	}

	top := marginTop
	if f.supTitle != "" {
		top += supTitleH
	}

	// Every axes reserves room for its title; only x-label rows reserve
	// label space.
	frames := make([]axesFrame, n)
	labelRows := 0
	for i, ax := range f.axes {
		frames[i].ax = ax
		frames[i].showXLabels = !f.sharedX || i == n-1
		if frames[i].showXLabels {
			labelRows++
		}
	}

	avail := float64(f.Height) - top - marginBottom -
		float64(n)*axesTitleH - float64(labelRows)*xLabelH - float64(n-1)*axesGap
	if avail < float64(n)*40 {
		avail = float64(n) * 40
	}
	axH := avail / float64(n)

	// Shared x: union of the per-axes auto ranges unless explicitly set.
	var sharedMin, sharedMax float64 = math.NaN(), math.NaN()
	if f.sharedX {
		sharedMin, sharedMax = math.Inf(1), math.Inf(-1)
		for _, ax := range f.axes {
			lo, hi := ax.autoXRange()
			if lo < sharedMin {
				sharedMin = lo
			}
			if hi > sharedMax {
				sharedMax = hi
			}
		}
		if sharedMin > sharedMax {
			sharedMin, sharedMax = 0, 1
		}
	}

	y := top
	for i := range frames {
		fr := &frames[i]
		ax := fr.ax

		y += axesTitleH
		fr.x0 = marginLeft
		fr.y0 = y
		fr.w = float64(f.Width) - marginLeft - marginRight
		fr.h = axH
		y += axH + axesGap
		if fr.showXLabels {
			y += xLabelH
		}

		fr.xMin, fr.xMax = ax.resolveXRange(sharedMin, sharedMax, f.sharedX)
		fr.yMin, fr.yMax = ax.resolveYRange()

		xs := niceTicks(fr.xMin, fr.xMax, 8)
		for _, v := range xs {
			fr.xTicks = append(fr.xTicks, tick{v: v, label: formatTick(v, niceStep(fr.xMin, fr.xMax, 8))})
		}
		if ax.minorX {
			fr.xMinor = minorTicks(xs, fr.xMin, fr.xMax)
		}

		ys := niceTicks(fr.yMin, fr.yMax, 6)
		if ax.sciY {
			fr.yExp = sciExponent(ys)
			for _, v := range ys {
				fr.yTicks = append(fr.yTicks, tick{v: v, label: formatSciTick(v, fr.yExp)})
			}
		} else {
			for _, v := range ys {
				fr.yTicks = append(fr.yTicks, tick{v: v, label: formatTick(v, niceStep(fr.yMin, fr.yMax, 6))})
			}
		}
	}
	return frames
}

// autoXRange is the x data extent of all series, NaN-free.
func (a *Axes) autoXRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range a.series {
		sLo, sHi := s.xRange()
		if !math.IsNaN(sLo) && sLo < lo {
			lo = sLo
		}
		if !math.IsNaN(sHi) && sHi > hi {
			hi = sHi
		}
	}
	if lo > hi {
		return math.Inf(1), math.Inf(-1)
	}
	return lo, hi
}

func (a *Axes) resolveXRange(sharedMin, sharedMax float64, shared bool) (float64, float64) {
	lo, hi := a.xMin, a.xMax
	if math.IsNaN(lo) || math.IsNaN(hi) {
		var dLo, dHi float64
		if shared {
			dLo, dHi = sharedMin, sharedMax
		} else {
			dLo, dHi = a.autoXRange()
		}
		if math.IsInf(dLo, 0) || math.IsInf(dHi, 0) {
			dLo, dHi = 0, 1
		}
		if dLo == dHi {
			dLo, dHi = dLo-0.5, dHi+0.5
		}
		pad := (dHi - dLo) * 0.02
		if math.IsNaN(lo) {
			lo = dLo - pad
		}
		if math.IsNaN(hi) {
			hi = dHi + pad
		}
	}
	return lo, hi
}

func (a *Axes) resolveYRange() (float64, float64) {
	lo, hi := a.yMin, a.yMax
	if math.IsNaN(lo) || math.IsNaN(hi) {
		dLo, dHi := math.Inf(1), math.Inf(-1)
		for _, s := range a.series {
			sLo, sHi := s.yRange()
			if !math.IsNaN(sLo) && sLo < dLo {
				dLo = sLo
			}
			if !math.IsNaN(sHi) && sHi > dHi {
				dHi = sHi
			}
		}
		if dLo > dHi {
			dLo, dHi = 0, 1
		}
		if dLo == dHi {
			dLo, dHi = dLo-0.5, dHi+0.5
		}
		pad := (dHi - dLo) * 0.05
		if math.IsNaN(lo) {
			lo = dLo
			if dLo < 0 {
				lo = dLo - pad
			}
		}
		if math.IsNaN(hi) {
			hi = dHi + pad
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}
