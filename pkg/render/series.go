package render

import (
	"image/color"
	"math"
)

// series is a retained drawing command. Each kind reports the data extent
// it contributes to auto-ranging; NaN bounds mean "no contribution" on
// that dimension.
type series interface {
	xRange() (min, max float64)
	yRange() (min, max float64)
}

type barSeries struct {
	X      float64
	Height float64
	Width  float64
	Color  color.RGBA
}

func (s *barSeries) xRange() (float64, float64) { return s.X - s.Width/2, s.X + s.Width/2 }
func (s *barSeries) yRange() (float64, float64) {
	if s.Height < 0 {
		return s.Height, 0
	}
	return 0, s.Height
}

type lineSeries struct {
	Xs, Ys []float64
	Color  color.RGBA
}

func (s *lineSeries) xRange() (float64, float64) { return floatRange(s.Xs) }
func (s *lineSeries) yRange() (float64, float64) { return floatRange(s.Ys) }

type scatterSeries struct {
	Xs, Ys []float64
	Color  color.RGBA
}

func (s *scatterSeries) xRange() (float64, float64) { return floatRange(s.Xs) }
func (s *scatterSeries) yRange() (float64, float64) { return floatRange(s.Ys) }

type errorBarSeries struct {
	X, Y      float64
	Low, High float64
}

func (s *errorBarSeries) xRange() (float64, float64) { return s.X, s.X }
func (s *errorBarSeries) yRange() (float64, float64) { return s.Y - s.Low, s.Y + s.High }

type vlineSeries struct {
	X     float64
	Color color.RGBA
}

func (s *vlineSeries) xRange() (float64, float64) { return s.X, s.X }
func (s *vlineSeries) yRange() (float64, float64) { return math.NaN(), math.NaN() }

type annotationSeries struct {
	X, Y     float64
	Text     string
	Vertical bool
}

func (s *annotationSeries) xRange() (float64, float64) { return s.X, s.X }
func (s *annotationSeries) yRange() (float64, float64) { return math.NaN(), math.NaN() }

// floatRange returns the min and max of xs ignoring NaN entries, or NaN
// bounds when nothing remains.
func floatRange(xs []float64) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}
