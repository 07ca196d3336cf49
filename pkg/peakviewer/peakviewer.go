// Package peakviewer draws a single consolidated peak across every repeat
// of a project: one subplot per repeat showing the chromatogram around the
// peak with the repeat's own retention time marked.
package peakviewer

import (
	"math"

	"github.com/chromaplot/chromaplot/pkg/model"
	"github.com/chromaplot/chromaplot/pkg/render"
)

// windowMins is the half-width of the retention time window shown around
// the peak, in minutes.
const windowMins = 1.0

// DrawPeaks draws the chromatogram region around one consolidated peak for
// every repeat. rtList carries the per-repeat retention times in seconds
// (index-aligned with the project's datafiles; NaN entries mean the repeat
// did not contribute and get an empty subplot). The axes slice must have
// exactly one entry per datafile.
//
// Panics when the axes count does not match the datafile count.
func DrawPeaks(project *model.Project, rtList []float64, fig *render.Figure, axes []*render.Axes) {
	if len(axes) != len(project.DatafileData) {
		panic("peakviewer: axes count must match datafile count")
	}
	if len(axes) == 0 {
		return
	}

	centre := centreRt(rtList)

	for i, df := range project.DatafileData {
		ax := axes[i]
		ax.SetTitle(df.Name)
		ax.SetYBottom(0)
		ax.SciYLabels()

		if !math.IsNaN(centre) {
			ax.SetXLim(centre/60-windowMins, centre/60+windowMins)
		}

		xs, ys := ticWindow(df, centre)
		if len(xs) > 1 {
			ax.Line(xs, ys)
		}

		if i < len(rtList) && !math.IsNaN(rtList[i]) {
			ax.VLine(rtList[i]/60, fig.Style().ErrorBar)
		}
	}
	axes[len(axes)-1].SetXLabel("Retention Time (mins)")

	fig.SetSupTitle(project.Name)
}

// centreRt is the mean of the non-NaN retention times, seconds.
func centreRt(rtList []float64) float64 {
	var sum float64
	var n int
	for _, rt := range rtList {
		if math.IsNaN(rt) {
			continue
		}
		sum += rt
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// ticWindow extracts the slice of the repeat's TIC inside the display
// window, converted to minutes. With no usable centre the whole TIC is
// returned.
func ticWindow(df model.Datafile, centre float64) (xs, ys []float64) {
	lo := math.Inf(-1)
	hi := math.Inf(1)
	if !math.IsNaN(centre) {
		lo = centre - windowMins*60
		hi = centre + windowMins*60
	}
	n := len(df.Times)
	if len(df.Intensities) < n {
		n = len(df.Intensities)
	}
	for i := 0; i < n; i++ {
		t := df.Times[i]
		if t < lo || t > hi || math.IsNaN(t) {
			continue
		}
		xs = append(xs, t/60)
		ys = append(ys, df.Intensities[i])
	}
	return xs, ys
}
