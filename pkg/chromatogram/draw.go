package chromatogram

import (
	"math"

	"github.com/chromaplot/chromaplot/pkg/metrics"
	"github.com/chromaplot/chromaplot/pkg/model"
	"github.com/chromaplot/chromaplot/pkg/render"
)

// DrawOptions controls combined chromatogram drawing.
type DrawOptions struct {
	// TopNPeaks shows only the n largest peaks. Zero shows everything.
	TopNPeaks int

	// MinimumArea hides peaks smaller than the given area (or peak height,
	// as applicable).
	MinimumArea float64

	// UseMedian shows the median and inter-quartile range rather than the
	// mean and standard deviation.
	UseMedian bool

	// UsePeakHeight shows the peak height and not the peak area.
	UsePeakHeight bool

	// ShowPoints overlays the individual retention time / value points for
	// each repeat.
	ShowPoints bool

	// BarWidth in minutes. Zero uses the default (0.2).
	BarWidth float64
}

const defaultBarWidth = 0.2

// DrawCombined draws a combined chromatogram for the project onto ax: one
// bar per consolidated peak at its retention time, with error bars where
// more than one repeat contributed, axis limits spanning the project's
// retention time range, and the figure titled with the project name.
//
// Panics when the project has no consolidated peaks.
func DrawCombined(project *model.Project, fig *render.Figure, ax *render.Axes, opts DrawOptions) {
	defer metrics.Timer(metrics.CombinedDraw)()

	if project.ConsolidatedPeaks == nil {
		panic("chromatogram: project has no consolidated peaks")
	}

	minRt, maxRt := project.RtRange()

	peaks := CombinedData(project, Options{
		TopNPeaks:     opts.TopNPeaks,
		Threshold:     opts.MinimumArea,
		UseMedian:     opts.UseMedian,
		UsePeakHeight: opts.UsePeakHeight,
	})

	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	for _, peak := range peaks {
		barColour := ax.Bar(peak.Rt, peak.AreaOrHeight, width)

		if opts.ShowPoints {
			// Scatter points match the bar colour.
			xs, ys := replicatePoints(peak)
			ax.Scatter(xs, ys, barColour)
		}

		if peak.Replicates() > 1 {
			ax.ErrorBar(peak.Rt, peak.AreaOrHeight, peak.Errorbar.Low, peak.Errorbar.High)
		}
	}

	ax.SetYBottom(0)
	ax.SciYLabels()
	ax.SetYLabel(valueLabel(opts.UseMedian, opts.UsePeakHeight))

	ax.SetXLim(minRt, maxRt)
	ax.SetXLabel("Retention Time (mins)")
	ax.MinorXTicks()

	fig.SetSupTitle(project.Name)
}

// replicatePoints pairs each repeat's retention time (minutes) with its
// value, skipping entries where either side is missing.
func replicatePoints(peak CCPeak) (xs, ys []float64) {
	n := len(peak.RtList)
	if len(peak.AreaOrHeightList) < n {
		n = len(peak.AreaOrHeightList)
	}
	for i := 0; i < n; i++ {
		rt := peak.RtList[i]
		v := peak.AreaOrHeightList[i]
		if math.IsNaN(rt) || math.IsNaN(v) {
			continue
		}
		xs = append(xs, rt/60)
		ys = append(ys, v)
	}
	return xs, ys
}

// valueLabel is the y-axis label for the active aggregation mode.
func valueLabel(useMedian, usePeakHeight bool) string {
	switch {
	case usePeakHeight && useMedian:
		return "Median Peak Height"
	case usePeakHeight:
		return "Mean Peak Height"
	case useMedian:
		return "Median Peak Area"
	default:
		return "Mean Peak Area"
	}
}

// AnnotateOptions controls peak annotation.
type AnnotateOptions struct {
	// TopNPeaks annotates only the n largest peaks. Zero annotates all.
	TopNPeaks int

	// MinimumArea skips peaks smaller than the given area or height.
	MinimumArea float64

	// UseMedian and UsePeakHeight must match the values the chromatogram
	// was drawn with so labels land on the bars.
	UseMedian     bool
	UsePeakHeight bool
}

// AnnotatePeaks writes the best-hit compound name vertically above the
// largest peaks of an already-drawn combined chromatogram. Unidentified
// peaks are left unlabelled.
//
// Panics when the project has no consolidated peaks.
func AnnotatePeaks(project *model.Project, fig *render.Figure, ax *render.Axes, opts AnnotateOptions) {
	peaks, sources := combinedData(project, Options{
		TopNPeaks:     opts.TopNPeaks,
		Threshold:     opts.MinimumArea,
		UseMedian:     opts.UseMedian,
		UsePeakHeight: opts.UsePeakHeight,
	})

	for i, peak := range peaks {
		hit := sources[i].BestHit()
		if hit == nil {
			continue
		}
		// Anchor above the error bar so the label clears the whisker.
		y := peak.AreaOrHeight + peak.Errorbar.High
		ax.Annotate(peak.Rt, y, hit.Name, true)
	}
}

// DrawChromatograms draws each repeat's total ion chromatogram on its own
// axes, one subplot per repeat, with a shared retention time range. The
// axes slice must have exactly one entry per datafile.
func DrawChromatograms(project *model.Project, fig *render.Figure, axes []*render.Axes) {
	if len(axes) != len(project.DatafileData) {
		panic("chromatogram: axes count must match datafile count")
	}
	if len(axes) == 0 {
		return
	}

	minRt, maxRt := project.RtRange()

	for i, df := range project.DatafileData {
		ax := axes[i]
		xs := make([]float64, len(df.Times))
		for j, t := range df.Times {
			xs[j] = t / 60
		}
		ax.Line(xs, df.Intensities)
		ax.SetTitle(df.Name)
		ax.SetYBottom(0)
		ax.SciYLabels()
		ax.SetYLabel("Intensity")
		ax.SetXLim(minRt, maxRt)
	}
	axes[len(axes)-1].SetXLabel("Retention Time (mins)")

	fig.SetSupTitle(project.Name)
}
