// Package chromatogram draws combined "chromatograms": a bar chart of peak
// area or height across the repeated measurements of a project, styled like
// a chromatogram with retention time on the x-axis.
//
// The aggregation half of the package (PeakSummary, CombinedData) reshapes
// consolidated peaks into per-peak aggregate records; the drawing half
// (DrawCombined, DrawChromatograms, AnnotatePeaks) turns those records into
// series on a caller-supplied figure.
package chromatogram

import (
	"github.com/chromaplot/chromaplot/pkg/model"
)

// Errorbar describes a peak's error bar: the distance below and above the
// representative value. Mean mode produces a symmetric pair (both equal to
// the standard deviation); median mode an asymmetric inter-quartile pair.
type Errorbar struct {
	Low  float64
	High float64
}

// Symmetric returns an error bar extending v both ways.
func Symmetric(v float64) Errorbar {
	return Errorbar{Low: v, High: v}
}

// CCPeak is the aggregate record for one peak in a combined chromatogram.
// Values are computed once per rendering call and never mutated.
type CCPeak struct {
	AreaOrHeight     float64   // representative value (mean or median)
	AreaOrHeightList []float64 // per-repeat values the aggregate came from
	Rt               float64   // representative retention time, minutes
	RtList           []float64 // per-repeat retention times, seconds
	Errorbar         Errorbar
}

// Replicates is the number of repeats that contributed a real (non-NaN)
// value. Error bars are only worth drawing when it exceeds one.
func (p CCPeak) Replicates() int {
	return len(dropNaN(p.AreaOrHeightList))
}

// PeakSummary returns the aggregate record for a single consolidated peak.
//
// When usePeakHeight is set the per-repeat values are the summed spectrum
// intensities (a height proxy) instead of the stored peak areas. When
// useMedian is set the representative value is the median with an
// asymmetric 25th/75th-percentile error bar; otherwise the mean with a
// symmetric standard-deviation error bar. NaN entries (repeats that did
// not contribute) are ignored throughout.
func PeakSummary(peak model.ConsolidatedPeak, useMedian, usePeakHeight bool) CCPeak {
	var values []float64
	if usePeakHeight {
		values = make([]float64, len(peak.MsList))
		for i, ms := range peak.MsList {
			values[i] = ms.TotalIntensity()
		}
	} else {
		values = peak.AreaList
	}

	rt := peak.Rt() / 60

	if useMedian {
		median := nanMedian(values)
		p25 := nanPercentile(values, 25)
		p75 := nanPercentile(values, 75)
		return CCPeak{
			AreaOrHeight:     median,
			AreaOrHeightList: values,
			Rt:               rt,
			RtList:           peak.RtList,
			Errorbar:         Errorbar{Low: median - p25, High: p75 - median},
		}
	}

	return CCPeak{
		AreaOrHeight:     nanMean(values),
		AreaOrHeightList: values,
		Rt:               rt,
		RtList:           peak.RtList,
		Errorbar:         Symmetric(nanStd(values)),
	}
}
