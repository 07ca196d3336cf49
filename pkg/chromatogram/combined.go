package chromatogram

import (
	"sort"

	"github.com/chromaplot/chromaplot/pkg/metrics"
	"github.com/chromaplot/chromaplot/pkg/model"
)

// Options controls combined chromatogram aggregation.
type Options struct {
	// TopNPeaks keeps only the n largest peaks by aggregate value.
	// Zero keeps everything.
	TopNPeaks int

	// Threshold drops peaks whose aggregate value (area or height, as
	// applicable) falls below it. Zero means no filtering.
	Threshold float64

	// UseMedian selects median / inter-quartile-range aggregation instead
	// of mean / standard deviation.
	UseMedian bool

	// UsePeakHeight aggregates summed spectrum intensities instead of peak
	// areas.
	UsePeakHeight bool
}

// CombinedData returns one aggregate record per consolidated peak, filtered
// by threshold, optionally limited to the top n by value, and ordered by
// ascending retention time for display.
//
// CombinedData panics when the project has no consolidated peaks; running
// consolidation first is the caller's responsibility.
func CombinedData(project *model.Project, opts Options) []CCPeak {
	defer metrics.Timer(metrics.PeakAggregation)()

	peaks, _ := combinedData(project, opts)
	return peaks
}

// combinedData also returns the source peak for each record, index-aligned,
// so annotation can reach the compound hits.
func combinedData(project *model.Project, opts Options) ([]CCPeak, []*model.ConsolidatedPeak) {
	if project.ConsolidatedPeaks == nil {
		panic("chromatogram: project has no consolidated peaks")
	}

	var peaks []CCPeak
	var sources []*model.ConsolidatedPeak
	for i := range project.ConsolidatedPeaks {
		src := &project.ConsolidatedPeaks[i]
		data := PeakSummary(*src, opts.UseMedian, opts.UsePeakHeight)
		if data.AreaOrHeight < opts.Threshold {
			continue
		}
		peaks = append(peaks, data)
		sources = append(sources, src)
	}

	if opts.TopNPeaks > 0 {
		// Sort by value and take the largest TopNPeaks, keeping the source
		// slice aligned.
		idx := make([]int, len(peaks))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return peaks[idx[a]].AreaOrHeight > peaks[idx[b]].AreaOrHeight
		})
		if opts.TopNPeaks < len(idx) {
			idx = idx[:opts.TopNPeaks]
		}

		kept := make([]CCPeak, len(idx))
		keptSrc := make([]*model.ConsolidatedPeak, len(idx))
		for i, j := range idx {
			kept[i] = peaks[j]
			keptSrc[i] = sources[j]
		}
		peaks, sources = kept, keptSrc
	}

	// Resort by retention time for display order.
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return peaks[order[a]].Rt < peaks[order[b]].Rt
	})
	outPeaks := make([]CCPeak, len(order))
	outSrc := make([]*model.ConsolidatedPeak, len(order))
	for i, j := range order {
		outPeaks[i] = peaks[j]
		outSrc[i] = sources[j]
	}
	return outPeaks, outSrc
}
